// Package services defines the [Library] interface for movie catalog access and implements it over the reelist HTTP API.
//
// # Library Interface
//
// All catalog consumers (CLI commands, the TUI, bulk tasks) go through the
// same abstraction, so every caller sees identical semantics and tests can
// substitute doubles.
//
// # HTTP Implementation
//
// [MoviesClient] issues one HTTP request per operation against the server's
// /api/movies endpoints. Requests are never retried and the client imposes no
// timeout of its own; cancellation and deadlines come from the caller's
// context, transport behavior from the injected *http.Client (nil falls back
// to http.DefaultClient).
//
// # Error Handling
//
// The server signals failures through status codes with empty bodies, so the
// client maps codes onto typed errors from the shared package:
//   - [shared.ErrNotFound] : 404, the id names no stored movie
//   - [shared.ErrInvalidInput] : 400, the server rejected the request shape
//   - [shared.ErrConflict] : 409, an update raced a concurrent change
//   - [shared.ErrAPIRequest] : any other non-2xx status
//
// Callers branch with errors.Is; everything else (transport failures, decode
// failures) propagates wrapped with context.
package services
