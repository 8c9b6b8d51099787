// Package server provides the HTTP API for the movie library.
//
// # Routing
//
// Routes are mounted on a [chi.Router]. The movie endpoints live under
// /api/movies and are served by [MovieHandler]; /api/health reports process
// liveness. Middleware order is request-id, request logging, CORS, then the
// route tree, so every response carries an X-Request-ID header and every
// request is logged with its outcome.
//
// # Wire format
//
// Requests and responses are JSON with lowerCamel keys (id, title, genre,
// year, rating). Collections are bare arrays. Error responses carry an empty
// body; the status code is the whole contract: 400 for malformed input or an
// id mismatch, 404 for absent resources, 409 for update races, 500 for
// storage failures.
//
// # Statelessness
//
// Handlers keep no per-request state between calls. Every operation performs
// its store access through the [models.Repository] handle passed at
// construction and completes the durable mutation before writing the
// response.
package server
