// Package repositories implements SQLite persistence for the movie library.
//
// [MovieRepository] handles CRUD operations against the movies table. Ids
// are assigned by SQLite's AUTOINCREMENT at insert time, so a deleted id is
// never handed out again. Deletes are permanent; there are no tombstones and
// no soft-delete bookkeeping.
//
// Absence is reported by wrapping [shared.ErrNotFound] so callers can branch
// with [errors.Is] instead of string matching. Update races are detected
// opportunistically: an UPDATE that affects zero rows triggers an existence
// re-check, and a row that still exists reports [shared.ErrConflict].
package repositories
