// Package models defines domain entities and persistence interfaces for the reelist movie library.
//
// The central type is [Movie], the record served by the HTTP API and cached
// by the terminal client. Identifiers are assigned by the store at insert
// time and are never supplied by callers on create.
//
// The [Repository] interface defines the CRUD operations the store exposes;
// internal/repositories provides the SQLite implementation.
package models
