// Package tasks orchestrates bulk movie catalog operations with real-time progress reporting.
//
// # Core Operations
//
// The [Engine] interface defines the bulk operations:
//
//  1. [Engine.BulkImport] : Create many movies through the catalog API
//     - Spreads requests across a bounded worker pool
//     - Paces request volume with a rate limiter
//     - Collects per-record outcomes; failures are never retried
//
//  2. [Engine.ImportFile] : Load a JSON or CSV file and import its records
//     - Detects the format by file extension
//     - Accepts the column layout the exporter writes, so exports round-trip
//
//  3. [Engine.ExportAll] : Write the full collection to a file
//     - Fetches every movie through the catalog API
//     - Renders JSON, CSV, Markdown, or plain text via the formatter package
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Implementation
//
// [LibraryEngine] implements [Engine] with a single dependency on
// [services.Library], so imports and exports run identically against a live
// server or a test double.
package tasks
