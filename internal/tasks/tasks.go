// package tasks implements bulk operations against the movie catalog.
//
// The core abstraction is Engine, which orchestrates bulk imports and collection exports.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/reelist/reelist/internal/formatter"
	"github.com/reelist/reelist/internal/models"
	"github.com/reelist/reelist/internal/services"
	"github.com/reelist/reelist/internal/shared"
)

// MovieImportResult represents the outcome of importing a single movie.
type MovieImportResult struct {
	Movie   models.Movie  // Input record from the import file
	Created *models.Movie // Stored record with its assigned id (nil on failure)
	Error   error         // Error if the import failed
}

// BulkImportResult contains all data from a bulk import run.
type BulkImportResult struct {
	TotalRecords      int                 // Records submitted
	SuccessfulImports int                 // Records stored by the server
	FailedImports     int                 // Records rejected or failed
	Results           []MovieImportResult // Individual outcomes
}

// ExportResult describes a completed collection export.
type ExportResult struct {
	Path   string // File the export was written to
	Format string // Format rendered
	Count  int    // Movies exported
}

// ExportOpts contains configuration for collection exports.
type ExportOpts struct {
	Format string // Export format: json, csv, markdown, txt
	Path   string // Output file (default: movies.{ext})
}

// Engine defines bulk operations against the movie catalog.
type Engine interface {
	// BulkImport creates every record through the catalog API with a bounded worker pool, collecting per-record outcomes.
	BulkImport(ctx context.Context, progress chan<- ProgressUpdate, movies []models.Movie, opts BulkImportOpts) (*BulkImportResult, error)

	// ImportFile loads a JSON or CSV movie file and imports every record it contains.
	ImportFile(ctx context.Context, progress chan<- ProgressUpdate, path string, opts BulkImportOpts) (*BulkImportResult, error)

	// ExportAll fetches the full collection and writes it to a file in the requested format.
	ExportAll(ctx context.Context, progress chan<- ProgressUpdate, opts ExportOpts) (*ExportResult, error)
}

// LibraryEngine implements Engine on top of the catalog API client.
type LibraryEngine struct {
	library services.Library
}

// NewLibraryEngine creates a LibraryEngine backed by the provided client.
func NewLibraryEngine(library services.Library) *LibraryEngine {
	return &LibraryEngine{library: library}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *LibraryEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// ExportAll fetches every movie and writes the rendered collection to disk.
func (e *LibraryEngine) ExportAll(ctx context.Context, progress chan<- ProgressUpdate, opts ExportOpts) (*ExportResult, error) {
	if e.library == nil {
		return nil, fmt.Errorf("%w: library client not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchCatalogUpdate())

	movies, err := e.library.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	format := opts.Format
	if format == "" {
		format = formatter.FormatJSON
	}

	path, err := formatter.WriteExport(movies, format, opts.Path)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, exportCompletedUpdate(path, len(movies)))

	return &ExportResult{
		Path:   path,
		Format: format,
		Count:  len(movies),
	}, nil
}
