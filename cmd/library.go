package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/reelist/reelist/internal/shared"
	"github.com/reelist/reelist/internal/tasks"
)

// LibraryImport bulk-imports movies from a JSON or CSV file.
func (r *Runner) LibraryImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: import file path", shared.ErrMissingArgument)
	}

	opts := tasks.BulkImportOpts{
		NumWorkers: cmd.Int("workers"),
		RateLimit:  float64(cmd.Int("rate")),
	}

	r.logger.Info("starting import", "path", path)

	// Drain progress on a separate goroutine; done gates the summary so
	// progress lines cannot interleave with it.
	progressCh := make(chan tasks.ProgressUpdate, 100)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.ParseInput:
				r.writePlain("📄 %s\n", update.Message)
			case tasks.ImportMovies:
				if update.Step == 0 {
					r.writePlain("\n📥 %s\n", update.Message)
				} else {
					r.writePlain("   %s\n", update.Message)
				}
			}
		}
	}()

	result, err := r.engine.ImportFile(ctx, progressCh, path, opts)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Import Complete")
	r.writePlain("Imported: %d/%d movies\n", result.SuccessfulImports, result.TotalRecords)

	if result.FailedImports > 0 {
		r.writePlain("\nFailed to import %d movies:\n", result.FailedImports)
		for _, res := range result.Results {
			if res.Error != nil {
				r.writePlain("  - %s: %v\n", res.Movie.Label(), res.Error)
			}
		}
	}

	return nil
}

// LibraryExport writes the whole catalog to a file in the chosen format.
func (r *Runner) LibraryExport(ctx context.Context, cmd *cli.Command) error {
	opts := tasks.ExportOpts{
		Format: cmd.String("format"),
		Path:   cmd.String("output"),
	}

	r.logger.Info("starting export", "format", opts.Format)

	progressCh := make(chan tasks.ProgressUpdate, 100)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			r.writePlain("📦 %s\n", update.Message)
		}
	}()

	result, err := r.engine.ExportAll(ctx, progressCh, opts)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n✓ Exported %d movies to %s\n", result.Count, result.Path)
	return nil
}
