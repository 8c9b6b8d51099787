package tasks

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/reelist/reelist/internal/models"
	"github.com/reelist/reelist/internal/shared"
	"golang.org/x/time/rate"
)

// BulkImportOpts contains configuration for bulk movie imports.
type BulkImportOpts struct {
	NumWorkers int     // Concurrent workers (default: 5)
	RateLimit  float64 // Requests per second (default: 5)
}

type importJob struct {
	index int
	movie models.Movie
}

// BulkImport creates movies concurrently with rate limiting and progress tracking.
//
// This method implements a worker pool pattern so large files import in parallel
// while the rate limiter keeps request volume bounded. Partial failures are
// collected in the result and never retried.
func (e *LibraryEngine) BulkImport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	movies []models.Movie,
	opts BulkImportOpts,
) (*BulkImportResult, error) {
	if e.library == nil {
		return nil, fmt.Errorf("%w: library client not initialized", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	result := &BulkImportResult{
		TotalRecords: len(movies),
		Results:      make([]MovieImportResult, 0, len(movies)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan importJob, len(movies))
	results := make(chan MovieImportResult, len(movies))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.importWorker(ctx, &wg, limiter, jobs, results)
	}

	e.sendProgress(prog, importStartUpdate(len(movies)))

	for i, movie := range movies {
		jobs <- importJob{index: i, movie: movie}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Error == nil {
			result.SuccessfulImports++
			e.sendProgress(prog, importedUpdate(completed, len(movies), res.Movie.Label()))
		} else {
			result.FailedImports++
			e.sendProgress(prog, importFailedUpdate(completed, len(movies), res.Movie.Label(), res.Error))
		}
	}

	// Cancellation drops queued records; whatever finished stays in the result.
	return result, ctx.Err()
}

// importWorker is a worker goroutine that creates movies from the jobs channel.
func (e *LibraryEngine) importWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan importJob,
	results chan<- MovieImportResult,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := limiter.Wait(ctx); err != nil {
			return
		}

		created, err := e.library.Create(ctx, job.movie)
		results <- MovieImportResult{
			Movie:   job.movie,
			Created: created,
			Error:   err,
		}
	}
}

// ImportFile loads an import file and creates every record it contains.
func (e *LibraryEngine) ImportFile(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	path string,
	opts BulkImportOpts,
) (*BulkImportResult, error) {
	e.sendProgress(prog, parseInputUpdate(path))

	movies, err := LoadMoviesFile(path)
	if err != nil {
		return nil, err
	}

	return e.BulkImport(ctx, prog, movies, opts)
}

// LoadMoviesFile reads an import file into movie records. The format is chosen
// by extension: .json expects an array of movie objects, .csv the column
// layout written by the exporter.
func LoadMoviesFile(path string) ([]models.Movie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return parseMoviesJSON(data)
	case ".csv":
		return parseMoviesCSV(data)
	default:
		return nil, fmt.Errorf("%w: unsupported import format %q", shared.ErrInvalidInput, filepath.Ext(path))
	}
}

func parseMoviesJSON(data []byte) ([]models.Movie, error) {
	var movies []models.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON: %v", shared.ErrInvalidInput, err)
	}
	return movies, nil
}

func parseMoviesCSV(data []byte) ([]models.Movie, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse CSV: %v", shared.ErrInvalidInput, err)
	}
	if len(records) == 0 {
		return []models.Movie{}, nil
	}

	// Column positions follow the exporter's header row. A leading ID column
	// is accepted but ignored since the server assigns ids.
	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}

	titleIdx, ok := col["title"]
	if !ok {
		return nil, fmt.Errorf("%w: CSV header missing title column", shared.ErrInvalidInput)
	}

	movies := make([]models.Movie, 0, len(records)-1)
	for i, record := range records[1:] {
		movie := models.Movie{Title: record[titleIdx]}

		if idx, ok := col["genre"]; ok {
			movie.Genre = record[idx]
		}
		if idx, ok := col["year"]; ok && record[idx] != "" {
			year, err := strconv.Atoi(record[idx])
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: invalid year %q", shared.ErrInvalidInput, i+2, record[idx])
			}
			movie.Year = int32(year)
		}
		if idx, ok := col["rating"]; ok && record[idx] != "" {
			rating, err := strconv.ParseFloat(record[idx], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: invalid rating %q", shared.ErrInvalidInput, i+2, record[idx])
			}
			movie.Rating = rating
		}

		movies = append(movies, movie)
	}

	return movies, nil
}
