package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reelist/reelist/internal/models"
	"github.com/reelist/reelist/internal/shared"
	tu "github.com/reelist/reelist/internal/testing"
)

func catalogOf(movies []models.Movie) *tu.MockLibrary {
	return &tu.MockLibrary{
		ListFunc: func(ctx context.Context) ([]models.Movie, error) {
			return movies, nil
		},
	}
}

func TestLibraryEngine_ExportAll(t *testing.T) {
	movies := []models.Movie{
		{ID: 1, Title: "Alien", Genre: "Horror", Year: 1979, Rating: 8.5},
		{ID: 2, Title: "Arrival", Genre: "Sci-Fi", Year: 2016, Rating: 7.9},
	}

	tests := []struct {
		name     string
		format   string
		filename string
		validate func(t *testing.T, content string)
	}{
		{
			name:     "json export",
			format:   "json",
			filename: "export.json",
			validate: func(t *testing.T, content string) {
				if !strings.Contains(content, `"title": "Alien"`) {
					t.Errorf("JSON export missing movie, got: %s", content)
				}
			},
		},
		{
			name:     "csv export",
			format:   "csv",
			filename: "export.csv",
			validate: func(t *testing.T, content string) {
				if !strings.Contains(content, "ID,Title,Genre,Year,Rating") {
					t.Errorf("CSV export missing header, got: %s", content)
				}
			},
		},
		{
			name:     "markdown export",
			format:   "markdown",
			filename: "export.md",
			validate: func(t *testing.T, content string) {
				if !strings.Contains(content, "| 1 | Alien | Horror | 1979 | 8.5 |") {
					t.Errorf("Markdown export missing row, got: %s", content)
				}
			},
		},
		{
			name:     "text export",
			format:   "txt",
			filename: "export.txt",
			validate: func(t *testing.T, content string) {
				if !strings.Contains(content, "Movies: 2") {
					t.Errorf("text export missing count, got: %s", content)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewLibraryEngine(catalogOf(movies))
			path := filepath.Join(t.TempDir(), tt.filename)

			progressCh := make(chan ProgressUpdate, 100)

			result, err := engine.ExportAll(context.Background(), progressCh, ExportOpts{
				Format: tt.format,
				Path:   path,
			})
			close(progressCh)

			if err != nil {
				t.Fatalf("ExportAll() error = %v", err)
			}

			if result.Count != 2 {
				t.Errorf("Count = %d, want 2", result.Count)
			}
			if result.Path != path {
				t.Errorf("Path = %s, want %s", result.Path, path)
			}
			if result.Format != tt.format {
				t.Errorf("Format = %s, want %s", result.Format, tt.format)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("export file not written: %v", err)
			}
			tt.validate(t, string(data))
		})
	}

	t.Run("empty format defaults to json", func(t *testing.T) {
		engine := NewLibraryEngine(catalogOf(movies))
		path := filepath.Join(t.TempDir(), "default.json")

		result, err := engine.ExportAll(context.Background(), nil, ExportOpts{Path: path})
		if err != nil {
			t.Fatalf("ExportAll() error = %v", err)
		}
		if result.Format != "json" {
			t.Errorf("Format = %s, want json", result.Format)
		}
	})

	t.Run("fetch failure propagates", func(t *testing.T) {
		lib := &tu.MockLibrary{
			ListFunc: func(ctx context.Context) ([]models.Movie, error) {
				return nil, errors.New("server down")
			},
		}
		engine := NewLibraryEngine(lib)

		_, err := engine.ExportAll(context.Background(), nil, ExportOpts{})
		if err == nil {
			t.Fatal("expected error when the catalog fetch fails")
		}
		if !strings.Contains(err.Error(), "failed to fetch catalog") {
			t.Errorf("expected fetch context in error, got %v", err)
		}
	})

	t.Run("nil library", func(t *testing.T) {
		engine := NewLibraryEngine(nil)

		_, err := engine.ExportAll(context.Background(), nil, ExportOpts{})
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("progress updates are emitted", func(t *testing.T) {
		engine := NewLibraryEngine(catalogOf(movies))
		path := filepath.Join(t.TempDir(), "progress.json")

		progressCh := make(chan ProgressUpdate, 100)
		if _, err := engine.ExportAll(context.Background(), progressCh, ExportOpts{Path: path}); err != nil {
			t.Fatalf("ExportAll() error = %v", err)
		}
		close(progressCh)

		phases := map[Phase]bool{}
		for update := range progressCh {
			phases[update.Phase] = true
		}

		if !phases[FetchCatalog] {
			t.Error("expected a fetch_catalog progress update")
		}
		if !phases[ExportCatalog] {
			t.Error("expected an export_catalog progress update")
		}
	})
}

func TestEngineInterface(t *testing.T) {
	var _ Engine = NewLibraryEngine(nil)
}
