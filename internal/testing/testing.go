// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/reelist/reelist/internal/models"
)

// MockLibrary is a configurable test double for [services.Library].
// Unset function fields fall back to empty results so callers only
// wire the calls a test cares about.
type MockLibrary struct {
	ListFunc   func(ctx context.Context) ([]models.Movie, error)
	GetFunc    func(ctx context.Context, id int64) (*models.Movie, error)
	CreateFunc func(ctx context.Context, movie models.Movie) (*models.Movie, error)
	UpdateFunc func(ctx context.Context, movie models.Movie) error
	DeleteFunc func(ctx context.Context, id int64) error
	HealthFunc func(ctx context.Context) error
}

func (m *MockLibrary) List(ctx context.Context) ([]models.Movie, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []models.Movie{}, nil
}

func (m *MockLibrary) Get(ctx context.Context, id int64) (*models.Movie, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &models.Movie{ID: id}, nil
}

func (m *MockLibrary) Create(ctx context.Context, movie models.Movie) (*models.Movie, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, movie)
	}
	return &movie, nil
}

func (m *MockLibrary) Update(ctx context.Context, movie models.Movie) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, movie)
	}
	return nil
}

func (m *MockLibrary) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockLibrary) Health(ctx context.Context) error {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
