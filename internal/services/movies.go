// HTTP implementation of [Library] for the reelist API
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/reelist/reelist/internal/models"
	"github.com/reelist/reelist/internal/shared"
)

// MoviesClient talks to a reelist server over its JSON API.
type MoviesClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewMoviesClient creates a client for the given server base URL.
func NewMoviesClient(baseURL string, client *http.Client) *MoviesClient {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &MoviesClient{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// doRequest performs a single HTTP request against the API. Failed requests are
// never retried; every failure propagates to the caller. Error statuses carry
// no body, so the status code alone is mapped onto the shared sentinels.
func (c *MoviesClient) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	apiURL := c.baseURL + endpoint

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", shared.ErrNotFound, method, endpoint)
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s %s", shared.ErrInvalidInput, method, endpoint)
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s %s", shared.ErrConflict, method, endpoint)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// List retrieves every movie in the catalog.
func (c *MoviesClient) List(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	if err := c.doRequest(ctx, "GET", "/api/movies", nil, &movies); err != nil {
		return nil, err
	}

	// Callers replace their caches with this slice wholesale, so an empty
	// catalog must come back as an empty slice rather than nil.
	if movies == nil {
		movies = []models.Movie{}
	}
	return movies, nil
}

// Get retrieves a single movie by id.
func (c *MoviesClient) Get(ctx context.Context, id int64) (*models.Movie, error) {
	var movie models.Movie
	endpoint := fmt.Sprintf("/api/movies/%d", id)
	if err := c.doRequest(ctx, "GET", endpoint, nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// Create stores a new movie and returns the record with its server-assigned id.
func (c *MoviesClient) Create(ctx context.Context, movie models.Movie) (*models.Movie, error) {
	var created models.Movie
	if err := c.doRequest(ctx, "POST", "/api/movies", movie, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces the stored record identified by movie.ID.
func (c *MoviesClient) Update(ctx context.Context, movie models.Movie) error {
	endpoint := fmt.Sprintf("/api/movies/%d", movie.ID)
	return c.doRequest(ctx, "PUT", endpoint, movie, nil)
}

// Delete removes a movie by id.
func (c *MoviesClient) Delete(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("/api/movies/%d", id)
	return c.doRequest(ctx, "DELETE", endpoint, nil, nil)
}

// Health verifies the server is reachable and responding.
func (c *MoviesClient) Health(ctx context.Context) error {
	return c.doRequest(ctx, "GET", "/api/health", nil, nil)
}
