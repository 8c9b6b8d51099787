// package services defines interface Library for talking to the catalog API
package services

import (
	"context"

	"github.com/reelist/reelist/internal/models"
)

// Library defines the client-side contract for a movie catalog server. The HTTP
// implementation is [MoviesClient]; tests substitute doubles.
type Library interface {
	// List retrieves every movie in the catalog.
	List(ctx context.Context) ([]models.Movie, error)

	// Get retrieves a single movie by id.
	// Absence wraps [shared.ErrNotFound].
	Get(ctx context.Context, id int64) (*models.Movie, error)

	// Create stores a new movie and returns the record with its assigned id.
	// Any id on the input is ignored by the server.
	Create(ctx context.Context, movie models.Movie) (*models.Movie, error)

	// Update replaces the stored record identified by movie.ID.
	Update(ctx context.Context, movie models.Movie) error

	// Delete removes a movie by id.
	// Absence wraps [shared.ErrNotFound].
	Delete(ctx context.Context, id int64) error

	// Health verifies the server is reachable and responding.
	Health(ctx context.Context) error
}
