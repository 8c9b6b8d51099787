// package models defines the data model for the movie library service
package models

import (
	"context"
	"fmt"
)

// Movie represents a single record in the library.
//
// ID is assigned by the store when the record is inserted and is immutable
// afterwards. Title and Genre default to empty strings rather than NULL.
type Movie struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Genre  string  `json:"genre"`
	Year   int32   `json:"year"`
	Rating float64 `json:"rating"`
}

// Label returns a single-line description used by list displays.
func (m Movie) Label() string {
	if m.Year == 0 {
		return m.Title
	}
	return fmt.Sprintf("%s (%d)", m.Title, m.Year)
}

// Repository defines the interface for movie data access operations.
// Implementations handle database interactions for the movies table.
type Repository interface {
	Insert(ctx context.Context, movie *Movie) error          // Insert stores a new movie and assigns its ID
	Get(ctx context.Context, id int64) (*Movie, error)       // Get retrieves a movie by its ID
	List(ctx context.Context) ([]Movie, error)               // List retrieves every movie in the library
	Replace(ctx context.Context, movie *Movie) error         // Replace overwrites all fields of an existing movie
	Delete(ctx context.Context, id int64) error              // Delete permanently removes a movie by its ID
}
