package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/reelist/reelist/internal/models"
	"github.com/reelist/reelist/internal/shared"
)

// MovieRepository implements models.Repository for the movies table.
//
// Handles movie CRUD operations with store-assigned auto-increment ids and
// permanent deletes.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new MovieRepository with the given database connection
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Insert stores a new movie and assigns its ID from the database.
//
// Any id already set on the movie is ignored; the store is the only id
// authority.
func (r *MovieRepository) Insert(ctx context.Context, movie *models.Movie) error {
	query := `
		INSERT INTO movies (title, genre, year, rating)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		movie.Title,
		movie.Genre,
		movie.Year,
		movie.Rating,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to insert movie: %v", shared.ErrStorage, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("%w: failed to read assigned id: %v", shared.ErrStorage, err)
	}

	movie.ID = id
	return nil
}

// Get retrieves a movie by ID
func (r *MovieRepository) Get(ctx context.Context, id int64) (*models.Movie, error) {
	query := `
		SELECT id, title, genre, year, rating
		FROM movies
		WHERE id = ?
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// List retrieves every movie in the library
func (r *MovieRepository) List(ctx context.Context) ([]models.Movie, error) {
	query := `
		SELECT id, title, genre, year, rating
		FROM movies
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query movies: %v", shared.ErrStorage, err)
	}
	defer rows.Close()

	movies := []models.Movie{}
	for rows.Next() {
		movie, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: row iteration error: %v", shared.ErrStorage, err)
	}

	return movies, nil
}

// Replace overwrites all non-key fields of an existing movie.
//
// When the UPDATE touches zero rows the movie's existence is re-checked:
// a vanished row reports shared.ErrNotFound, a row that still exists means
// the write raced a concurrent change and reports shared.ErrConflict.
func (r *MovieRepository) Replace(ctx context.Context, movie *models.Movie) error {
	query := `
		UPDATE movies
		SET title = ?, genre = ?, year = ?, rating = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		movie.Title,
		movie.Genre,
		movie.Year,
		movie.Rating,
		movie.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to update movie: %v", shared.ErrStorage, err)
	}

	rows, err := affectedRows(result)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}
	if rows == 0 {
		if _, err := r.Get(ctx, movie.ID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return fmt.Errorf("%w: movie %d", shared.ErrNotFound, movie.ID)
			}
			return err
		}
		return fmt.Errorf("%w: movie %d", shared.ErrConflict, movie.ID)
	}

	return nil
}

// Delete permanently removes a movie by ID
func (r *MovieRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM movies
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete movie: %v", shared.ErrStorage, err)
	}

	rows, err := affectedRows(result)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: movie %d", shared.ErrNotFound, id)
	}

	return nil
}

// scanOne scans a single [sql.Row] into a [models.Movie]
func (r *MovieRepository) scanOne(row *sql.Row) (*models.Movie, error) {
	var movie models.Movie

	err := row.Scan(&movie.ID, &movie.Title, &movie.Genre, &movie.Year, &movie.Rating)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: movie", shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to scan movie: %v", shared.ErrStorage, err)
	}

	return &movie, nil
}

// scanRow scans a row from [sql.Rows] into a [models.Movie]
func (r *MovieRepository) scanRow(rows *sql.Rows) (*models.Movie, error) {
	var movie models.Movie

	err := rows.Scan(&movie.ID, &movie.Title, &movie.Genre, &movie.Year, &movie.Rating)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to scan movie: %v", shared.ErrStorage, err)
	}

	return &movie, nil
}
