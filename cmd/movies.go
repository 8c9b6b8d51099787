package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/reelist/reelist/internal/models"
	"github.com/reelist/reelist/internal/shared"
)

// parseID parses a positional id argument into the int64 the API uses.
func parseID(arg string) (int64, error) {
	if arg == "" {
		return 0, fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: movie id must be a number, got %q", shared.ErrInvalidArgument, arg)
	}

	return id, nil
}

// parseRating parses the --rating flag, which is optional and may be empty.
func parseRating(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}

	rating, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: rating must be a number, got %q", shared.ErrInvalidFlag, value)
	}

	return rating, nil
}

// MoviesList prints every movie in the catalog.
func (r *Runner) MoviesList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	movies, err := r.client.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list movies: %w", err)
	}

	if useJSON {
		return r.writeJSON(movies, pretty)
	}

	r.writePlain("Found %d movies:\n\n", len(movies))
	for _, m := range movies {
		r.writePlain("%d. %s\n", m.ID, m.Label())
		if m.Genre != "" {
			r.writePlain("   Genre: %s\n", m.Genre)
		}
		if m.Rating > 0 {
			r.writePlain("   Rating: %.1f\n", m.Rating)
		}
		r.writePlain("\n")
	}

	return nil
}

// MoviesGet fetches a single movie by id and prints it as JSON.
func (r *Runner) MoviesGet(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}
	pretty := cmd.Bool("pretty")

	r.logger.Info("fetching movie", "id", id)

	movie, err := r.client.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch movie %d: %w", id, err)
	}

	return r.writeJSON(movie, pretty)
}

// MoviesAdd creates a movie from the provided flags.
//
// The id on the printed record comes from the server, never from input.
func (r *Runner) MoviesAdd(ctx context.Context, cmd *cli.Command) error {
	rating, err := parseRating(cmd.String("rating"))
	if err != nil {
		return err
	}

	movie := models.Movie{
		Title:  cmd.String("title"),
		Genre:  cmd.String("genre"),
		Year:   int32(cmd.Int("year")),
		Rating: rating,
	}

	r.logger.Info("creating movie", "title", movie.Title)

	created, err := r.client.Create(ctx, movie)
	if err != nil {
		return fmt.Errorf("failed to create movie: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(created, true)
	}

	r.writePlain("✓ Added %s (id %d)\n", created.Label(), created.ID)
	return nil
}

// MoviesUpdate replaces every field of an existing movie.
func (r *Runner) MoviesUpdate(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	rating, err := parseRating(cmd.String("rating"))
	if err != nil {
		return err
	}

	movie := models.Movie{
		ID:     id,
		Title:  cmd.String("title"),
		Genre:  cmd.String("genre"),
		Year:   int32(cmd.Int("year")),
		Rating: rating,
	}

	r.logger.Info("updating movie", "id", id)

	if err := r.client.Update(ctx, movie); err != nil {
		return fmt.Errorf("failed to update movie %d: %w", id, err)
	}

	r.writePlain("✓ Updated %s\n", movie.Label())
	return nil
}

// MoviesRemove deletes a movie by id.
func (r *Runner) MoviesRemove(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	r.logger.Info("deleting movie", "id", id)

	if err := r.client.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete movie %d: %w", id, err)
	}

	r.writePlain("✓ Deleted movie %d\n", id)
	return nil
}
