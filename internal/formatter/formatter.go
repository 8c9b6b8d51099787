// package formatter renders movie collections to various formats (JSON, CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/reelist/reelist/internal/models"
	"github.com/reelist/reelist/internal/shared"
)

// Known export formats accepted by [Render] and [WriteExport].
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
)

// ExportToCSV converts a movie collection to CSV with columns: ID, Title, Genre, Year, Rating
func ExportToCSV(movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Genre", "Year", "Rating"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range movies {
		record := []string{
			strconv.FormatInt(movie.ID, 10),
			movie.Title,
			movie.Genre,
			strconv.Itoa(int(movie.Year)),
			strconv.FormatFloat(movie.Rating, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a movie collection to a Markdown document with a summary and a table
func ExportToMarkdown(movies []models.Movie, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Movie Collection"
	}

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Movies**: %d\n\n", len(movies)))

	buf.WriteString("| ID | Title | Genre | Year | Rating |\n")
	buf.WriteString("|---|---|---|---|---|\n")
	for _, movie := range movies {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %d | %.1f |\n",
			movie.ID, movie.Title, movie.Genre, movie.Year, movie.Rating))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a movie collection to plain text format
func ExportToText(movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Movies: %d\n\n", len(movies)))

	for i, movie := range movies {
		line := fmt.Sprintf("%d. %s", i+1, movie.Label())
		if movie.Genre != "" {
			line += fmt.Sprintf(" [%s]", movie.Genre)
		}
		if movie.Rating > 0 {
			line += fmt.Sprintf(" %.1f", movie.Rating)
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a movie collection to an indented JSON array
func ExportToJSON(movies []models.Movie) ([]byte, error) {
	return shared.MarshalJSON(movies, true)
}

// Render dispatches to the exporter for the named format. An empty format
// defaults to JSON; unknown formats wrap [shared.ErrInvalidFlag].
func Render(movies []models.Movie, format string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(movies)
	case FormatMarkdown:
		return ExportToMarkdown(movies, "")
	case FormatText:
		return ExportToText(movies)
	case FormatJSON, "":
		return ExportToJSON(movies)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, format)
	}
}

// Ext returns the file extension for a known format, defaulting to json.
func Ext(format string) string {
	switch format {
	case FormatCSV:
		return "csv"
	case FormatMarkdown:
		return "md"
	case FormatText:
		return "txt"
	default:
		return "json"
	}
}

// WriteExport renders a movie collection and writes it to path.
//
// Defaults to movies.{ext} in the working directory when path is empty.
// Returns the path written.
func WriteExport(movies []models.Movie, format, path string) (string, error) {
	data, err := Render(movies, format)
	if err != nil {
		return "", err
	}

	if path == "" {
		path = fmt.Sprintf("movies.%s", Ext(format))
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
