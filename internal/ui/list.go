package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/reelist/reelist/internal/models"
)

var _ list.Item = movieItem{}

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie models.Movie
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string       { return i.movie.Label() }
func (i movieItem) Description() string {
	desc := i.movie.Genre
	if desc == "" {
		desc = "Uncategorized"
	}
	if i.movie.Rating > 0 {
		desc = fmt.Sprintf("%s • %.1f", desc, i.movie.Rating)
	}
	return desc
}

// movieItems converts the cached movie slice into list items.
func movieItems(movies []models.Movie) []list.Item {
	items := make([]list.Item, 0, len(movies))
	for _, m := range movies {
		items = append(items, movieItem{movie: m})
	}
	return items
}
