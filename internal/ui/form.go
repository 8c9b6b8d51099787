package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/reelist/reelist/internal/models"
	"github.com/reelist/reelist/internal/shared"
)

const (
	titleField = iota
	genreField
	yearField
	ratingField
	fieldCount
)

// addForm collects the fields for a new movie. A fresh form is built every
// time the add view opens so stale input never leaks between visits.
type addForm struct {
	inputs  []textinput.Model
	focused int
}

func newAddForm() addForm {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 128
	}

	inputs[titleField].Placeholder = "Title"
	inputs[titleField].Focus()
	inputs[genreField].Placeholder = "Genre"
	inputs[yearField].Placeholder = "Year"
	inputs[yearField].CharLimit = 4
	inputs[ratingField].Placeholder = "Rating (0-10)"
	inputs[ratingField].CharLimit = 4

	return addForm{inputs: inputs}
}

// next moves focus to the following field, wrapping at the end.
func (f *addForm) next() tea.Cmd {
	f.inputs[f.focused].Blur()
	f.focused = (f.focused + 1) % fieldCount
	return f.inputs[f.focused].Focus()
}

// prev moves focus to the preceding field, wrapping at the start.
func (f *addForm) prev() tea.Cmd {
	f.inputs[f.focused].Blur()
	f.focused = (f.focused - 1 + fieldCount) % fieldCount
	return f.inputs[f.focused].Focus()
}

func (f *addForm) onLastField() bool {
	return f.focused == fieldCount-1
}

func (f *addForm) update(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(f.inputs))
	for i := range f.inputs {
		f.inputs[i], cmds[i] = f.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

// movie builds the record from the current input values. Year and rating
// must parse when present; everything else is passed through as typed, the
// server owns any further interpretation.
func (f *addForm) movie() (models.Movie, error) {
	m := models.Movie{
		Title: strings.TrimSpace(f.inputs[titleField].Value()),
		Genre: strings.TrimSpace(f.inputs[genreField].Value()),
	}

	if v := strings.TrimSpace(f.inputs[yearField].Value()); v != "" {
		year, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return models.Movie{}, fmt.Errorf("%w: year must be a number", shared.ErrInvalidInput)
		}
		m.Year = int32(year)
	}

	if v := strings.TrimSpace(f.inputs[ratingField].Value()); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return models.Movie{}, fmt.Errorf("%w: rating must be a number", shared.ErrInvalidInput)
		}
		m.Rating = rating
	}

	return m, nil
}

func (f *addForm) view() string {
	var b strings.Builder
	for i := range f.inputs {
		b.WriteString(f.inputs[i].View())
		if i < fieldCount-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
