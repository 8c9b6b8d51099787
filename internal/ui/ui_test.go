package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/reelist/reelist/internal/models"
	"github.com/reelist/reelist/internal/shared"
	tu "github.com/reelist/reelist/internal/testing"
)

func testCatalog() []models.Movie {
	return []models.Movie{
		{ID: 1, Title: "Alien", Genre: "Horror", Year: 1979, Rating: 8.5},
		{ID: 2, Title: "Heat", Genre: "Crime", Year: 1995, Rating: 8.3},
	}
}

// apply runs a single message through Update and asserts the model type back.
func apply(t *testing.T, m *Model, msg tea.Msg) (*Model, tea.Cmd) {
	t.Helper()

	updated, cmd := m.Update(msg)
	model, ok := updated.(*Model)
	if !ok {
		t.Fatalf("Update returned %T, expected *Model", updated)
	}
	return model, cmd
}

func newTestModel(t *testing.T, library *tu.MockLibrary) *Model {
	t.Helper()

	m := NewModel(context.Background(), library)
	m, _ = apply(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func typeString(t *testing.T, m *Model, s string) *Model {
	t.Helper()

	for _, r := range s {
		m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestModelInit(t *testing.T) {
	library := &tu.MockLibrary{
		ListFunc: func(ctx context.Context) ([]models.Movie, error) {
			return testCatalog(), nil
		},
	}
	m := newTestModel(t, library)

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init returned nil cmd, expected catalog fetch")
	}

	msg, ok := cmd().(moviesFetchedMsg)
	if !ok {
		t.Fatalf("Init cmd produced %T, expected moviesFetchedMsg", cmd())
	}

	m, _ = apply(t, m, msg)
	if len(m.movies) != 2 {
		t.Errorf("cache holds %d movies, expected 2", len(m.movies))
	}
	if m.status != "2 movies" {
		t.Errorf("status = %q, expected '2 movies'", m.status)
	}
}

func TestCacheSemantics(t *testing.T) {
	t.Run("Fetch Replaces Cache Wholesale", func(t *testing.T) {
		m := newTestModel(t, &tu.MockLibrary{})
		m, _ = apply(t, m, moviesFetchedMsg{movies: testCatalog()})

		replacement := []models.Movie{{ID: 9, Title: "Stalker", Year: 1979}}
		m, _ = apply(t, m, moviesFetchedMsg{movies: replacement})

		if len(m.movies) != 1 {
			t.Fatalf("cache holds %d movies after refetch, expected 1", len(m.movies))
		}
		if m.movies[0].ID != 9 {
			t.Errorf("cache holds movie %d, expected 9", m.movies[0].ID)
		}
		if len(m.movieList.Items()) != 1 {
			t.Errorf("list holds %d items, expected 1", len(m.movieList.Items()))
		}
	})

	t.Run("Fetch Failure Leaves Cache", func(t *testing.T) {
		m := newTestModel(t, &tu.MockLibrary{})
		m, _ = apply(t, m, moviesFetchedMsg{movies: testCatalog()})

		m, _ = apply(t, m, moviesFetchedMsg{err: errors.New("connection refused")})

		if len(m.movies) != 2 {
			t.Errorf("cache holds %d movies after failed fetch, expected 2", len(m.movies))
		}
		if m.err == nil {
			t.Error("expected fetch error to surface on the model")
		}
	})

	t.Run("Create Appends Server Record On Success", func(t *testing.T) {
		m := newTestModel(t, &tu.MockLibrary{})
		m, _ = apply(t, m, moviesFetchedMsg{movies: testCatalog()})

		created := &models.Movie{ID: 3, Title: "Arrival", Genre: "Sci-Fi", Year: 2016}
		m, _ = apply(t, m, movieCreatedMsg{movie: created})

		if len(m.movies) != 3 {
			t.Fatalf("cache holds %d movies after create, expected 3", len(m.movies))
		}
		if m.movies[2].ID != 3 {
			t.Errorf("appended movie has id %d, expected the server-assigned 3", m.movies[2].ID)
		}
		if m.status != "Added Arrival (2016)" {
			t.Errorf("status = %q", m.status)
		}
		if !m.statusOK {
			t.Error("expected success styling for the create status")
		}
	})

	t.Run("Create Failure Leaves Cache", func(t *testing.T) {
		m := newTestModel(t, &tu.MockLibrary{})
		m, _ = apply(t, m, moviesFetchedMsg{movies: testCatalog()})

		m, _ = apply(t, m, movieCreatedMsg{err: errors.New("server rejected it")})

		if len(m.movies) != 2 {
			t.Errorf("cache holds %d movies after failed create, expected 2", len(m.movies))
		}
		if m.err == nil {
			t.Error("expected create error to surface on the model")
		}
		if m.view != MovieListView {
			t.Errorf("view = %d, expected MovieListView", m.view)
		}
	})

	t.Run("Delete Removes Record On Success", func(t *testing.T) {
		m := newTestModel(t, &tu.MockLibrary{})
		m, _ = apply(t, m, moviesFetchedMsg{movies: testCatalog()})

		m, _ = apply(t, m, movieDeletedMsg{id: 1})

		if len(m.movies) != 1 {
			t.Fatalf("cache holds %d movies after delete, expected 1", len(m.movies))
		}
		if m.movies[0].ID != 2 {
			t.Errorf("remaining movie has id %d, expected 2", m.movies[0].ID)
		}
		if m.status != "Movie deleted" {
			t.Errorf("status = %q", m.status)
		}
	})

	t.Run("Delete Failure Leaves Cache", func(t *testing.T) {
		m := newTestModel(t, &tu.MockLibrary{})
		m, _ = apply(t, m, moviesFetchedMsg{movies: testCatalog()})

		m, _ = apply(t, m, movieDeletedMsg{id: 1, err: errors.New("not found")})

		if len(m.movies) != 2 {
			t.Errorf("cache holds %d movies after failed delete, expected 2", len(m.movies))
		}
		if m.err == nil {
			t.Error("expected delete error to surface on the model")
		}
	})
}

func TestKeyNavigation(t *testing.T) {
	keyRune := func(r rune) tea.KeyMsg {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
	}

	t.Run("a Opens Add Form", func(t *testing.T) {
		m := newTestModel(t, &tu.MockLibrary{})

		m, _ = apply(t, m, keyRune('a'))
		if m.view != AddMovieView {
			t.Errorf("view = %d, expected AddMovieView", m.view)
		}
	})

	t.Run("esc Returns To List", func(t *testing.T) {
		m := newTestModel(t, &tu.MockLibrary{})
		m, _ = apply(t, m, keyRune('a'))

		m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		if m.view != MovieListView {
			t.Errorf("view = %d, expected MovieListView", m.view)
		}
	})

	t.Run("x Opens Delete Confirmation", func(t *testing.T) {
		m := newTestModel(t, &tu.MockLibrary{})
		m, _ = apply(t, m, moviesFetchedMsg{movies: testCatalog()})

		m, _ = apply(t, m, keyRune('x'))
		if m.view != ConfirmDeleteView {
			t.Fatalf("view = %d, expected ConfirmDeleteView", m.view)
		}
		if m.pending == nil || m.pending.ID != 1 {
			t.Errorf("pending = %+v, expected the selected movie (id 1)", m.pending)
		}
	})

	t.Run("x With Empty List Does Nothing", func(t *testing.T) {
		m := newTestModel(t, &tu.MockLibrary{})

		m, _ = apply(t, m, keyRune('x'))
		if m.view != MovieListView {
			t.Errorf("view = %d, expected MovieListView", m.view)
		}
		if m.pending != nil {
			t.Errorf("pending = %+v, expected nil", m.pending)
		}
	})

	t.Run("n Cancels Delete", func(t *testing.T) {
		m := newTestModel(t, &tu.MockLibrary{})
		m, _ = apply(t, m, moviesFetchedMsg{movies: testCatalog()})
		m, _ = apply(t, m, keyRune('x'))

		m, _ = apply(t, m, keyRune('n'))
		if m.view != MovieListView {
			t.Errorf("view = %d, expected MovieListView", m.view)
		}
		if m.pending != nil {
			t.Errorf("pending = %+v, expected nil after cancel", m.pending)
		}
		if len(m.movies) != 2 {
			t.Errorf("cache holds %d movies after cancel, expected 2", len(m.movies))
		}
	})

	t.Run("r Refreshes Catalog", func(t *testing.T) {
		library := &tu.MockLibrary{
			ListFunc: func(ctx context.Context) ([]models.Movie, error) {
				return testCatalog(), nil
			},
		}
		m := newTestModel(t, library)

		m, cmd := apply(t, m, keyRune('r'))
		if cmd == nil {
			t.Fatal("expected r to issue a fetch cmd")
		}

		msg, ok := cmd().(moviesFetchedMsg)
		if !ok {
			t.Fatalf("refresh cmd produced %T, expected moviesFetchedMsg", cmd())
		}

		m, _ = apply(t, m, msg)
		if len(m.movies) != 2 {
			t.Errorf("cache holds %d movies after refresh, expected 2", len(m.movies))
		}
	})

	t.Run("q Quits From List", func(t *testing.T) {
		m := newTestModel(t, &tu.MockLibrary{})

		_, cmd := apply(t, m, keyRune('q'))
		if cmd == nil {
			t.Fatal("expected q to issue a quit cmd")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("q produced %T, expected tea.QuitMsg", cmd())
		}
	})
}

func TestAddMovieFlow(t *testing.T) {
	t.Run("Enter Advances Between Fields", func(t *testing.T) {
		m := newTestModel(t, &tu.MockLibrary{})
		m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

		m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		if m.form.focused != genreField {
			t.Errorf("focused = %d, expected genreField", m.form.focused)
		}
		if m.view != AddMovieView {
			t.Errorf("view = %d, expected AddMovieView", m.view)
		}
	})

	t.Run("Submits On Last Field Without Touching Cache", func(t *testing.T) {
		library := &tu.MockLibrary{
			CreateFunc: func(ctx context.Context, movie models.Movie) (*models.Movie, error) {
				created := movie
				created.ID = 42
				return &created, nil
			},
		}
		m := newTestModel(t, library)
		m, _ = apply(t, m, moviesFetchedMsg{movies: testCatalog()})
		m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

		m = typeString(t, m, "Ran")
		for range 3 {
			m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
		}

		m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		if cmd == nil {
			t.Fatal("expected enter on the last field to submit")
		}
		if len(m.movies) != 2 {
			t.Fatalf("cache mutated before the server confirmed the create")
		}

		msg, ok := cmd().(movieCreatedMsg)
		if !ok {
			t.Fatalf("submit produced %T, expected movieCreatedMsg", cmd())
		}
		if msg.err != nil {
			t.Fatalf("create failed: %v", msg.err)
		}

		m, _ = apply(t, m, msg)
		if m.view != MovieListView {
			t.Errorf("view = %d, expected MovieListView after create", m.view)
		}
		if len(m.movies) != 3 || m.movies[2].ID != 42 {
			t.Errorf("cache = %+v, expected the server echo appended", m.movies)
		}
	})

	t.Run("Rejects Non Numeric Year", func(t *testing.T) {
		m := newTestModel(t, &tu.MockLibrary{})
		m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

		m = typeString(t, m, "Dune")
		m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
		m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
		m = typeString(t, m, "MCML")
		m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})

		m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		if cmd != nil {
			t.Error("expected no submit cmd for a non-numeric year")
		}
		if !errors.Is(m.err, shared.ErrInvalidInput) {
			t.Errorf("err = %v, expected shared.ErrInvalidInput", m.err)
		}
		if m.view != AddMovieView {
			t.Errorf("view = %d, expected to stay on AddMovieView", m.view)
		}
	})

	t.Run("Form Resets Between Visits", func(t *testing.T) {
		m := newTestModel(t, &tu.MockLibrary{})
		m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
		m = typeString(t, m, "Alien")
		m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEsc})

		m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
		if got := m.form.inputs[titleField].Value(); got != "" {
			t.Errorf("title field = %q, expected a fresh form", got)
		}
	})
}

func TestDeleteMovieFlow(t *testing.T) {
	library := &tu.MockLibrary{
		DeleteFunc: func(ctx context.Context, id int64) error {
			return nil
		},
	}
	m := newTestModel(t, library)
	m, _ = apply(t, m, moviesFetchedMsg{movies: testCatalog()})
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if cmd == nil {
		t.Fatal("expected y to issue a delete cmd")
	}
	if len(m.movies) != 2 {
		t.Fatal("cache mutated before the server confirmed the delete")
	}

	msg, ok := cmd().(movieDeletedMsg)
	if !ok {
		t.Fatalf("delete produced %T, expected movieDeletedMsg", cmd())
	}
	if msg.id != 1 {
		t.Errorf("delete targeted id %d, expected 1", msg.id)
	}

	m, _ = apply(t, m, msg)
	if len(m.movies) != 1 || m.movies[0].ID != 2 {
		t.Errorf("cache = %+v, expected only movie 2 to remain", m.movies)
	}
	if m.pending != nil {
		t.Errorf("pending = %+v, expected nil after delete", m.pending)
	}
}

func TestViewRendering(t *testing.T) {
	m := newTestModel(t, &tu.MockLibrary{})
	m, _ = apply(t, m, moviesFetchedMsg{movies: testCatalog()})

	if view := m.View(); !strings.Contains(view, "Alien") {
		t.Error("list view does not show the cached catalog")
	}

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	if view := m.View(); !strings.Contains(view, "Add Movie") {
		t.Error("form view does not show its title")
	}

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if view := m.View(); !strings.Contains(view, "Delete 'Alien (1979)'?") {
		t.Error("confirm view does not name the pending movie")
	}
}
