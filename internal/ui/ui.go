package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/reelist/reelist/internal/models"
	"github.com/reelist/reelist/internal/services"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	MovieListView ViewState = iota
	AddMovieView
	ConfirmDeleteView
)

// Model represents the TUI application state. The movies slice is the local
// cache of the server catalog; it only changes in response to a completed
// server call, never ahead of one.
type Model struct {
	ctx       context.Context
	view      ViewState
	library   services.Library
	width     int
	height    int
	movieList list.Model
	movies    []models.Movie
	form      addForm
	pending   *models.Movie
	status    string
	statusOK  bool
	err       error
	help      help.Model
	keys      keyMap
}

type moviesFetchedMsg struct {
	movies []models.Movie
	err    error
}

type movieCreatedMsg struct {
	movie *models.Movie
	err   error
}

type movieDeletedMsg struct {
	id  int64
	err error
}

// NewModel creates a new TUI model backed by the provided library client.
func NewModel(ctx context.Context, library services.Library) *Model {
	movieList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	movieList.Title = "Movies"
	movieList.SetShowHelp(false)
	// Single-letter bindings (a, x, r, q) would collide with filter input.
	movieList.SetFilteringEnabled(false)

	return &Model{
		ctx:       ctx,
		view:      MovieListView,
		library:   library,
		movieList: movieList,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init loads the movie catalog from the server.
func (m *Model) Init() tea.Cmd {
	return m.fetchMovies()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.movieList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case MovieListView:
			return m.handleListKeys(msg)
		case AddMovieView:
			return m.handleFormKeys(msg)
		case ConfirmDeleteView:
			return m.handleConfirmKeys(msg)
		}

	case moviesFetchedMsg:
		// A failed fetch keeps the previous cache on screen; r retries.
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.movies = msg.movies
		m.movieList.SetItems(movieItems(m.movies))
		m.status = fmt.Sprintf("%d movies", len(m.movies))
		m.statusOK = false
		return m, nil

	case movieCreatedMsg:
		m.view = MovieListView
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.movies = append(m.movies, *msg.movie)
		m.movieList.SetItems(movieItems(m.movies))
		m.status = fmt.Sprintf("Added %s", msg.movie.Label())
		m.statusOK = true
		return m, nil

	case movieDeletedMsg:
		m.view = MovieListView
		m.pending = nil
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		kept := make([]models.Movie, 0, len(m.movies))
		for _, movie := range m.movies {
			if movie.ID != msg.id {
				kept = append(kept, movie)
			}
		}
		m.movies = kept
		m.movieList.SetItems(movieItems(m.movies))
		m.status = "Movie deleted"
		m.statusOK = true
		return m, nil
	}

	return m.updateChildren(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case MovieListView:
		return m.renderMovieList()
	case AddMovieView:
		return m.renderAddForm()
	case ConfirmDeleteView:
		return m.renderConfirm()
	default:
		return ""
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.add):
		// Fresh form every visit so earlier input never leaks in.
		m.form = newAddForm()
		m.view = AddMovieView
		m.err = nil
		return m, textinput.Blink
	case key.Matches(msg, m.keys.remove):
		if selected, ok := m.movieList.SelectedItem().(movieItem); ok {
			movie := selected.movie
			m.pending = &movie
			m.view = ConfirmDeleteView
		}
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		return m, m.fetchMovies()
	}

	var cmd tea.Cmd
	m.movieList, cmd = m.movieList.Update(msg)
	return m, cmd
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = MovieListView
		m.err = nil
		return m, nil
	case "tab", "down":
		return m, m.form.next()
	case "shift+tab", "up":
		return m, m.form.prev()
	case "enter":
		if !m.form.onLastField() {
			return m, m.form.next()
		}
		movie, err := m.form.movie()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		return m, m.createMovie(movie)
	}

	return m, m.form.update(msg)
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = MovieListView
		m.pending = nil
		return m, nil
	case "y":
		if m.pending != nil {
			return m, m.deleteMovie(m.pending.ID)
		}
		m.view = MovieListView
	}
	return m, nil
}

func (m *Model) updateChildren(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case MovieListView:
		m.movieList, cmd = m.movieList.Update(msg)
	case AddMovieView:
		cmd = m.form.update(msg)
	}
	return m, cmd
}

func (m *Model) fetchMovies() tea.Cmd {
	return func() tea.Msg {
		movies, err := m.library.List(m.ctx)
		return moviesFetchedMsg{movies: movies, err: err}
	}
}

func (m *Model) createMovie(movie models.Movie) tea.Cmd {
	return func() tea.Msg {
		created, err := m.library.Create(m.ctx, movie)
		return movieCreatedMsg{movie: created, err: err}
	}
}

func (m *Model) deleteMovie(id int64) tea.Cmd {
	return func() tea.Msg {
		err := m.library.Delete(m.ctx, id)
		return movieDeletedMsg{id: id, err: err}
	}
}

func (m *Model) renderMovieList() string {
	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	return fmt.Sprintf("%s\n%s\n%s", m.movieList.View(), m.statusLine(), helpView)
}

func (m *Model) statusLine() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.status == "" {
		return ""
	}
	if m.statusOK {
		return styles.ok.Render(m.status)
	}
	return styles.help.Render(m.status)
}

func (m *Model) renderAddForm() string {
	title := styles.title.Render("Add Movie")

	var errLine string
	if m.err != nil {
		errLine = fmt.Sprintf("\n\n%s", styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	quitKey := key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	helpKeys := []key.Binding{m.keys.enter, m.keys.back, quitKey}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, m.form.view(), errLine, helpView)
}

func (m *Model) renderConfirm() string {
	if m.pending == nil {
		return ""
	}

	title := styles.title.Render(fmt.Sprintf("Delete '%s'?", m.pending.Label()))
	info := styles.warn.Render("This removes the movie from the server.")

	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}
