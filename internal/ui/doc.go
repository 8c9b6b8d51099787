// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow over the movie catalog:
//  1. [MovieListView] : Browse the cached catalog, refresh it from the server
//  2. [AddMovieView] : Fill in a new movie and submit it
//  3. [ConfirmDeleteView] : Confirm removal of the selected movie
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// The in-memory movie cache mirrors the server: activation and refresh replace it
// wholesale with the fetch result, a successful create appends the record the
// server returned, and a successful delete removes the record. A failed call
// leaves the cache exactly as it was and surfaces the error on the status line.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
