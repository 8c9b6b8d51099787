package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/reelist/reelist/internal/models"
	"github.com/reelist/reelist/internal/shared"
)

// MovieHandler serves the movie collection endpoints.
type MovieHandler struct {
	repo   models.Repository
	logger *log.Logger
}

// NewMovieHandler creates a MovieHandler backed by the given repository.
func NewMovieHandler(repo models.Repository, logger *log.Logger) *MovieHandler {
	return &MovieHandler{repo: repo, logger: logger}
}

// Routes returns the subrouter serving the movie collection.
func (h *MovieHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// List responds with every movie as a bare JSON array.
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	movies, err := h.repo.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	// JSON null is not an empty collection.
	if movies == nil {
		movies = []models.Movie{}
	}

	h.respondJSON(w, http.StatusOK, movies)
}

// Get responds with a single movie, or 404 with an empty body when the id
// does not resolve.
func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	movie, err := h.repo.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, movie)
}

// Create inserts a new movie and responds 201 with the stored record and a
// Location header naming it.
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	var movie models.Movie
	if err := decodeJSON(r, &movie); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// The store is the only id authority; anything the client sent is discarded.
	movie.ID = 0

	if err := h.repo.Insert(r.Context(), &movie); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/movies/%d", movie.ID))
	h.respondJSON(w, http.StatusCreated, movie)
}

// Update replaces all fields of an existing movie.
//
// The body must carry the same id as the path; a mismatch is rejected before
// the store is touched.
func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var movie models.Movie
	if err := decodeJSON(r, &movie); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if movie.ID != id {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.repo.Replace(r.Context(), &movie); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete permanently removes a movie.
func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// respondJSON writes a JSON body, logging encode failures.
func (h *MovieHandler) respondJSON(w http.ResponseWriter, status int, v any) {
	if err := writeJSON(w, status, v); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

// respondError maps store errors onto status codes. Error bodies stay empty;
// the status code is the whole contract.
func (h *MovieHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, shared.ErrInvalidInput):
		w.WriteHeader(http.StatusBadRequest)
	case errors.Is(err, shared.ErrConflict):
		h.logger.Warn("update raced a concurrent change", "path", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
	default:
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// pathID parses the {id} route parameter. A non-numeric id cannot name a
// stored movie, so callers treat the failure as not-found.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id must be an integer", shared.ErrInvalidInput)
	}
	return id, nil
}

// decodeJSON decodes a request body into v, rejecting anything that is not a
// single well-formed JSON value.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected trailing data", shared.ErrInvalidInput)
	}
	return nil
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}

	return nil
}
