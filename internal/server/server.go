// package server contains the router, middleware & handlers for the movie library API
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/reelist/reelist/internal/models"
	"github.com/reelist/reelist/internal/shared"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// The alias keeps middleware definitions compatible with [chi.Router.Use].
type Middleware = func(http.Handler) http.Handler

// shutdownTimeout bounds how long in-flight requests may drain on shutdown.
const shutdownTimeout = 10 * time.Second

// Server hosts the movie library HTTP API.
//
// The server is stateless between requests; all persistence goes through the
// repository handle passed at construction.
type Server struct {
	config *shared.Config
	logger *log.Logger
	router chi.Router
}

// ServerOpts contains dependencies for creating a Server.
type ServerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Repo   models.Repository
}

// New creates a Server with its route tree mounted.
func New(opts ServerOpts) *Server {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	s := &Server{
		config: opts.Config,
		logger: opts.Logger,
	}
	s.router = s.routes(opts.Repo)

	return s
}

// routes builds the middleware stack and mounts all handlers.
//
// CORS runs after request-id and logging so preflight requests are traced
// like any other request.
func (s *Server) routes(repo models.Repository) chi.Router {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger(s.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	r.Get("/api/health", s.handleHealth)

	movies := NewMovieHandler(repo, s.logger)
	r.Mount("/api/movies", movies.Routes())

	return r
}

// ServeHTTP implements [http.Handler] for the entire server, middleware included.
func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.router.ServeHTTP(w, req)
}

// handleHealth reports process liveness and the running version.
func (s *Server) handleHealth(w http.ResponseWriter, req *http.Request) {
	body := map[string]string{
		"status":  "ok",
		"version": shared.Version,
	}
	if err := writeJSON(w, http.StatusOK, body); err != nil {
		s.logger.Error("failed to write health response", "error", err)
	}
}

// Start runs the HTTP server until ctx is canceled, then drains in-flight
// requests before returning.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.config.Server.Addr(),
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
