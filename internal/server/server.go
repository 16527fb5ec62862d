// Package server exposes the read-only status surface of the sync engine:
// health probes, last cycle result, cursors and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/iudanet/possync/internal/server/handlers"
	"github.com/iudanet/possync/internal/server/middleware"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Deps собирает зависимости обработчиков
type Deps struct {
	Status  handlers.StatusSource
	Cursors handlers.CursorLister
	// Metrics is mounted at /metrics when not nil
	Metrics    http.Handler
	Version    string
	Tables     []string
	AuthSecret []byte
}

// NewRouter creates the chi router. /health, /live and /metrics stay open
// for probes and scrapers; /api/v1 requires a bearer token when AuthSecret is set.
func NewRouter(logger *slog.Logger, deps Deps) *chi.Mux {
	healthHandler := handlers.NewHealthHandler(logger, deps.Status, deps.Version)
	cursorsHandler := handlers.NewCursorsHandler(logger, deps.Cursors, deps.Tables)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(middleware.LoggingMiddleware(logger, "/live", "/metrics"))

	r.Get("/health", healthHandler.Health)
	r.Get("/live", healthHandler.Live)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(logger, deps.AuthSecret))
		r.Get("/status", healthHandler.Status)
		r.Get("/cursors", cursorsHandler.List)
	})

	return r
}

// Server HTTP сервер статуса
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a status server listening on addr
func New(addr string, logger *slog.Logger, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(logger, deps),
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logger: logger,
	}
}

// Handler returns the router, used by tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Serve accepts connections on ln until Shutdown is called
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("Status server listening", "address", ln.Addr().String())
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("status server failed: %w", err)
	}
	return nil
}

// ListenAndServe binds the configured address and serves until Shutdown
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ln)
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	s.logger.Info("Status server shutdown complete")
	return nil
}
