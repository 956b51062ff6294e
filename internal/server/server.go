// Package server assembles the HTTP surface: routing, middleware, and
// lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/3leaps/cirrus/internal/server/handlers"
	"github.com/3leaps/cirrus/internal/server/middleware"
	"github.com/3leaps/cirrus/pkg/provider"
)

// Options tunes optional server behavior.
type Options struct {
	// Version is reported by /version and the health endpoints.
	Version string

	// RateLimit/RateBurst configure the request throttle.
	// Zero RateLimit disables it.
	RateLimit float64
	RateBurst int

	// Logger receives request logs. Nil disables request logging.
	Logger *zap.Logger

	// ReadTimeout, WriteTimeout, and IdleTimeout are applied to the
	// underlying http.Server. Zero leaves the corresponding limit off.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// ShutdownTimeout bounds graceful shutdown. Zero means 10s.
	ShutdownTimeout time.Duration
}

// Server is the HTTP server for status operations.
type Server struct {
	host   string
	port   int
	router chi.Router
	opts   Options
}

// New assembles a server answering status queries against the given
// container.
func New(host string, port int, c provider.Container, opts Options) *Server {
	if opts.Version == "" {
		opts.Version = "dev"
	}

	s := &Server{host: host, port: port, opts: opts}

	health := handlers.NewHealthManager(opts.Version)
	health.RegisterChecker("provider", providerChecker{c})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	if opts.Logger != nil {
		r.Use(middleware.RequestLogger(opts.Logger))
	}
	r.Use(middleware.RateLimit(opts.RateLimit, opts.RateBurst))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		middleware.WriteError(w, req, http.StatusNotFound, "NOT_FOUND", "no such endpoint")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		middleware.WriteError(w, req, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed for this endpoint")
	})

	r.Get("/health", health.HealthHandler)
	r.Get("/health/live", health.LiveHandler)
	r.Get("/health/ready", health.ReadyHandler)
	r.Get("/version", health.VersionHandler)

	r.Get("/v1/account-status", handlers.AccountStatus(c))
	r.Post("/v1/permissions/user-discoverability", handlers.Discoverability(c))

	s.router = r
	return s
}

// Handler returns the assembled handler, for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Port returns the configured listen port.
func (s *Server) Port() int {
	return s.port
}

// ListenAndServe runs the server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := s.httpServer()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}

// httpServer builds the http.Server with the configured timeouts.
func (s *Server) httpServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.host, s.port),
		Handler:      s.router,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  s.opts.IdleTimeout,
	}
}

// providerChecker adapts a container's account probe into a health
// check.
type providerChecker struct {
	c provider.Container
}

func (p providerChecker) CheckHealth(ctx context.Context) error {
	code, err := p.c.AccountStatus(ctx)
	if err != nil {
		return err
	}
	if code != provider.AccountAvailable {
		return fmt.Errorf("account %s", code)
	}
	return nil
}
