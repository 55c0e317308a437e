// Package server is the local HTTP front-end: it serves the internal pages
// and runs their actions.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mateconpizza/neo/internal/server/mw"
	"github.com/mateconpizza/neo/internal/shell"
)

const requestTimeout = 5 * time.Second

// Server wraps the HTTP server and the shell it drives.
type Server struct {
	http    *http.Server
	shell   *shell.Shell
	started time.Time
	version string
}

type OptFn func(*Server)

// WithVersion sets the version reported by /healthz.
func WithVersion(v string) OptFn {
	return func(s *Server) {
		s.version = v
	}
}

// New builds the HTTP server. sh should be created with Linker so the
// pages link back to this server.
func New(addr string, sh *shell.Shell, opts ...OptFn) *Server {
	s := &Server{
		shell:   sh,
		started: time.Now(),
	}
	for _, fn := range opts {
		fn(s)
	}

	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return s
}

// Handler returns the router with every middleware and route.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.GetHead)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(mw.Log(slog.Default()))

	s.routes(r)

	return r
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.http.Addr
}

// Start runs the HTTP server (blocks until error or shutdown).
func (s *Server) Start() error {
	slog.Info("HTTP server listening", "addr", s.http.Addr)
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

// Stop gracefully shuts down the server with the provided context deadline.
func (s *Server) Stop(ctx context.Context) error {
	slog.Info("HTTP server shutting down")
	return s.http.Shutdown(ctx)
}
