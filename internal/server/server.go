// Package server exposes the dashboard over HTTP: an upload form, an HTML
// dashboard for uploaded checklist exports, and a JSON API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/davetashner/tally/internal/pipeline"
)

// DefaultMaxUploadBytes caps request bodies when Options leaves it unset.
const DefaultMaxUploadBytes = 32 << 20

// shutdownTimeout bounds graceful shutdown after the context is cancelled.
const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	// Pipeline holds the default delivery date, team size, title and
	// malformed-input policy. Today is ignored; each request uses the clock.
	Pipeline pipeline.Config

	// MaxUploadBytes caps the request body size.
	MaxUploadBytes int64
}

// Server handles dashboard requests. Each request builds its own pipeline,
// so handlers share no mutable state.
type Server struct {
	opts    Options
	nowFunc func() time.Time
}

// New creates a Server.
func New(opts Options) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	opts.Pipeline = pipeline.New(opts.Pipeline).Config()
	return &Server{opts: opts, nowFunc: time.Now}
}

// Register adds the dashboard routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.index)
	mux.HandleFunc("POST /dashboard", s.dashboard)
	mux.HandleFunc("POST /api/dashboard", s.apiDashboard)
	mux.HandleFunc("GET /healthz", s.health)
}

// Handler returns the routes wrapped in request-ID and logging middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return withRequestID(mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("http listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("http shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
