// Package server exposes the task form generator over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/goliatone/go-taskform/internal/config"
	"github.com/goliatone/go-taskform/pkg/orchestrator"
)

// Server wires the router, the orchestrator and the render cache.
type Server struct {
	cfg     config.Config
	orch    *orchestrator.Orchestrator
	logger  *zap.Logger
	metrics *Metrics
	cache   *gocache.Cache
	router  chi.Router
}

// New builds a server. A nil orchestrator uses the defaults and a nil logger
// discards output.
func New(cfg config.Config, orch *orchestrator.Orchestrator, logger *zap.Logger) *Server {
	if orch == nil {
		orch = orchestrator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:     cfg,
		orch:    orch,
		logger:  logger,
		metrics: NewMetrics(),
	}
	if cfg.Cache.Enabled {
		s.cache = gocache.New(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(AccessLog(s.logger))
	r.Use(Recovery(s.logger))
	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Get("/healthz", s.handleHealth)
	if s.cfg.Metrics.Enabled {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	r.Route("/v1/forms", func(r chi.Router) {
		r.Get("/seatunnel", s.handleGetForm)
		r.Post("/seatunnel", s.handlePostForm)
		r.Get("/renderers", s.handleRenderers)
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr reports the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Server.Addr()
}

// Start listens until ctx is cancelled, then shuts down gracefully within the
// configured timeout.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: serve: %w", err)
	case <-ctx.Done():
	}

	timeout := s.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: serve: %w", err)
	}
	return nil
}
