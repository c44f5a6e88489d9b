// Package server runs the HTTP listener and tears down registered
// components in order when the process is asked to stop.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// ShutdownFunc stops a component, honoring the deadline on ctx.
type ShutdownFunc func(ctx context.Context) error

// Config holds listener settings.
type Config struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server wraps http.Server with graceful shutdown.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	logger          *slog.Logger

	mu            sync.Mutex
	shutdownFuncs []namedShutdown
}

type namedShutdown struct {
	name string
	fn   ShutdownFunc
}

// New creates a Server for handler.
func New(handler http.Handler, cfg Config, logger *slog.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       2 * cfg.WriteTimeout,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}
}

// OnShutdown registers fn to run after the HTTP server stops.
// Components are stopped in reverse registration order, so a store
// registered before the cache outlives it.
func (s *Server) OnShutdown(name string, fn ShutdownFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdownFuncs = append(s.shutdownFuncs, namedShutdown{name: name, fn: fn})
}

// Run serves until ctx is canceled or the listener fails, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		// Components still need releasing.
		_ = s.stopComponents(context.Background())
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutdown signal received", "cause", context.Cause(ctx))
		return s.gracefulShutdown()
	}
}

func (s *Server) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.logger.Info("stopping HTTP server", "timeout", s.shutdownTimeout)
	s.httpServer.SetKeepAlivesEnabled(false)

	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		errs = append(errs, err)
	}
	s.logger.Info("HTTP server stopped")

	if err := s.stopComponents(ctx); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	s.logger.Info("server stopped gracefully")
	return nil
}

// stopComponents runs every registered ShutdownFunc, last registered first.
// A failing component does not prevent the rest from stopping.
func (s *Server) stopComponents(ctx context.Context) error {
	s.mu.Lock()
	funcs := make([]namedShutdown, len(s.shutdownFuncs))
	copy(funcs, s.shutdownFuncs)
	s.mu.Unlock()

	var errs []error
	for i := len(funcs) - 1; i >= 0; i-- {
		c := funcs[i]
		s.logger.Info("shutting down component", "name", c.name)
		if err := c.fn(ctx); err != nil {
			s.logger.Error("component shutdown error", "name", c.name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
			continue
		}
		s.logger.Info("component stopped", "name", c.name)
	}
	return errors.Join(errs...)
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
