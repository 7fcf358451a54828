package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/turtacn/AlloyFrontier/internal/infrastructure/monitoring/logging"
)

// Server hosts the route tree on an http.Server with graceful shutdown.
type Server struct {
	srv    *http.Server
	router http.Handler
	port   int
	logger logging.Logger
}

// NewServer builds the server for an already-constructed router.
func NewServer(router http.Handler, host string, port int, logger logging.Logger) *Server {
	return &Server{
		router: router,
		port:   port,
		logger: logger.Named("server"),
		srv: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 120 * time.Second, // optimize requests can run long
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start blocks serving requests until Stop or a listener error.
func (s *Server) Start() error {
	s.logger.Info("http server listening", logging.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop drains in-flight requests and shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
