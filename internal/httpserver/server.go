// internal/httpserver/server.go
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/golink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/golink/internal/httpserver/mw"
	"github.com/MrSnakeDoc/golink/internal/httpserver/routes"
	"github.com/MrSnakeDoc/golink/internal/logger"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	http   *http.Server
	logger logger.Logger
}

// New builds the HTTP server (router, middlewares, route registration).
func New(addr string, loggerClient logger.Logger, d deps.Deps) *Server {
	s := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(loggerClient, d),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return &Server{
		http:   s,
		logger: loggerClient,
	}
}

// NewRouter returns the handler tree served by New.
func NewRouter(loggerClient logger.Logger, d deps.Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.GetHead)
	r.Use(middleware.RequestID)                // X-Request-ID on each request
	r.Use(middleware.Recoverer)                // never crash the process on panic
	r.Use(middleware.Timeout(2 * time.Second)) // per-request timeout
	r.Use(mw.Log(loggerClient))

	routes.RegisterAll(r, d)

	return r
}

// Serve accepts connections on ln until Stop (blocks until error or shutdown).
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Infof("HTTP server listening on %s", ln.Addr())
	err := s.http.Serve(ln)
	// http.ErrServerClosed is expected on graceful shutdown.
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server with the provided context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down...")
	return s.http.Shutdown(ctx)
}
