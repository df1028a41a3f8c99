package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/crime-report-hub/internal/auth"
	"github.com/hongminglow/crime-report-hub/internal/config"
	"github.com/hongminglow/crime-report-hub/internal/http/handlers"
	"github.com/hongminglow/crime-report-hub/internal/http/respond"
	"github.com/hongminglow/crime-report-hub/internal/logging"
	"github.com/hongminglow/crime-report-hub/internal/middleware"
	"github.com/hongminglow/crime-report-hub/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.UserStore, logger logging.Logger) *Server {
	tokenManager := auth.NewTokenManager(cfg.SecretAccessKey, cfg.TokenTTL)
	service := auth.NewService(store, auth.NewBcryptHasher(cfg.BcryptCost), tokenManager)

	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, http.StatusNotFound, "Not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})
	handlers.NewHealthHandler().Register(r)
	handlers.NewAuthHandler(service, logger, cfg.Development()).Register(r)

	var handler http.Handler = middleware.Recover(logger, cfg.Development(), r)
	handler = middleware.Logging(logger, handler)
	handler = middleware.CORS(cfg.AllowedOrigins(), handler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Handler exposes the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.inner.Handler
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return s.inner.Addr
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
