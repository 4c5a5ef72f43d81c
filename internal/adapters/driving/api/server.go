// Package api exposes the assistant over HTTP for web clients. It is
// a thin driving adapter: JSON in, driving ports, JSON out.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/chrona-labs/chrona-cli/internal/core/domain"
	"github.com/chrona-labs/chrona-cli/internal/core/ports/driving"
)

// Config holds the server's dependencies and settings.
type Config struct {
	// Assistant answers questions. Required.
	Assistant driving.Assistant

	// DocSearch backs the search endpoint. Required.
	DocSearch driving.DocumentSearch

	// Settings carries the listen address, rate limits and CORS origins.
	Settings domain.ServerSettings

	// ImagesDir is served under /images/. Empty disables the route.
	ImagesDir string

	// Version is reported by the health endpoint.
	Version string
}

// Server is the HTTP API server.
type Server struct {
	httpServer *http.Server
	router     chi.Router
}

// NewServer builds the router and returns an unstarted server.
func NewServer(cfg Config) *Server {
	h := &handlers{
		assistant: cfg.Assistant,
		docSearch: cfg.DocSearch,
		version:   cfg.Version,
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Settings.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(rateLimit(cfg.Settings.RateLimit, cfg.Settings.RateBurst))

	r.Get("/healthz", h.health)
	r.Route("/api", func(r chi.Router) {
		r.Post("/ask", h.ask)
		r.Get("/search", h.search)
		r.Get("/stats", h.stats)
	})
	if cfg.ImagesDir != "" {
		r.Handle("/images/*", http.StripPrefix("/images/",
			http.FileServer(http.Dir(cfg.ImagesDir))))
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Settings.Addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
		router: r,
	}
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens and serves until Shutdown or a fatal error.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
