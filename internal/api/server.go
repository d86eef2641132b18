// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/showcast/internal/platform/config"
	"github.com/taibuivan/showcast/internal/platform/constants"
	"github.com/taibuivan/showcast/internal/platform/middleware"
	"github.com/taibuivan/showcast/internal/show"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all configured deps are healthy.
	Readiness http.HandlerFunc

	// Shows serves the live, aggregated catalog.
	Shows *show.Handler

	// Archive serves the persisted catalog. Nil when no database is configured.
	Archive *show.ArchiveHandler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// The live catalog gets [config.Config.AggregateTimeout] because a page may
// wait out the outbound allowance and several rate-limit cooldowns. Everything
// else is bounded by [constants.GlobalRequestTimeout].
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg.Origins(), cfg.IsDevelopment()))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Group(func(probes chi.Router) {
		probes.Use(chimw.Timeout(constants.GlobalRequestTimeout))
		probes.Get("/health", h.Liveness)
		probes.Get("/ready", h.Readiness)
	})

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route(constants.APIBasePath, func(api chi.Router) {
		api.With(chimw.Timeout(cfg.AggregateTimeout())).Mount("/shows", h.Shows.Routes())

		if h.Archive != nil {
			api.With(chimw.Timeout(constants.GlobalRequestTimeout)).Mount("/archive", h.Archive.Routes())
		}
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      cfg.WriteTimeout(),
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the fully wired router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
