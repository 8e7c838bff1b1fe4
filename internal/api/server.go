// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

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

	"github.com/tripmesh/tripmesh/internal/auth"
	"github.com/tripmesh/tripmesh/internal/core/buddy"
	"github.com/tripmesh/tripmesh/internal/core/location"
	"github.com/tripmesh/tripmesh/internal/core/trip"
	"github.com/tripmesh/tripmesh/internal/geo/geocode"
	"github.com/tripmesh/tripmesh/internal/geo/poi"
	"github.com/tripmesh/tripmesh/internal/geo/weather"
	"github.com/tripmesh/tripmesh/internal/platform/config"
	"github.com/tripmesh/tripmesh/internal/platform/constants"
	"github.com/tripmesh/tripmesh/internal/platform/middleware"
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
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles account and session routes (register, login, profile).
	Auth *auth.Handler

	// Buddy handles the buddy ledger and its request workflow.
	Buddy *buddy.Handler

	// Trip handles trip planning and participant management.
	Trip *trip.Handler

	// Location handles saved locations attached to trips.
	Location *location.Handler

	// Geocode handles free-text place search.
	Geocode *geocode.Handler

	// POI handles points-of-interest discovery around a coordinate.
	POI *poi.Handler

	// Weather handles forecast lookups.
	Weather *weather.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/users", h.Auth.RegisterRoutes)
		api.Route("/buddies", h.Buddy.RegisterRoutes)
		api.Route("/trips", h.Trip.RegisterRoutes)

		// Saved locations share a route group with the upstream geo
		// lookups (place search and POI discovery).
		api.Route("/locations", func(locations chi.Router) {
			h.Geocode.RegisterRoutes(locations)
			h.POI.RegisterRoutes(locations)
			h.Location.RegisterRoutes(locations)
		})

		api.Route("/weather", h.Weather.RegisterRoutes)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
