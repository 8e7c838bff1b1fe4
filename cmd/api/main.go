// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

// Command api is the entry point for the Tripmesh HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tripmesh/tripmesh/internal/api"
	"github.com/tripmesh/tripmesh/internal/auth"
	"github.com/tripmesh/tripmesh/internal/core/buddy"
	"github.com/tripmesh/tripmesh/internal/core/location"
	"github.com/tripmesh/tripmesh/internal/core/trip"
	"github.com/tripmesh/tripmesh/internal/geo/geocode"
	"github.com/tripmesh/tripmesh/internal/geo/poi"
	"github.com/tripmesh/tripmesh/internal/geo/weather"
	"github.com/tripmesh/tripmesh/internal/platform/config"
	"github.com/tripmesh/tripmesh/internal/platform/constants"
	"github.com/tripmesh/tripmesh/internal/platform/migration"
	pgstore "github.com/tripmesh/tripmesh/internal/platform/postgres"
	redisstore "github.com/tripmesh/tripmesh/internal/platform/redis"
	"github.com/tripmesh/tripmesh/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "tripmesh"))
	slog.SetDefault(log)

	log.Info("[Tripmesh] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "tripmesh"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Auth Service ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	resetRepository := auth.NewResetTokenRepository(rdb)
	authService := auth.NewService(userRepository, resetRepository, jwtSvc, log)
	authHandler := auth.NewHandler(authService)

	buddyRepository := buddy.NewRepository(pool)
	buddyService := buddy.NewService(buddyRepository, buddyRepository, log)
	buddyHandler := buddy.NewHandler(buddyService)

	locationRepository := location.NewRepository(pool)
	locationService := location.NewService(locationRepository, locationRepository, log)
	locationHandler := location.NewHandler(locationService)

	tripRepository := trip.NewRepository(pool)
	tripService := trip.NewService(tripRepository, tripRepository, locationRepository, log)
	tripHandler := trip.NewHandler(tripService)

	geocodeHandler := geocode.NewHandler(geocode.NewClient(cfg.NominatimURL))
	poiHandler := poi.NewHandler(poi.NewClient(cfg.OverpassURL))
	weatherHandler := weather.NewHandler(weather.NewClient(cfg.OpenMeteoURL))

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Buddy:     buddyHandler,
		Trip:      tripHandler,
		Location:  locationHandler,
		Geocode:   geocodeHandler,
		POI:       poiHandler,
		Weather:   weatherHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
