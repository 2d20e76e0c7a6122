// Copyright (c) 2026 Tome. All rights reserved.
// Author: safe.gergis@tome.dev

// Command api is the entry point for the Tome user-data HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire collaborator clients and domain services.
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

	"github.com/safegergis/tome/internal/api"
	"github.com/safegergis/tome/internal/catalog"
	"github.com/safegergis/tome/internal/identity"
	"github.com/safegergis/tome/internal/list"
	"github.com/safegergis/tome/internal/platform/config"
	"github.com/safegergis/tome/internal/platform/constants"
	"github.com/safegergis/tome/internal/platform/migration"
	pgstore "github.com/safegergis/tome/internal/platform/postgres"
	redisstore "github.com/safegergis/tome/internal/platform/redis"
	"github.com/safegergis/tome/internal/platform/sec"
	"github.com/safegergis/tome/internal/session"
	"github.com/safegergis/tome/internal/shelf"
	"github.com/safegergis/tome/internal/stats"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Tome] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
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

	// ── 6. Token Verification ─────────────────────────────────────────────
	// Tokens are minted by the identity service; this server only verifies.
	verifier, err := sec.NewVerifier(cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "load jwt public key")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Collaborator Clients ───────────────────────────────────────────
	catalogClient := catalog.NewClient(cfg.CatalogServiceURL, cfg.UpstreamTimeout, log)

	identityClient := identity.NewClient(cfg.IdentityServiceURL, cfg.UpstreamTimeout, log)
	identityBreaker := identity.NewBreaker(constants.BreakerFailureThreshold, constants.BreakerCooldown)
	identityCache := identity.NewRedisCache(rdb)
	userResolver := identity.NewResolver(identityCache, identityBreaker, identityClient, cfg.IdentityCacheTTL, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	shelfRepository := shelf.NewPostgresRepository(pool)
	shelfService := shelf.NewService(shelfRepository, catalogClient, log)
	shelfHandler := shelf.NewHandler(shelfService)

	sessionRepository := session.NewPostgresRepository(pool)
	sessionService := session.NewService(sessionRepository, catalogClient, log)
	sessionHandler := session.NewHandler(sessionService)

	statsRepository := stats.NewPostgresRepository(pool)
	statsService := stats.NewService(statsRepository, catalogClient, log)
	statsHandler := stats.NewHandler(statsService)

	listRepository := list.NewPostgresRepository(pool)
	listService := list.NewService(listRepository, userResolver, catalogClient, log)
	listHandler := list.NewHandler(listService)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Shelf:     shelfHandler,
		Session:   sessionHandler,
		Stats:     statsHandler,
		List:      listHandler,
	}

	// serverCtx outlives startup; it backs the rate limiter's cleanup loop.
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, verifier, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
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
