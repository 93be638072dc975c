// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the locallibrary HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Start tracing (no-op unless enabled).
//  4. Open the catalog store (Postgres with migrations, or SQLite).
//  5. Connect to Redis when the lending feed is configured.
//  6. Wire services and HTTP handlers.
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

	"github.com/taibuivan/locallibrary/internal/api"
	"github.com/taibuivan/locallibrary/internal/app"
	"github.com/taibuivan/locallibrary/internal/core/instance"
	"github.com/taibuivan/locallibrary/internal/platform/config"
	"github.com/taibuivan/locallibrary/internal/platform/constants"
	redisstore "github.com/taibuivan/locallibrary/internal/platform/redis"
	"github.com/taibuivan/locallibrary/internal/platform/storage"
	"github.com/taibuivan/locallibrary/internal/platform/tracing"
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

	log.Info("[locallibrary] service_initializing")

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
		slog.String("db_driver", cfg.DBDriver),
	)

	// Root context for startup, bounded so misconfiguration is caught quickly.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer startupCancel()

	// ── 3. Tracing ────────────────────────────────────────────────────────
	provider, err := tracing.NewProvider(startupCtx, tracing.FromConfig(cfg, constants.AppName))
	must(log, err, "start tracing")
	defer func() {
		if serr := provider.Shutdown(context.Background()); serr != nil {
			log.Error("tracing shutdown error", slog.Any("error", serr))
		}
	}()

	// ── 4. Catalog Store ──────────────────────────────────────────────────
	store, err := storage.Open(startupCtx, cfg, true, log)
	must(log, err, "open catalog store")
	defer store.Close()

	// ── 5. Redis (optional lending feed) ──────────────────────────────────
	rdb, err := redisstore.NewOptionalClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")

	var feed instance.Feed = instance.NoopFeed{}
	checks := []api.HealthCheck{{Name: cfg.DBDriver, Check: store.Ping}}

	if rdb != nil {
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		feed = instance.NewRedisFeed(rdb, cfg.FeedStream, cfg.FeedMaxLen)
		checks = append(checks, api.HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}})
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	services := app.NewServices(store.DB, feed, log)

	handlers := services.Handlers()
	handlers.Liveness, handlers.Readiness = api.NewHealthHandlers(checks, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(cfg, log, provider.Tracer(), handlers)

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
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
