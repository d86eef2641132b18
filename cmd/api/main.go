// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Showcast HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL and run migrations (optional, enables the archive).
//  4. Connect to Redis (optional, enables the catalog cache).
//  5. Build the TVMaze source.
//  6. Build the show manager.
//  7. Wire the archive and the background sync.
//  8. Start HTTP server with graceful shutdown.
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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/showcast/internal/api"
	"github.com/taibuivan/showcast/internal/platform/config"
	"github.com/taibuivan/showcast/internal/platform/constants"
	"github.com/taibuivan/showcast/internal/platform/migration"
	pgstore "github.com/taibuivan/showcast/internal/platform/postgres"
	redisstore "github.com/taibuivan/showcast/internal/platform/redis"
	"github.com/taibuivan/showcast/internal/platform/tvmaze"
	"github.com/taibuivan/showcast/internal/show"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[Showcast] service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("cache", cfg.CacheEnabled()),
		slog.Bool("archive", cfg.ArchiveEnabled()),
		slog.Duration("aggregate_timeout", cfg.AggregateTimeout()),
	)

	// Root context for the process lifetime, cancelled on SIGTERM/SIGINT.
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Startup deadline so misconfiguration is caught quickly rather than hanging.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	var pool *pgxpool.Pool
	if cfg.ArchiveEnabled() {
		pool, err = pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")
	}

	// ── 4. Redis ──────────────────────────────────────────────────────────
	var rdb *redis.Client
	if cfg.CacheEnabled() {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()
	}

	// ── 5. Catalog Source ─────────────────────────────────────────────────
	var source show.Source = tvmaze.NewClient(log,
		tvmaze.WithBaseURL(cfg.TVMazeBaseURL),
		tvmaze.WithUserAgent(cfg.TVMazeUserAgent),
		tvmaze.WithTimeout(cfg.TVMazeTimeout),
		tvmaze.WithRateLimit(cfg.TVMazeRPS, cfg.TVMazeBurst),
	)
	if rdb != nil {
		source = show.NewCachedSource(source, rdb, cfg.CacheTTL, log)
	}

	// ── 6. Show Manager ───────────────────────────────────────────────────
	manager := show.NewManager(source, log,
		show.WithCooldown(cfg.Cooldown),
		show.WithMaxRetries(cfg.MaxRetries),
		show.WithConcurrency(cfg.Concurrency),
	)

	// ── 7. Archive & Sync ─────────────────────────────────────────────────
	health := api.HealthDependencies{}
	handlers := api.Handlers{Shows: show.NewHandler(manager)}

	if rdb != nil {
		health.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}

	if pool != nil {
		health.CheckDatabase = func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		}

		repository := show.NewPostgresRepository(pool)
		handlers.Archive = show.NewArchiveHandler(repository)

		if cfg.SyncOnStart {
			syncer := show.NewSyncer(manager, repository, log, cfg.SyncMaxPages)
			go func() {
				if _, err := syncer.Run(rootCtx, 0); err != nil {
					log.Error("startup_sync_failed", slog.Any("error", err))
				}
			}()
		}
	}

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers.Liveness, handlers.Readiness = api.NewHealthHandlers(health, log)
	server := api.NewServer(rootCtx, cfg, log, handlers)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case <-rootCtx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String(constants.FieldApp, constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
