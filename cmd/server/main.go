package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/glassgovernment/legistar-sync/internal/api"
	"github.com/glassgovernment/legistar-sync/internal/cache"
	"github.com/glassgovernment/legistar-sync/internal/config"
	"github.com/glassgovernment/legistar-sync/internal/debuglog"
	"github.com/glassgovernment/legistar-sync/internal/domain"
	"github.com/glassgovernment/legistar-sync/internal/pipeline"
	"github.com/glassgovernment/legistar-sync/internal/scheduler"
	"github.com/glassgovernment/legistar-sync/internal/source"
	"github.com/glassgovernment/legistar-sync/internal/store"
	calsync "github.com/glassgovernment/legistar-sync/internal/sync"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	loc, err := time.LoadLocation(cfg.DisplayTimezone)
	if err != nil {
		logger.Error("failed to load display timezone", "timezone", cfg.DisplayTimezone, "error", err)
		os.Exit(1)
	}

	// Initialize PostgreSQL
	ctx := context.Background()
	pgStore, err := store.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pgStore.Close()
	logger.Info("connected to PostgreSQL")

	// Run database migrations
	if err := pgStore.RunMigrations(ctx); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("database migrations applied")

	// Initialize Redis for the edge cache
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Error("failed to parse redis URL", "error", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	// Diagnostic log (off until toggled through the admin API)
	diag := debuglog.New()

	// Source adapters, each behind its own edge cache entry
	madison := source.NewLegistar(source.LegistarConfig{
		Name:        "madison",
		Client:      "madison",
		BaseURL:     cfg.MadisonAPIURL,
		MaxPastDays: cfg.MaxPastDays,
		Detailed:    true,
	}, diag)
	dane := source.NewHTMLTable("dane", cfg.DaneCalendarURL, diag)

	sources := []pipeline.SourceSpec{
		{
			Adapter:  cache.Wrap(madison, redisClient, logger),
			Source:   domain.SourceMadison,
			Category: "City of Madison",
		},
		{
			Adapter:  cache.Wrap(dane, redisClient, logger),
			Source:   domain.SourceDane,
			Category: "Dane County",
		},
	}

	engine := calsync.NewEngine(pgStore, logger)
	pipe := pipeline.New(sources, engine, loc, cfg.MaxPastDays, logger, diag)

	// Scheduled trigger: same entry point as the manual trigger
	sched, err := scheduler.New(cfg.SyncSchedule, func() {
		pipe.Run(context.Background())
	}, logger)
	if err != nil {
		logger.Error("failed to create scheduler", "error", err)
		os.Exit(1)
	}
	sched.Start()

	// Setup router
	router := api.NewRouter(pipe, engine, diag, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
