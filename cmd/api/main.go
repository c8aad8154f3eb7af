package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Himselfzw/ingrid/internal/analytics"
	"github.com/Himselfzw/ingrid/internal/audit"
	"github.com/Himselfzw/ingrid/internal/cache"
	"github.com/Himselfzw/ingrid/internal/config"
	"github.com/Himselfzw/ingrid/internal/database"
	"github.com/Himselfzw/ingrid/internal/handlers"
	"github.com/Himselfzw/ingrid/internal/jobs"
	"github.com/Himselfzw/ingrid/internal/log"
	"github.com/Himselfzw/ingrid/internal/mail"
	"github.com/Himselfzw/ingrid/internal/repository"
	"github.com/Himselfzw/ingrid/internal/server"
	"github.com/Himselfzw/ingrid/internal/session"
	"github.com/Himselfzw/ingrid/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	dbPool, err := database.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}
	if err := database.Migrate(ctx, dbPool); err != nil {
		logger.Fatal().Err(err).Msg("schema migration failed")
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}

	objectStore, err := storage.NewObjectStore(cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init object store")
	}
	if err := objectStore.EnsureBucket(ctx); err != nil {
		logger.Warn().Err(err).Msg("ensure bucket failed")
	}

	logRepo := repository.NewLogRepository(dbPool)
	eventRepo := repository.NewAnalyticsRepository(dbPool)

	sessions := session.NewRedisStore(redisClient, cfg.Session.TTL)
	recorder := audit.NewRecorder(audit.NewPostgresSink(logRepo), logger)
	tracker := analytics.NewTracker(eventRepo, logger)
	mailer := mail.NewMailer(cfg.SMTP)

	handlerSet := handlers.NewHandlerSet(logger, dbPool, sessions, objectStore, mailer, tracker, recorder, cfg)
	httpServer := server.NewHTTPServer(cfg, logger, sessions, recorder, tracker, handlerSet)

	scheduler := jobs.NewScheduler(logRepo, eventRepo, cfg.Retention, logger)
	if err := scheduler.Start(); err != nil {
		logger.Error().Err(err).Msg("scheduler start failed")
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, scheduler, dbPool, redisClient)
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, scheduler *jobs.Scheduler, db *pgxpool.Pool, redisClient *redis.Client) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	scheduler.Stop()

	db.Close()
	if err := redisClient.Close(); err != nil {
		logger.Error().Err(err).Msg("redis close error")
	}

	logger.Info().Msg("server exited cleanly")
}
