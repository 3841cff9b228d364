package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/culinary-assistant/backend/config"
	"github.com/pageza/culinary-assistant/backend/internal/database"
	"github.com/pageza/culinary-assistant/backend/internal/router"
	"github.com/pageza/culinary-assistant/backend/internal/server"
	"github.com/pageza/culinary-assistant/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	// Initialize database
	db, err := database.New(cfg, appLog)
	if err != nil {
		appLog.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir, appLog); err != nil {
		appLog.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Redis is optional; without it seed caching and rate limiting are off
	var redisClient *redis.Client
	if database.RedisConfigured(cfg) {
		redisClient, err = database.NewRedisClient(cfg, appLog)
		if err != nil {
			appLog.Warn().Err(err).Msg("redis unavailable, continuing without cache")
			redisClient = nil
		} else {
			defer func() { _ = redisClient.Close() }()
		}
	}

	handler := router.SetupRouter(router.Dependencies{
		DB:     db,
		Redis:  redisClient,
		Config: cfg,
		Logger: appLog,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, handler, appLog)
	if err := srv.Run(ctx); err != nil {
		appLog.Error().Err(err).Msg("server error")
		stop()
		os.Exit(1)
	}
	appLog.Info().Msg("server stopped")
}
