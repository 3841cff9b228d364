package database

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/pageza/culinary-assistant/backend/config"
	"github.com/pageza/culinary-assistant/backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisConfigured reports whether cfg names a Redis server at all. Redis only
// backs the seed cache and rate limiting, so running without it is allowed.
func RedisConfigured(cfg *config.Config) bool {
	return cfg.RedisURL != "" || cfg.RedisHost != ""
}

// redisOptions builds client options from cfg. REDIS_URL takes precedence
// over the host/port fields.
func redisOptions(cfg *config.Config) (*redis.Options, error) {
	var opts *redis.Options
	if cfg.RedisURL != "" {
		parsed, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}
	}

	// Cache reads fall through to Postgres on failure, so fail fast.
	opts.DialTimeout = 2 * time.Second
	opts.ReadTimeout = 500 * time.Millisecond
	opts.WriteTimeout = 500 * time.Millisecond
	return opts, nil
}

// NewRedisClient connects to the configured Redis and pings it
func NewRedisClient(cfg *config.Config, log *logger.Logger) (*redis.Client, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}

	log.Info().Str("addr", opts.Addr).Int("db", opts.DB).Msg("connected to Redis")
	return client, nil
}
