package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/pageza/culinary-assistant/backend/config"
	"github.com/pageza/culinary-assistant/backend/internal/database"
	"github.com/pageza/culinary-assistant/backend/internal/repository"
	"github.com/pageza/culinary-assistant/backend/pkg/logger"
)

func main() {
	file := flag.String("file", "", "Read seeds from a local JSON file instead of the built-in set")
	s3Key := flag.String("s3-key", os.Getenv("SEED_S3_KEY"), "Read seeds from this key in S3_BUCKET_NAME")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	appLog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	appLog = appLog.WithComponent("seed_recipes")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	data := builtinSeeds
	source := "builtin"
	switch {
	case *file != "":
		data, err = os.ReadFile(*file)
		if err != nil {
			appLog.Fatal().Err(err).Str("file", *file).Msg("failed to read seed file")
		}
		source = *file
	case *s3Key != "":
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			appLog.Fatal().Err(err).Msg("failed to initialize S3 client")
		}
		data, err = s3cfg.ReadObject(ctx, *s3Key)
		if err != nil {
			appLog.Fatal().Err(err).Msg("failed to download seed file")
		}
		source = "s3://" + s3cfg.BucketName + "/" + *s3Key
	}

	recipes, err := parseSeeds(data)
	if err != nil {
		appLog.Fatal().Err(err).Str("source", source).Msg("invalid seed file")
	}

	db, err := database.New(cfg, appLog)
	if err != nil {
		appLog.Fatal().Err(err).Msg("failed to connect to database")
	}

	n, err := upsertSeeds(ctx, db, recipes)
	if err != nil {
		appLog.Fatal().Err(err).Msg("failed to seed recipes")
	}
	appLog.Info().Int("recipes", n).Str("source", source).Msg("seeded recipes")

	// Drop cached seed pools so the API serves the new catalog immediately
	if !database.RedisConfigured(cfg) {
		return
	}
	redisClient, err := database.NewRedisClient(cfg, appLog)
	if err != nil {
		appLog.Warn().Err(err).Msg("redis unavailable, cached seeds expire on their own")
		return
	}
	defer func() { _ = redisClient.Close() }()
	cache := repository.NewCachedCandidateStore(repository.NewGormCandidateStore(db), redisClient, cfg.Recommend.SeedCacheTTL, appLog)
	if err := cache.InvalidateSeeds(ctx); err != nil {
		appLog.Warn().Err(err).Msg("failed to invalidate cached seeds")
	}
}
