package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// AllowedOrigins lists the CORS origins; empty means the development defaults.
	AllowedOrigins []string

	// S3 configuration (seed catalog storage)
	S3BucketName string
	AWSRegion    string

	// MigrationsDir holds the .sql files the API applies at start-up.
	MigrationsDir string

	Log       LogConfig
	Search    SearchConfig
	Recommend RecommendConfig
}

// LogConfig controls the structured logger
type LogConfig struct {
	Level       string
	Format      string // "json" or "console"
	ServiceName string
}

// SearchConfig holds the tunables of recipe search
type SearchConfig struct {
	// FuzzyThreshold is the trigram similarity a title must exceed to match.
	FuzzyThreshold float64
	// MinExactResults is the substring row count below which the fuzzy pass runs.
	MinExactResults int
	// ResultLimit caps every store query and the merged output.
	ResultLimit int
	// RateLimitPerMinute bounds search requests per client; 0 disables it.
	RateLimitPerMinute int
}

// RecommendConfig holds the tunables of the recommendation assembler
type RecommendConfig struct {
	SeedPoolSize int
	DefaultLimit int
	MaxLimit     int
	// SeedCacheTTL is how long the seed pool is cached in Redis; 0 disables caching.
	SeedCacheTTL time.Duration
}

// DefaultSearchConfig returns the search settings used when nothing is configured
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		FuzzyThreshold:     0.15,
		MinExactResults:    3,
		ResultLimit:        20,
		RateLimitPerMinute: 60,
	}
}

// DefaultRecommendConfig returns the recommendation settings used when nothing is configured
func DefaultRecommendConfig() RecommendConfig {
	return RecommendConfig{
		SeedPoolSize: 50,
		DefaultLimit: 10,
		MaxLimit:     50,
		SeedCacheTTL: time.Minute,
	}
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	// Load configuration based on environment
	switch env {
	case CI:
		if err := loadCIConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load CI configuration: %w", err)
		}
	case Development, Test:
		if err := loadDevConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load development configuration: %w", err)
		}
	case Production:
		if err := loadProdConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load production configuration: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := loadTunables(cfg); err != nil {
		return nil, err
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig loads configuration for CI environment from environment variables only
func loadCIConfig(cfg *Config) error {
	cfg.ServerPort = envOr("SERVER_PORT", "8080")
	cfg.ServerHost = envOr("SERVER_HOST", "0.0.0.0")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = os.Getenv("DB_PORT")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = envOr("DB_SSL_MODE", "disable")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = os.Getenv("REDIS_PORT")

	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	if cfg.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD environment variable is required in CI environment")
	}
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.RedisDB = 0 // This is a constant, not a secret
	cfg.S3BucketName = os.Getenv("S3_BUCKET_NAME")
	cfg.AWSRegion = os.Getenv("AWS_REGION")

	return nil
}

// loadDevConfig loads configuration for development and test. Environment
// variables win, then Docker secrets, then local defaults.
func loadDevConfig(cfg *Config) error {
	cfg.ServerPort = settingOr("SERVER_PORT", "server_port", "8080")
	cfg.ServerHost = settingOr("SERVER_HOST", "server_host", "localhost")
	cfg.DBHost = settingOr("DB_HOST", "db_host", "localhost")
	cfg.DBPort = settingOr("DB_PORT", "db_port", "5432")
	cfg.DBUser = settingOr("DB_USER", "db_user", "postgres")
	cfg.DBPassword = settingOr("DB_PASSWORD", "db_password", "postgres")
	cfg.DBName = settingOr("DB_NAME", "db_name", "culinary")
	cfg.DBSSLMode = settingOr("DB_SSL_MODE", "db_ssl_mode", "disable")
	cfg.RedisHost = settingOr("REDIS_HOST", "redis_host", "localhost")
	cfg.RedisPort = settingOr("REDIS_PORT", "redis_port", "6379")
	cfg.RedisPassword = settingOr("REDIS_PASSWORD", "redis_password", "")
	cfg.RedisURL = settingOr("REDIS_URL", "redis_url", "redis://localhost:6379")
	cfg.RedisDB = 0 // This is a constant, not a secret
	cfg.JWTSecret = settingOr("JWT_SECRET", "jwt_secret", "dev-secret-key")
	cfg.S3BucketName = envOr("S3_BUCKET_NAME", "culinary-seed-catalog")
	cfg.AWSRegion = envOr("AWS_REGION", "us-east-1")

	return nil
}

// loadProdConfig loads configuration for production environment using ONLY Docker secrets
func loadProdConfig(cfg *Config) error {
	cfg.ServerPort = readSecret("server_port")
	cfg.ServerHost = readSecret("server_host")
	cfg.DBHost = readSecret("db_host")
	cfg.DBPort = readSecret("db_port")
	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.DBName = readSecret("db_name")
	cfg.DBSSLMode = readSecret("db_ssl_mode")
	cfg.RedisHost = readSecret("redis_host")
	cfg.RedisPort = readSecret("redis_port")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.RedisDB = 0 // This is a constant, not a secret
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.RedisURL = readSecret("redis_url")
	cfg.S3BucketName = os.Getenv("S3_BUCKET_NAME")
	cfg.AWSRegion = os.Getenv("AWS_REGION")

	return nil
}

// loadTunables reads logging, search and recommendation settings. These are
// never secrets, so they come from plain environment variables in every
// environment.
func loadTunables(cfg *Config) error {
	cfg.Log = LogConfig{
		Level:       envOr("LOG_LEVEL", "info"),
		Format:      envOr("LOG_FORMAT", GetEnvironment().DefaultLogFormat()),
		ServiceName: envOr("SERVICE_NAME", "culinary-assistant"),
	}
	cfg.MigrationsDir = envOr("MIGRATIONS_DIR", "migrations")

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	cfg.Search = DefaultSearchConfig()
	cfg.Recommend = DefaultRecommendConfig()

	var err error
	if cfg.Search.FuzzyThreshold, err = envFloat("SEARCH_FUZZY_THRESHOLD", cfg.Search.FuzzyThreshold); err != nil {
		return err
	}
	if cfg.Search.MinExactResults, err = envInt("SEARCH_MIN_EXACT_RESULTS", cfg.Search.MinExactResults); err != nil {
		return err
	}
	if cfg.Search.ResultLimit, err = envInt("SEARCH_RESULT_LIMIT", cfg.Search.ResultLimit); err != nil {
		return err
	}
	if cfg.Search.RateLimitPerMinute, err = envInt("SEARCH_RATE_LIMIT_PER_MINUTE", cfg.Search.RateLimitPerMinute); err != nil {
		return err
	}
	if cfg.Recommend.SeedPoolSize, err = envInt("RECOMMEND_SEED_POOL_SIZE", cfg.Recommend.SeedPoolSize); err != nil {
		return err
	}
	if cfg.Recommend.DefaultLimit, err = envInt("RECOMMEND_DEFAULT_LIMIT", cfg.Recommend.DefaultLimit); err != nil {
		return err
	}
	if cfg.Recommend.MaxLimit, err = envInt("RECOMMEND_MAX_LIMIT", cfg.Recommend.MaxLimit); err != nil {
		return err
	}
	if v := os.Getenv("RECOMMEND_SEED_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return ValidationError{Field: "RECOMMEND_SEED_CACHE_TTL", Message: err.Error()}
		}
		cfg.Recommend.SeedCacheTTL = d
	}
	return nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func settingOr(envVar, secret, def string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	if v := readSecret(secret); v != "" {
		return v
	}
	return def
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, ValidationError{Field: key, Message: "must be an integer"}
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, ValidationError{Field: key, Message: "must be a number"}
	}
	return f, nil
}

// DSN returns the Postgres connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}
