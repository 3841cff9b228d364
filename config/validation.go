package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// requiredSecrets lists the values production must receive as Docker secrets
var requiredSecrets = []string{
	"db_host",
	"db_user",
	"db_password",
	"db_name",
	"jwt_secret",
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errors []string

	switch env {
	case Production:
		for _, secret := range requiredSecrets {
			if readSecret(secret) == "" {
				errors = append(errors, fmt.Sprintf("required secret %s is not set", secret))
			}
		}
	case CI:
		if cfg.DBHost == "" {
			errors = append(errors, "DB_HOST environment variable is required in CI environment")
		}
		if cfg.JWTSecret == "" {
			errors = append(errors, "JWT_SECRET environment variable is required in CI environment")
		}
	}

	if cfg.Search.FuzzyThreshold < 0 || cfg.Search.FuzzyThreshold > 1 {
		errors = append(errors, ValidationError{Field: "SEARCH_FUZZY_THRESHOLD", Message: "must be between 0 and 1"}.Error())
	}
	if cfg.Search.ResultLimit <= 0 {
		errors = append(errors, ValidationError{Field: "SEARCH_RESULT_LIMIT", Message: "must be positive"}.Error())
	}
	if cfg.Search.MinExactResults < 0 {
		errors = append(errors, ValidationError{Field: "SEARCH_MIN_EXACT_RESULTS", Message: "must not be negative"}.Error())
	}
	if cfg.Recommend.SeedPoolSize <= 0 {
		errors = append(errors, ValidationError{Field: "RECOMMEND_SEED_POOL_SIZE", Message: "must be positive"}.Error())
	}
	if cfg.Recommend.DefaultLimit <= 0 || cfg.Recommend.DefaultLimit > cfg.Recommend.MaxLimit {
		errors = append(errors, ValidationError{Field: "RECOMMEND_DEFAULT_LIMIT", Message: "must be between 1 and RECOMMEND_MAX_LIMIT"}.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
