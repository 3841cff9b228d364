package config

import (
	"os"
	"strings"
)

// Environment selects where configuration values are read from
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment reads ENV, case-insensitively. CI=true wins over ENV so CI
// runners never pick up developer defaults; anything unrecognized is
// development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch strings.ToLower(strings.TrimSpace(os.Getenv("ENV"))) {
	case "production", "prod":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// DefaultLogFormat is console output on a developer machine and JSON elsewhere.
func (e Environment) DefaultLogFormat() string {
	if e == Development {
		return "console"
	}
	return "json"
}
