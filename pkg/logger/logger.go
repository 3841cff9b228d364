package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/pageza/culinary-assistant/backend/config"
	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger so callers get the structured event API
// (l.Info().Str(...).Msg(...)) plus a few helpers.
type Logger struct {
	zerolog.Logger
}

// New creates a structured logger with validation and defaults
func New(cfg config.LogConfig) (*Logger, error) {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter is New with an explicit destination, used by tests.
func NewWithWriter(cfg config.LogConfig, out io.Writer) (*Logger, error) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "culinary-assistant"
	}

	// Validate log level early to fail fast
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level '%s': %w", level, err)
	}

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out}
	}

	l := zerolog.New(out).
		Level(logLevel).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	return &Logger{Logger: l}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// WithComponent returns a logger instance with component context
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.With().Str("component", component).Logger()}
}
