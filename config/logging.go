// Package config provides the dispatcher's configuration types.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lsevent/dispatcher/pkg/lib/log"
)

// LoggingConfig controls the package-level logger installed by
// internal/app for a dispatcher-hosting process.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	// Default: "info"
	Level string `json:"level"`

	// JSON selects JSON-formatted output over the default text format.
	JSON bool `json:"json"`
}

// DefaultLoggingConfig returns the default logging configuration.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level: "info",
		JSON:  false,
	}
}

// Validate reports whether c is internally consistent.
func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging: unknown level %q", c.Level)
	}
}

// slogLevel translates Level into its slog.Level equivalent. Validate
// guarantees Level is one of the four recognized strings by the time this
// runs, so unrecognized values fall back to info rather than erroring.
func (c LoggingConfig) slogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Install rebuilds pkg/lib/log's default logger from this configuration,
// writing to stderr in JSON or text form at the configured level.
func (c LoggingConfig) Install() {
	if c.JSON {
		log.SetDefault(log.NewJSON(os.Stderr, &slog.HandlerOptions{Level: c.slogLevel()}))
		return
	}
	log.SetLevel(c.slogLevel())
}
