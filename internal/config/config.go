package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	// Database
	SQLiteDBPath string

	// Scheduler
	TickInterval time.Duration

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/fintrack.db"),
		TickInterval: getEnvDuration("SCHEDULER_TICK_INTERVAL", 30*time.Second),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	} else {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.TickInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid tick interval %v: must be at least 1 second", c.TickInterval))
	} else if c.TickInterval > time.Hour {
		errors = append(errors, fmt.Sprintf("invalid tick interval %v: must be at most 1 hour", c.TickInterval))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
