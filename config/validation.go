package config

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	var errs []ValidationError

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: "is required"})
	}

	switch cfg.DBDriver {
	case "postgres":
		if GetEnvironment() == Production && cfg.DBPassword == "" {
			errs = append(errs, ValidationError{Field: "DB_PASSWORD", Message: "is required in production"})
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{Field: "SQLITE_PATH", Message: "is required for the sqlite driver"})
		}
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if cfg.GeminiAPIKey == "" && GetEnvironment() != Test {
		errs = append(errs, ValidationError{Field: "GEMINI_API_KEY", Message: "GEMINI_API_KEY or GEMINI_API_KEY_FILE must be set"})
	}

	if cfg.MemoryMaxTurns < 1 {
		errs = append(errs, ValidationError{Field: "MEMORY_MAX_TURNS", Message: "must be at least 1"})
	}
	if cfg.RedisPingTimeout <= 0 {
		errs = append(errs, ValidationError{Field: "REDIS_PING_TIMEOUT", Message: "must be positive"})
	}
	if cfg.AdjustmentDelay < 0 {
		errs = append(errs, ValidationError{Field: "ADJUSTMENT_DELAY", Message: "must not be negative"})
	}
	if _, err := time.Parse("15:04", cfg.DailyRunAt); err != nil {
		errs = append(errs, ValidationError{Field: "DAILY_RUN_AT", Message: "must be HH:MM (UTC)"})
	}

	if len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(msgs, "\n"))
	}

	return nil
}

// DailyRunTime returns the hour and minute of DailyRunAt.
func (c *Config) DailyRunTime() (int, int) {
	t, err := time.Parse("15:04", c.DailyRunAt)
	if err != nil {
		return 23, 59
	}
	return t.Hour(), t.Minute()
}
