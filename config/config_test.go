package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("CI", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "diet")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "dietwise")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("ADJUSTMENT_DELAY", "30s")
	t.Setenv("MEMORY_MAX_TURNS", "4")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://app.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "diet", cfg.DBUser)
	assert.Equal(t, "secret", cfg.DBPassword)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "gemini-key", cfg.GeminiAPIKey)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, 30*time.Second, cfg.AdjustmentDelay)
	assert.Equal(t, 4, cfg.MemoryMaxTurns)
	assert.Equal(t, []string{"http://localhost:5173", "https://app.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfigWithDefaults(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("CI", "")
	t.Setenv("JWT_SECRET", "test-secret")
	for _, key := range []string{"DB_DRIVER", "DB_HOST", "SERVER_PORT", "ADJUSTMENT_DELAY", "DAILY_RUN_AT", "GEMINI_MODEL", "MEMORY_MAX_TURNS", "REDIS_PING_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8900", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.Equal(t, 120*time.Second, cfg.AdjustmentDelay)
	assert.Equal(t, 10, cfg.MemoryMaxTurns)
	assert.Equal(t, 5*time.Second, cfg.RedisPingTimeout)

	hour, minute := cfg.DailyRunTime()
	assert.Equal(t, 23, hour)
	assert.Equal(t, 59, minute)
}

func TestLoadConfigReadsAPIKeyFile(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "gemini_key")
	require.NoError(t, os.WriteFile(keyFile, []byte("from-file\n"), 0o600))

	t.Setenv("ENV", "development")
	t.Setenv("CI", "")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY_FILE", keyFile)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.GeminiAPIKey)
}

func TestValidateConfig(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("CI", "")

	cfg := &Config{
		DBDriver:       "mongo",
		DailyRunAt:     "late",
		MemoryMaxTurns: 0,
	}

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET: is required")
	assert.Contains(t, err.Error(), `DB_DRIVER: unsupported driver "mongo"`)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	assert.Contains(t, err.Error(), "MEMORY_MAX_TURNS")
	assert.Contains(t, err.Error(), "DAILY_RUN_AT")
}

func TestNewS3ConfigWithoutBucket(t *testing.T) {
	s3cfg, err := NewS3Config(context.Background(), &Config{})
	assert.NoError(t, err)
	assert.Nil(t, s3cfg)
}
