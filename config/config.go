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
	// CORSAllowedOrigins is empty to allow any origin
	CORSAllowedOrigins []string

	// Database configuration. DBDriver is "postgres" or "sqlite".
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string
	// RedisPingTimeout bounds the startup connection check
	RedisPingTimeout time.Duration

	// Session verification
	JWTSecret string

	// Generative model
	GeminiAPIKey  string
	GeminiModel   string
	GeminiAPIURL  string
	GeminiTimeout time.Duration

	// Conversation memory bounds
	MemoryMaxTurns int
	MemoryMaxUsers int
	MemoryTTL      time.Duration

	// Daily pipeline
	SchedulerEnabled bool
	DailyRunAt       string
	AdjustmentDelay  time.Duration
	JobToken         string

	// AIAdjustmentRateLimit is the number of adjustment requests allowed per user per hour
	AIAdjustmentRateLimit int

	// Adjustment archive
	S3BucketName string
	AWSRegion    string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI, Development, Test:
		loadFromEnv(cfg, os.Getenv)
	case Production:
		// Production secrets come from Docker secrets, everything else from the environment
		loadFromEnv(cfg, func(key string) string {
			if v := readSecret(strings.ToLower(key)); v != "" {
				return v
			}
			return os.Getenv(key)
		})
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadFromEnv(cfg *Config, get func(string) string) {
	cfg.ServerPort = withDefault(get("SERVER_PORT"), "8900")
	cfg.ServerHost = withDefault(get("SERVER_HOST"), "0.0.0.0")
	cfg.CORSAllowedOrigins = splitList(get("CORS_ALLOWED_ORIGINS"))

	cfg.DBDriver = withDefault(get("DB_DRIVER"), "postgres")
	cfg.DBHost = withDefault(get("DB_HOST"), "localhost")
	cfg.DBPort = withDefault(get("DB_PORT"), "5432")
	cfg.DBUser = withDefault(get("DB_USER"), "postgres")
	cfg.DBPassword = get("DB_PASSWORD")
	cfg.DBName = withDefault(get("DB_NAME"), "dietwise")
	cfg.DBSSLMode = withDefault(get("DB_SSL_MODE"), "disable")
	cfg.SQLitePath = withDefault(get("SQLITE_PATH"), "dietwise.db")

	cfg.RedisHost = withDefault(get("REDIS_HOST"), "localhost")
	cfg.RedisPort = withDefault(get("REDIS_PORT"), "6379")
	cfg.RedisPassword = get("REDIS_PASSWORD")
	cfg.RedisDB = intOr(get("REDIS_DB"), 0)
	cfg.RedisURL = get("REDIS_URL")
	cfg.RedisPingTimeout = durationOr(get("REDIS_PING_TIMEOUT"), 5*time.Second)

	cfg.JWTSecret = get("JWT_SECRET")

	cfg.GeminiAPIKey = get("GEMINI_API_KEY")
	if cfg.GeminiAPIKey == "" {
		if keyFile := get("GEMINI_API_KEY_FILE"); keyFile != "" {
			if data, err := os.ReadFile(keyFile); err == nil {
				cfg.GeminiAPIKey = strings.TrimSpace(string(data))
			}
		}
	}
	cfg.GeminiModel = withDefault(get("GEMINI_MODEL"), "gemini-1.5-flash")
	cfg.GeminiAPIURL = withDefault(get("GEMINI_API_URL"), "https://generativelanguage.googleapis.com/v1beta")
	cfg.GeminiTimeout = durationOr(get("GEMINI_TIMEOUT"), 120*time.Second)

	cfg.MemoryMaxTurns = intOr(get("MEMORY_MAX_TURNS"), 10)
	cfg.MemoryMaxUsers = intOr(get("MEMORY_MAX_USERS"), 1000)
	cfg.MemoryTTL = durationOr(get("MEMORY_TTL"), 24*time.Hour)

	cfg.SchedulerEnabled = get("SCHEDULER_ENABLED") == "true"
	cfg.DailyRunAt = withDefault(get("DAILY_RUN_AT"), "23:59")
	cfg.AdjustmentDelay = durationOr(get("ADJUSTMENT_DELAY"), 120*time.Second)
	cfg.JobToken = get("JOB_TOKEN")

	cfg.AIAdjustmentRateLimit = intOr(get("AI_ADJUSTMENT_RATE_LIMIT"), 5)

	cfg.S3BucketName = get("S3_BUCKET_NAME")
	cfg.AWSRegion = get("AWS_REGION")
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

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func intOr(v string, def int) int {
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

func durationOr(v string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}
