package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/bodytraq/imctrack/pkg/jwtx"
)

type Config struct {
	AccessSecret  string // Required: HMAC secret for access tokens
	RefreshSecret string // Required: HMAC secret for refresh tokens (must differ from AccessSecret)

	AccessTTL           time.Duration // Optional: access token lifetime (default: 15m)
	RefreshTTL          time.Duration // Optional: refresh token lifetime (default: 24h)
	DatabaseFile        string        // Optional: path to SQLite database file (default: ./imctrack.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	// Best effort: a missing .env file just means everything comes from
	// the process environment.
	_ = godotenv.Load()

	return Config{
		AccessSecret:        os.Getenv("IMC_ACCESS_SECRET"),
		RefreshSecret:       os.Getenv("IMC_REFRESH_SECRET"),
		AccessTTL:           getEnvDurationOrDefault("IMC_ACCESS_TTL", jwtx.DefaultAccessTTL),
		RefreshTTL:          getEnvDurationOrDefault("IMC_REFRESH_TTL", jwtx.DefaultRefreshTTL),
		DatabaseFile:        getEnvOrDefault("IMC_DATABASE_FILE", "imctrack.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
