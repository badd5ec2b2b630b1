package app

import (
	"os"
	"strconv"
	"time"

	"github.com/vitalog/vitalog/pkg/jwtx"
)

type Config struct {
	Issuer string // Issuer claim for tokens (default: vitalog)

	AccessSecret  string        // Required in prod: HMAC secret for access tokens
	RefreshSecret string        // Required in prod: HMAC secret for refresh tokens
	AccessTTL     time.Duration // Access token lifetime (default: 15m)
	RefreshTTL    time.Duration // Refresh token lifetime (default: 168h)

	DatabaseFile        string        // Path to SQLite database file (default: ./vitalog.db)
	PepperFile          string        // Path to password-hash pepper file (default: ./pepper)
	FrontendURL         string        // Optional: CORS origin allowed to send credentials
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:              getEnvOrDefault("JWT_ISSUER", "vitalog"),
		AccessSecret:        os.Getenv("JWT_ACCESS_SECRET"),
		RefreshSecret:       os.Getenv("JWT_REFRESH_SECRET"),
		AccessTTL:           getEnvDurationOrDefault("JWT_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL:          getEnvDurationOrDefault("JWT_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "vitalog.db"),
		PepperFile:          getEnvOrDefault("PEPPER_FILE", "pepper"),
		FrontendURL:         os.Getenv("FRONTEND_URL"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// IsProd reports whether the service runs with production settings, which
// governs cookie security and secret requirements.
func (c Config) IsProd() bool {
	return c.Env == "prod"
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

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Allow plain integers, read as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
