package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/lodgepole/gatehouse/pkg/jwtx"
)

type Config struct {
	JWTSecret string // Required: HS256 signing key for session tokens

	Issuer              string        // Optional: issuer claim for tokens (default: gatehouse)
	TokenTTL            time.Duration // Optional: session token lifetime (default: 10m)
	DatabaseFile        string        // Optional: path to SQLite database file (default: ./auth.db)
	RedisAddr           string        // Optional: redis address; empty selects the in-memory stores
	PepperFile          string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// ErrMissingJWTSecret means the process was started without a signing key.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

func LoadConfig() (Config, error) {
	cfg := Config{
		JWTSecret:           os.Getenv("JWT_SECRET"),
		Issuer:              getEnvOrDefault("AUTH_ISSUER", "gatehouse"),
		TokenTTL:            getEnvDurationOrDefault("TOKEN_TTL", jwtx.DefaultSessionTTL),
		DatabaseFile:        getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		RedisAddr:           os.Getenv("REDIS_ADDR"), // Optional: in-memory stores when unset
		PepperFile:          getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	// Refusing to start beats silently minting forgeable tokens.
	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}

	return cfg, nil
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

	// Plain integers are taken as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
