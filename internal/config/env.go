package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays cfg with values from the process environment. A .env
// file in the working directory is loaded first when present; real
// environment variables win over it.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	cfg.ServerBaseURL = getEnv("BANKLEDGER_SERVER_URL", cfg.ServerBaseURL)
	cfg.RequestTimeout = getDurationEnv("BANKLEDGER_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.RateLimit = getIntEnv("BANKLEDGER_RATE_LIMIT", cfg.RateLimit)
	cfg.DatabasePath = getEnv("BANKLEDGER_DB_PATH", cfg.DatabasePath)
	cfg.PageLimit = getIntEnv("BANKLEDGER_PAGE_LIMIT", cfg.PageLimit)
	cfg.Debug = getBoolEnv("BANKLEDGER_DEBUG", cfg.Debug)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
