// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits with
// an error. A .env file is loaded first when present (local dev).
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the moderation service.
type Config struct {
	Port                 string
	DatabaseURL          string
	RedisURL             string
	RecountIntervalHours int // how often the derived-view rebuild fires
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	// Best-effort: deployed environments pass real env vars.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	interval := 6
	if s := os.Getenv("RECOUNT_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("RECOUNT_INTERVAL_HOURS must be a positive integer, got %q", s)
		}
		interval = v
	}

	port := os.Getenv("MODERATION_PORT")
	if port == "" {
		port = "8084"
	}

	return &Config{
		Port:                 port,
		DatabaseURL:          dbURL,
		RedisURL:             redisURL,
		RecountIntervalHours: interval,
	}, nil
}
