/*
Package config loads server configuration from the environment.

PURPOSE:
  One place that knows every knob the server reads. A local .env file is
  honored when present (godotenv); real environments set variables
  directly and the missing file is not an error.

VARIABLES:
  PORT                 HTTP port                   (default 8080)
  DB_PATH              SQLite database path        (default hourtracker.db)
  DEFAULT_HOURLY_RATE  Rate fallback anchor        (default 51)
  TAX_POLICY_PATH      JSON tax-year policy file   (default: built-in table)

SEE ALSO:
  - cmd/server/main.go: Flags layered on top of these defaults
*/
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries the resolved server configuration.
type Config struct {
	Port              int
	DBPath            string
	DefaultHourlyRate float64
	TaxPolicyPath     string
}

// Load reads a .env file when present and resolves every variable with its
// default.
func Load() Config {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	return Config{
		Port:              envInt("PORT", 8080),
		DBPath:            envString("DB_PATH", "hourtracker.db"),
		DefaultHourlyRate: envFloat("DEFAULT_HOURLY_RATE", 51.0),
		TaxPolicyPath:     envString("TAX_POLICY_PATH", ""),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
