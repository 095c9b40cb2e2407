package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config aggregates runtime configuration for the incident tracker.
type Config struct {
	Port                   string
	DatabasePath           string
	SessionCookie          string
	SessionLifetimeSeconds int64
	UseHTTPS               bool
	BcryptCost             int
}

// Load reads configuration from the environment, applying defaults.
// A .env file is honored when present but never required.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:                   getEnv("PORT", "8080"),
		DatabasePath:           getEnv("DATABASE_PATH", "incident_tracker.db"),
		SessionCookie:          getEnv("SESSION_COOKIE", "incident_session"),
		SessionLifetimeSeconds: int64(getEnvAsInt("SESSION_LIFETIME_SECONDS", 3600)),
		UseHTTPS:               os.Getenv("USE_HTTPS") == "true",
		BcryptCost:             getEnvAsInt("BCRYPT_COST", bcrypt.DefaultCost),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
