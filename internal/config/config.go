// ABOUTME: Configuration loader for the clinica CLI
// ABOUTME: Loads settings from an optional .env file and environment variables

package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the CLI
type Config struct {
	APIURL         string // Base URL of the clinic backend, including the /api prefix
	RequestTimeout int    // HTTP request timeout in seconds
	ConfigDir      string // Directory for persisted CLI state (token, etc.)
}

// DefaultAPIURL is used when no flag or environment override is given
const DefaultAPIURL = "http://localhost:8080/api"

// Load reads configuration from .env (if present) and the environment.
// Environment variables always win over .env entries already set.
func Load() (*Config, error) {
	// Missing .env is not an error; godotenv only fills unset variables
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:         getEnv("CLINICA_API_URL", DefaultAPIURL),
		RequestTimeout: getEnvInt("CLINICA_REQUEST_TIMEOUT", 30),
		ConfigDir:      getEnv("CLINICA_CONFIG_DIR", DefaultConfigDir()),
	}

	return cfg, nil
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "clinica")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "clinica")
}

// getEnv returns the environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as an int or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
