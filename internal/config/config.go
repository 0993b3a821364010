// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// MongoURI is the MongoDB connection string. Required.
	MongoURI string

	// MongoDB is the database name. Defaults to "TravelBuddy".
	MongoDB string

	// OpenAIKey is the API key for the itinerary model backend. Required.
	OpenAIKey string

	// OpenAIModel overrides the completion model. Empty means the backend's
	// default (gpt-4o).
	OpenAIModel string

	// GenerationTimeout bounds a single model call. Defaults to 60s.
	// Set GENERATION_TIMEOUT to a Go duration string (e.g. "90s") to override.
	GenerationTimeout time.Duration

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		MongoDB:     getEnv("MONGO_DB", "TravelBuddy"),
		OpenAIModel: os.Getenv("OPENAI_MODEL"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	timeout, err := time.ParseDuration(getEnv("GENERATION_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid GENERATION_TIMEOUT: %w", err)
	}
	cfg.GenerationTimeout = timeout

	var missing []string

	cfg.MongoURI = os.Getenv("MONGO_URI")
	if cfg.MongoURI == "" {
		missing = append(missing, "MONGO_URI")
	}
	cfg.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	if cfg.OpenAIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
