package config

import (
	"os"

	"github.com/joho/godotenv"
)

// DefaultSource labels records when the caller supplies no source.
const DefaultSource = "Chrome Import"

// Config holds application configuration
type Config struct {
	Source    string
	OutputDir string
	DBPath    string
	LogLevel  string
}

// NewConfig creates configuration from defaults plus environment overrides.
// A .env file in the working directory is honored when present; flags still
// win over everything here.
func NewConfig() *Config {
	// A missing .env file is fine.
	_ = godotenv.Load()

	return &Config{
		Source:    envOr("BOOKMARKS_SOURCE", DefaultSource),
		OutputDir: os.Getenv("BOOKMARKS_OUTPUT_DIR"),
		DBPath:    os.Getenv("BOOKMARKS_DB"),
		LogLevel:  envOr("BOOKMARKS_LOG_LEVEL", "info"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
