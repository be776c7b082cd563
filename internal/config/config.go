// Package config handles application configuration.
//
// Go Pattern: Configuration via environment variables with sensible defaults.
// A .env file is loaded first (if present) so local development matches the
// deployed environment, then viper resolves every key from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultMaxUploadBytes is the upload ceiling for PDF files (10MB).
const DefaultMaxUploadBytes = 10 << 20

// Config holds all application configuration.
type Config struct {
	// Server settings
	Port    string
	GinMode string // "debug", "release", or "test"

	// Logging
	LogLevel  string // "debug", "info", "warn", "error"
	LogFormat string // "console" or "json"

	// OpenAI settings (document analysis)
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string // Optional: any OpenAI-compatible endpoint

	// Google Custom Search settings
	GoogleAPIKey         string
	GoogleSearchEngineID string
	GoogleSearchURL      string
	SearchTimeout        time.Duration

	// Uploads
	MaxUploadBytes int64

	// Presentation assets (the browser page)
	StaticDir string

	// CORS
	AllowedOrigins []string

	// When true, upstream error messages are not echoed back to clients.
	RedactErrorDetails bool
}

// Load reads configuration from the environment (and .env) with defaults.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "3000")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("GOOGLE_SEARCH_URL", "https://www.googleapis.com/customsearch/v1")
	v.SetDefault("SEARCH_TIMEOUT", 30*time.Second)
	v.SetDefault("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes)
	v.SetDefault("STATIC_DIR", "public")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("REDACT_ERROR_DETAILS", false)

	cfg := &Config{
		Port:      v.GetString("PORT"),
		GinMode:   v.GetString("GIN_MODE"),
		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),

		OpenAIAPIKey:  v.GetString("OPENAI_API_KEY"),
		OpenAIModel:   v.GetString("OPENAI_MODEL"),
		OpenAIBaseURL: v.GetString("OPENAI_BASE_URL"),

		GoogleAPIKey:         v.GetString("GOOGLE_API_KEY"),
		GoogleSearchEngineID: v.GetString("GOOGLE_SEARCH_ENGINE_ID"),
		GoogleSearchURL:      v.GetString("GOOGLE_SEARCH_URL"),
		SearchTimeout:        v.GetDuration("SEARCH_TIMEOUT"),

		MaxUploadBytes: v.GetInt64("MAX_UPLOAD_BYTES"),
		StaticDir:      v.GetString("STATIC_DIR"),

		AllowedOrigins:     splitList(v.GetString("CORS_ORIGINS")),
		RedactErrorDetails: v.GetBool("REDACT_ERROR_DETAILS"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	if c.SearchTimeout <= 0 {
		return fmt.Errorf("SEARCH_TIMEOUT must be positive, got %s", c.SearchTimeout)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE must be debug, release or test, got %q", c.GinMode)
	}
	return nil
}

// SearchConfigured reports whether both Google credentials are present.
func (c *Config) SearchConfigured() bool {
	return c.GoogleAPIKey != "" && c.GoogleSearchEngineID != ""
}

// loadEnvFile loads .env from the working directory or the project root.
// A missing file is fine; the process environment is used as-is.
func loadEnvFile() {
	paths := []string{".env"}
	if root := findProjectRoot(); root != "" {
		paths = append(paths, filepath.Join(root, ".env"))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
