package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	// OpenAI
	OpenAIBaseURL        string
	OpenAIDescriptionKey string
	OpenAICompsKey       string

	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseJWTSecret      string
	SupabaseStorageBucket  string

	// Database
	DatabaseURL string

	// Server
	Port           string
	Environment    string
	AllowedOrigins []string
}

func Load() (*Config, error) {
	cfg := &Config{
		OpenAIBaseURL:        getEnv("OPENAI_API_BASE_URL", "https://api.openai.com/v1/"),
		OpenAIDescriptionKey: getEnv("OPENAI_DESCRIPTION_KEY", ""),
		OpenAICompsKey:       getEnv("OPENAI_COMPS_KEY", ""),

		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "item-images"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		Port:           getEnv("PORT", "8081"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabasePublishableKey == "" {
		return fmt.Errorf("SUPABASE_PUBLISHABLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	// OpenAI keys are optional; endpoints that need them report a
	// configuration error at request time instead.
	return nil
}

// splitOrigins parses a comma-separated origin list, falling back to the
// local development origins when unset.
func splitOrigins(raw string) []string {
	if raw == "" {
		return []string{
			"http://localhost:5173",
			"http://localhost:5174",
			"http://127.0.0.1:5173",
			"http://127.0.0.1:5174",
		}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
