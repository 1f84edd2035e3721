package config

import (
	"fmt"
	"os"
)

const (
	defaultAddr       = ":8080"
	defaultCohereBase = "https://api.cohere.ai/compatibility/v1"
	defaultModel      = "command-a-03-2025"
)

type Config struct {
	Addr          string
	DatabaseURL   string
	JWTSecret     string
	CohereAPIKey  string
	CohereBaseURL string
	CohereModel   string
}

// Load reads configuration from the environment. The database URL, JWT
// secret and model API key have no usable defaults, so a missing value is
// a startup error rather than something to limp along without.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("ADDR", defaultAddr),
		DatabaseURL:   os.Getenv("DB_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		CohereAPIKey:  os.Getenv("COHERE_API_KEY"),
		CohereBaseURL: getEnv("COHERE_BASE_URL", defaultCohereBase),
		CohereModel:   getEnv("COHERE_MODEL", defaultModel),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DB_URL environment variable is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	if cfg.CohereAPIKey == "" {
		return nil, fmt.Errorf("COHERE_API_KEY environment variable is not set")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
