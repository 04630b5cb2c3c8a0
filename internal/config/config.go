package config

import (
	"os"

	"github.com/joho/godotenv"

	"invoiceflow/internal/llm"
)

// Version is reported by the health endpoint and the CLI.
const Version = "1.0.0"

type Config struct {
	// RunAddress is the HTTP listen address for serve mode.
	RunAddress string

	// BaseURL is the public base used when building invoice preview and
	// pdf links.
	BaseURL string

	// LLM configures the model API client. An empty APIKey switches the
	// extractor to the static in-memory double.
	LLM llm.Config
}

// Load reads configuration from a .env file (when present) and the
// environment, falling back to defaults.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		RunAddress: "localhost:8080",
		BaseURL:    "https://invoiceflow.local",
		LLM:        llm.LoadConfig(),
	}

	cfg.RunAddress = getEnv("INVOICEFLOW_RUN_ADDRESS", cfg.RunAddress)
	cfg.BaseURL = getEnv("INVOICEFLOW_BASE_URL", cfg.BaseURL)

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
