package llm

import (
	"os"
	"strconv"
	"time"
)

// Config holds all settings for the model API client.
type Config struct {
	Endpoint   string
	APIKey     string
	Model      string
	MaxTokens  int
	Timeout    time.Duration
	MaxRetries int
	LogCalls   bool
}

// DefaultConfig returns a Config with sensible defaults. The API key has
// no default; without one the server falls back to the static extractor.
func DefaultConfig() Config {
	return Config{
		Endpoint:   "https://api.anthropic.com",
		Model:      "claude-3-haiku-20240307",
		MaxTokens:  1024,
		Timeout:    30 * time.Second,
		MaxRetries: 3,
	}
}

// LoadConfig reads client configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	if v := os.Getenv("INVOICEFLOW_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("INVOICEFLOW_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("INVOICEFLOW_LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	if v := os.Getenv("INVOICEFLOW_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Timeout = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv("INVOICEFLOW_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("INVOICEFLOW_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}
