package llm

import (
	"os"
	"strconv"
)

// Config holds the generation backend settings.
type Config struct {
	Endpoint    string
	Model       string
	Temperature float64
	MaxTokens   int
	TimeoutMs   int
	MaxRetries  int
	// LogCalls emits one structured log line per model call.
	LogCalls bool
}

// DefaultConfig returns a Config with local-Ollama defaults. The 30s
// timeout matches the client-side cap the chat boundary observes.
func DefaultConfig() Config {
	return Config{
		Endpoint:    "http://localhost:11434",
		Model:       "llama3.2",
		Temperature: 0.3,
		MaxTokens:   2500,
		TimeoutMs:   30000,
		MaxRetries:  1,
	}
}

// LoadConfig reads generation settings from MOODFLOW_LLM_* environment
// variables, falling back to defaults for any unset value.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("MOODFLOW_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("MOODFLOW_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("MOODFLOW_LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.Temperature = f
		}
	}
	if v := os.Getenv("MOODFLOW_LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	if v := os.Getenv("MOODFLOW_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("MOODFLOW_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("MOODFLOW_LLM_LOG_CALLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogCalls = b
		}
	}

	return cfg
}
