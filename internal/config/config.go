package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	GeneratorAnthropic = "anthropic"
	GeneratorOllama    = "ollama"
)

type Config struct {
	Port string

	// Auth
	DocshapeAPIKey string

	// Generation backend
	Generator       string
	AnthropicAPIKey string
	AnthropicModel  string
	OllamaHost      string
	OllamaModel     string
	MessageTemplate string

	// Limits
	MaxUploadBytes         int64
	MaxBatch               int
	MaxConcurrentStructure int

	LLMStatsWindow time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present; variables already
// set in the environment win.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8090"),

		DocshapeAPIKey: os.Getenv("DOCSHAPE_API_KEY"),

		Generator:       envOr("GENERATOR", GeneratorAnthropic),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		OllamaHost:      envOr("OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel:     envOr("OLLAMA_MODEL", "llama3.1"),
		MessageTemplate: os.Getenv("MESSAGE_TEMPLATE"),

		MaxUploadBytes:         envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB
		MaxBatch:               envInt("MAX_BATCH", 20),
		MaxConcurrentStructure: envInt("MAX_CONCURRENT_STRUCTURE", 4),

		LLMStatsWindow: envDuration("LLM_STATS_WINDOW", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = 20
	}
	if cfg.MaxConcurrentStructure <= 0 {
		cfg.MaxConcurrentStructure = 4
	}
	if cfg.LLMStatsWindow <= 0 {
		cfg.LLMStatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DocshapeAPIKey == "" {
		return fmt.Errorf("DOCSHAPE_API_KEY is required")
	}
	switch c.Generator {
	case GeneratorAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required")
		}
	case GeneratorOllama:
		if c.OllamaHost == "" {
			return fmt.Errorf("OLLAMA_HOST is required")
		}
	default:
		return fmt.Errorf("unknown GENERATOR %q (want %s or %s)", c.Generator, GeneratorAnthropic, GeneratorOllama)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
