package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	ErrorStatusFlat  = "flat"
	ErrorStatusTyped = "typed"

	DefaultBaseURL = "https://aiproxy.sanand.workers.dev/openai/v1"
)

type Config struct {
	Port     string
	LogLevel string

	// Completion service
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	CompletionTimeout time.Duration

	// Uploads
	MaxUploadSize  int64
	MaxExtractSize int64
	ScratchDir     string

	// HTTP
	ErrorStatusMode string
	WriteTimeout    time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", DefaultBaseURL),
		ScratchDir:      getEnv("SCRATCH_DIR", os.TempDir()),
		ErrorStatusMode: getEnv("ERROR_STATUS_MODE", ErrorStatusFlat),
	}

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	var err error
	if cfg.CompletionTimeout, err = getDuration("COMPLETION_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.WriteTimeout, err = getDuration("WRITE_TIMEOUT", 120*time.Second); err != nil {
		return nil, err
	}

	if cfg.MaxUploadSize, err = getBytes("MAX_UPLOAD_SIZE", 32<<20); err != nil {
		return nil, err
	}
	if cfg.MaxExtractSize, err = getBytes("MAX_EXTRACT_SIZE", 256<<20); err != nil {
		return nil, err
	}

	switch cfg.ErrorStatusMode {
	case ErrorStatusFlat, ErrorStatusTyped:
	default:
		return nil, fmt.Errorf("ERROR_STATUS_MODE must be %q or %q, got %q", ErrorStatusFlat, ErrorStatusTyped, cfg.ErrorStatusMode)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBytes(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive byte count, got %q", key, value)
	}
	return n, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%s must be a non-negative duration, got %q", key, value)
	}
	return d, nil
}
