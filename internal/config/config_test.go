package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("ERROR_STATUS_MODE", "")
	t.Setenv("MAX_UPLOAD_SIZE", "")
	t.Setenv("MAX_EXTRACT_SIZE", "")
	t.Setenv("COMPLETION_TIMEOUT", "")
	t.Setenv("WRITE_TIMEOUT", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, DefaultBaseURL, cfg.OpenAIBaseURL)
	assert.Equal(t, ErrorStatusFlat, cfg.ErrorStatusMode)
	assert.Equal(t, int64(32<<20), cfg.MaxUploadSize)
	assert.Equal(t, int64(256<<20), cfg.MaxExtractSize)
	assert.Zero(t, cfg.CompletionTimeout)
	assert.Equal(t, 120*time.Second, cfg.WriteTimeout)
}

func TestFromEnv_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "OPENAI_API_KEY")
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:9999/v1")
	t.Setenv("ERROR_STATUS_MODE", ErrorStatusTyped)
	t.Setenv("MAX_UPLOAD_SIZE", "1024")
	t.Setenv("MAX_EXTRACT_SIZE", "4096")
	t.Setenv("COMPLETION_TIMEOUT", "30s")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, ErrorStatusTyped, cfg.ErrorStatusMode)
	assert.Equal(t, int64(1024), cfg.MaxUploadSize)
	assert.Equal(t, int64(4096), cfg.MaxExtractSize)
	assert.Equal(t, 30*time.Second, cfg.CompletionTimeout)
}

func TestFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad mode", "ERROR_STATUS_MODE", "loud"},
		{"bad upload size", "MAX_UPLOAD_SIZE", "lots"},
		{"zero upload size", "MAX_UPLOAD_SIZE", "0"},
		{"bad extract size", "MAX_EXTRACT_SIZE", "-5"},
		{"bad timeout", "COMPLETION_TIMEOUT", "soon"},
		{"negative timeout", "WRITE_TIMEOUT", "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", "sk-test")
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			assert.ErrorContains(t, err, tt.key)
		})
	}
}
