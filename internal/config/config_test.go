package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refinery/internal/config"
)

func setRequiredKeys(t *testing.T) {
	t.Setenv("REFINERY_OCR_API_KEY", "mistral-test-key")
	t.Setenv("REFINERY_LLM_API_KEY", "openai-test-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredKeys(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "mistral-ocr-latest", cfg.OCR.Model)
	assert.Equal(t, "https://api.mistral.ai", cfg.OCR.Endpoint)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, int64(300), cfg.S3.PresignExpiry)
	assert.False(t, cfg.S3.Configured())
	assert.NotEmpty(t, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequiredKeys(t)
	t.Setenv("REFINERY_OCR_ENDPOINT", "http://localhost:9999/")
	t.Setenv("REFINERY_S3_ACCESS_KEY", "ak")
	t.Setenv("REFINERY_S3_SECRET_KEY", "sk")
	t.Setenv("REFINERY_S3_PRESIGN_EXPIRY", "600")

	cfg, err := config.Load()
	require.NoError(t, err)

	// Trailing slash trimmed so adapters can append paths.
	assert.Equal(t, "http://localhost:9999", cfg.OCR.Endpoint)
	assert.True(t, cfg.S3.Configured())
	assert.Equal(t, int64(600), cfg.S3.PresignExpiry)
}

func TestLoad_MissingOCRKey(t *testing.T) {
	t.Setenv("REFINERY_OCR_API_KEY", "")
	t.Setenv("REFINERY_LLM_API_KEY", "openai-test-key")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFINERY_OCR_API_KEY")
}
