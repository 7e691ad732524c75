package processor_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"refinery/internal/domain"
	"refinery/internal/processor"
)

func TestClassifyStatus_BadRequest(t *testing.T) {
	err := processor.ClassifyStatus("openai", 400, []byte(`{"error":{"message":"schema too deep"}}`))
	assert.True(t, errors.Is(err, domain.ErrInvalidRequest))
	assert.Contains(t, err.Error(), "schema too deep")
	assert.Contains(t, err.Error(), "openai")
}

func TestClassifyStatus_Unprocessable(t *testing.T) {
	err := processor.ClassifyStatus("mistral", 422, []byte(`{"detail":"document too large"}`))
	assert.True(t, errors.Is(err, domain.ErrInvalidRequest))
	assert.Contains(t, err.Error(), "document too large")
}

func TestClassifyStatus_ServerError(t *testing.T) {
	err := processor.ClassifyStatus("mistral", 500, []byte(`{"message":"internal"}`))
	assert.True(t, errors.Is(err, domain.ErrBackendFailure))
	assert.False(t, errors.Is(err, domain.ErrInvalidRequest))
}

func TestClassifyStatus_RateLimited(t *testing.T) {
	err := processor.ClassifyStatus("openai", 429, nil)
	assert.True(t, errors.Is(err, domain.ErrBackendFailure))
}

func TestClassifyStatus_RawBodyFallback(t *testing.T) {
	err := processor.ClassifyStatus("openai", 503, []byte("upstream timeout"))
	assert.Contains(t, err.Error(), "upstream timeout")
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 600)
	assert.Len(t, processor.Truncate(long, 500), 503)
	assert.Equal(t, "short", processor.Truncate("short", 500))
}
