package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"refinery/internal/domain"
)

// MockStructuredProcessor is a mock implementation of port.StructuredOutputWithConfidence.
type MockStructuredProcessor struct {
	mock.Mock
}

func (m *MockStructuredProcessor) Process(ctx context.Context, schema map[string]any, text string, contextPrompt *domain.ContextPrompt) (json.RawMessage, error) {
	args := m.Called(ctx, schema, text, contextPrompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockStructuredProcessor) ProcessWithConfidence(ctx context.Context, schema map[string]any, text string, contextPrompt *domain.ContextPrompt) (*domain.ExtractionResult, error) {
	args := m.Called(ctx, schema, text, contextPrompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionResult), args.Error(1)
}
