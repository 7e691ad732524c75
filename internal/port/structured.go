package port

import (
	"context"
	"encoding/json"

	"refinery/internal/domain"
)

// StructuredOutputProcessor abstracts an LLM backend that maps free text and
// a JSON Schema into a schema-conforming object.
type StructuredOutputProcessor interface {
	Process(ctx context.Context, schema map[string]any, text string, contextPrompt *domain.ContextPrompt) (json.RawMessage, error)
}

// StructuredOutputWithConfidence extends the plain contract with per-field and
// overall confidence annotations.
type StructuredOutputWithConfidence interface {
	StructuredOutputProcessor

	ProcessWithConfidence(ctx context.Context, schema map[string]any, text string, contextPrompt *domain.ContextPrompt) (*domain.ExtractionResult, error)
}
