package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"refinery/internal/config"
	"refinery/internal/domain"
	"refinery/internal/processor"
)

// ConfidenceProcessor implements port.StructuredOutputWithConfidence. It wraps
// the caller's schema so the model returns an {output, confidence} pair in a
// single constrained request.
type ConfidenceProcessor struct {
	client       *client
	systemPrompt string
}

// NewConfidenceProcessor creates a confidence-aware structured-output processor from config.
func NewConfidenceProcessor(cfg *config.LLMConfig) *ConfidenceProcessor {
	return NewConfidenceProcessorWithEndpoint(cfg, cfg.Endpoint)
}

// NewConfidenceProcessorWithEndpoint creates a processor pointing at a custom API endpoint (for testing).
func NewConfidenceProcessorWithEndpoint(cfg *config.LLMConfig, endpoint string) *ConfidenceProcessor {
	return &ConfidenceProcessor{
		client:       newClient(cfg, endpoint),
		systemPrompt: processor.DefaultConfidencePrompt,
	}
}

// buildConfidenceSchema derives the wrapper schema: the caller's schema is
// nested under "output", and a sibling "confidence" object demands an overall
// score plus one per-field score for every top-level caller property.
func buildConfidenceSchema(original map[string]any) map[string]any {
	originalProperties, _ := original["properties"].(map[string]any)

	fieldScoreProperties := make(map[string]any, len(originalProperties))
	fieldScoreRequired := make([]string, 0, len(originalProperties))
	for field := range originalProperties {
		fieldScoreProperties[field] = map[string]any{
			"type":        "number",
			"minimum":     0,
			"maximum":     1,
			"description": fmt.Sprintf("Confidence score for the '%s' field", field),
		}
		fieldScoreRequired = append(fieldScoreRequired, field)
	}

	outputSchema := map[string]any{
		"type":       "object",
		"properties": originalProperties,
	}
	if required, ok := original["required"]; ok {
		outputSchema["required"] = required
	} else {
		outputSchema["required"] = []string{}
	}
	if additional, ok := original["additionalProperties"]; ok {
		outputSchema["additionalProperties"] = additional
	} else {
		outputSchema["additionalProperties"] = false
	}
	// Carry descriptive metadata but drop top-level $schema/strict markers.
	for _, key := range []string{"title", "description"} {
		if v, ok := original[key]; ok {
			outputSchema[key] = v
		}
	}

	return map[string]any{
		"$schema": "https://json-schema.org/draft-07/schema#",
		"type":    "object",
		"properties": map[string]any{
			"output": outputSchema,
			"confidence": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"overall": map[string]any{
						"type":        "number",
						"minimum":     0,
						"maximum":     1,
						"description": "Overall confidence in the extraction",
					},
					"field_scores": map[string]any{
						"type":                 "object",
						"properties":           fieldScoreProperties,
						"required":             fieldScoreRequired,
						"additionalProperties": false,
					},
				},
				"required":             []string{"overall", "field_scores"},
				"additionalProperties": false,
			},
		},
		"required":             []string{"output", "confidence"},
		"additionalProperties": false,
	}
}

// ProcessWithConfidence issues one constrained request against the wrapper
// schema and splits the result into output and confidence parts.
func (p *ConfidenceProcessor) ProcessWithConfidence(ctx context.Context, schema map[string]any, text string, contextPrompt *domain.ContextPrompt) (*domain.ExtractionResult, error) {
	wrapperSchema := buildConfidenceSchema(schema)

	raw, err := p.client.generateConstrained(ctx, p.systemPrompt, "json_schema_with_confidence", wrapperSchema, text, contextPrompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Output     json.RawMessage `json:"output"`
		Confidence struct {
			Overall     *float64           `json:"overall"`
			FieldScores map[string]float64 `json:"field_scores"`
		} `json:"confidence"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parsing confidence-wrapped output: %w", err)
	}
	if parsed.Output == nil {
		return nil, fmt.Errorf("%w: %s: constrained output missing output object", domain.ErrBackendFailure, providerName)
	}

	return &domain.ExtractionResult{
		Output:                   parsed.Output,
		FieldScores:              parsed.Confidence.FieldScores,
		SchemaMatchingConfidence: parsed.Confidence.Overall,
	}, nil
}

// Process satisfies the plain structured-output contract by discarding the
// confidence portion.
func (p *ConfidenceProcessor) Process(ctx context.Context, schema map[string]any, text string, contextPrompt *domain.ContextPrompt) (json.RawMessage, error) {
	result, err := p.ProcessWithConfidence(ctx, schema, text, contextPrompt)
	if err != nil {
		return nil, err
	}
	return result.Output, nil
}
