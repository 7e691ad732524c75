package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"refinery/internal/config"
	"refinery/internal/domain"
	"refinery/internal/processor"
)

// StructuredProcessor implements port.StructuredOutputProcessor using the
// OpenAI Responses API with schema-constrained generation.
type StructuredProcessor struct {
	client       *client
	systemPrompt string
}

// NewStructuredProcessor creates a plain structured-output processor from config.
func NewStructuredProcessor(cfg *config.LLMConfig) *StructuredProcessor {
	return NewStructuredProcessorWithEndpoint(cfg, cfg.Endpoint)
}

// NewStructuredProcessorWithEndpoint creates a processor pointing at a custom API endpoint (for testing).
func NewStructuredProcessorWithEndpoint(cfg *config.LLMConfig, endpoint string) *StructuredProcessor {
	return &StructuredProcessor{
		client:       newClient(cfg, endpoint),
		systemPrompt: processor.DefaultStructuredOutputPrompt,
	}
}

// Process issues one schema-constrained generation request demanding strict
// conformance to schema and parses the single textual result as JSON.
func (p *StructuredProcessor) Process(ctx context.Context, schema map[string]any, text string, contextPrompt *domain.ContextPrompt) (json.RawMessage, error) {
	raw, err := p.client.generateConstrained(ctx, p.systemPrompt, "json_schema", schema, text, contextPrompt)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// generateConstrained is the shared schema-constrained generation call. The
// caller-supplied context prompt, when rendered non-empty, is appended to the
// system prompt.
func (c *client) generateConstrained(ctx context.Context, systemPrompt, schemaName string, schema map[string]any, text string, contextPrompt *domain.ContextPrompt) (json.RawMessage, error) {
	if rendered := contextPrompt.Render(); rendered != "" {
		systemPrompt = systemPrompt + "\n\n" + rendered
	}

	reqBody := map[string]any{
		"model": c.model,
		"input": []map[string]any{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": text},
		},
		"text": map[string]any{
			"format": map[string]any{
				"type":   "json_schema",
				"name":   schemaName,
				"schema": schema,
				"strict": true,
			},
		},
	}

	respBody, err := c.post(ctx, "/v1/responses", reqBody)
	if err != nil {
		return nil, err
	}

	var resp responsesOutput
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling responses output: %w", err)
	}
	text, err = resp.text()
	if err != nil {
		return nil, err
	}

	if !json.Valid([]byte(text)) {
		return nil, fmt.Errorf("%w: %s: constrained output is not valid JSON: %s", domain.ErrBackendFailure, providerName, processor.Truncate(text, 500))
	}
	return json.RawMessage(text), nil
}
