package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"refinery/internal/config"
	"refinery/internal/domain"
	"refinery/internal/processor"
)

// Summarizer implements port.Summarizer using the OpenAI Chat Completions API.
type Summarizer struct {
	client       *client
	systemPrompt string
}

// NewSummarizer creates a summarizer from config. The system prompt can be
// tuned via config; empty falls back to the default.
func NewSummarizer(cfg *config.LLMConfig) *Summarizer {
	return NewSummarizerWithEndpoint(cfg, cfg.Endpoint)
}

// NewSummarizerWithEndpoint creates a summarizer pointing at a custom API endpoint (for testing).
func NewSummarizerWithEndpoint(cfg *config.LLMConfig, endpoint string) *Summarizer {
	prompt := cfg.SummaryPrompt
	if prompt == "" {
		prompt = processor.DefaultSummarizationPrompt
	}
	return &Summarizer{
		client:       newClient(cfg, endpoint),
		systemPrompt: prompt,
	}
}

// chatResponse models the Chat Completions API reply.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Summarize compresses text into an information-dense summary.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	reqBody := map[string]any{
		"model": s.client.model,
		"messages": []map[string]any{
			{"role": "system", "content": s.systemPrompt},
			{"role": "user", "content": text},
		},
		"response_format": map[string]any{"type": "text"},
	}

	respBody, err := s.client.post(ctx, "/v1/chat/completions", reqBody)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling summarization response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: %s: empty response, no choices", domain.ErrBackendFailure, providerName)
	}
	return resp.Choices[0].Message.Content, nil
}
