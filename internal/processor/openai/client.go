// Package openai implements the summarization and structured-extraction
// capabilities against the OpenAI API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"refinery/internal/config"
	"refinery/internal/domain"
	"refinery/internal/processor"
)

const providerName = "openai"

// client is the shared HTTP plumbing for the OpenAI adapters.
type client struct {
	apiKey   string
	model    string
	endpoint string
	http     *http.Client
}

func newClient(cfg *config.LLMConfig, endpoint string) *client {
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &client{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// post sends a JSON request to path and returns the response body, mapping
// non-2xx statuses onto the domain error taxonomy.
func (c *client) post(ctx context.Context, path string, reqBody any) ([]byte, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrBackendFailure, providerName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: reading response: %v", domain.ErrBackendFailure, providerName, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, processor.ClassifyStatus(providerName, resp.StatusCode, respBody)
	}
	return respBody, nil
}

// responsesOutput models the Responses API reply: the generated text lives at
// output[0].content[0].text.
type responsesOutput struct {
	Output []struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

func (r *responsesOutput) text() (string, error) {
	if len(r.Output) == 0 || len(r.Output[0].Content) == 0 {
		return "", fmt.Errorf("%w: %s: empty response output", domain.ErrBackendFailure, providerName)
	}
	return r.Output[0].Content[0].Text, nil
}
