package processor

import (
	"encoding/json"
	"fmt"
	"net/http"

	"refinery/internal/domain"
)

// ClassifyStatus turns a non-2xx backend response into a domain error.
// Caller-attributable rejections (payload or policy violations) map to
// domain.ErrInvalidRequest with the backend's message preserved; anything
// else maps to domain.ErrBackendFailure.
func ClassifyStatus(provider string, status int, body []byte) error {
	msg := extractMessage(body)

	switch status {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s (status %d): %s", domain.ErrInvalidRequest, provider, status, msg)
	}
	return fmt.Errorf("%w: %s (status %d): %s", domain.ErrBackendFailure, provider, status, msg)
}

// extractMessage pulls a human-readable message out of a backend error body.
// Both Mistral and OpenAI nest it differently, so try the common shapes and
// fall back to the raw (truncated) body.
func extractMessage(body []byte) string {
	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &nested); err == nil {
		switch {
		case nested.Error.Message != "":
			return nested.Error.Message
		case nested.Message != "":
			return nested.Message
		case nested.Detail != "":
			return nested.Detail
		}
	}
	return Truncate(string(body), 500)
}

// Truncate shortens s to at most maxLen bytes, appending an ellipsis.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
