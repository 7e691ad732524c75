package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PageResult holds the OCR output for a single page.
type PageResult struct {
	PageNumber int    `json:"page_number"`
	Markdown   string `json:"markdown"`
}

// OcrResult is the per-page OCR output plus the combined markdown of all pages.
// CombinedMarkdown is derived once at construction and never recomputed.
type OcrResult struct {
	Pages            []PageResult `json:"pages"`
	CombinedMarkdown string       `json:"combined_markdown"`
}

// NewOcrResult builds an OcrResult, joining the pages in the order given with
// a pagebreak separator and a "Page {n}:" prefix per page.
func NewOcrResult(pages []PageResult) *OcrResult {
	return &OcrResult{
		Pages:            pages,
		CombinedMarkdown: CombinePages(pages),
	}
}

// CombinePages joins page markdown into a single string for downstream reasoning.
func CombinePages(pages []PageResult) string {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		parts = append(parts, fmt.Sprintf("Page %d:\n%s", p.PageNumber, p.Markdown))
	}
	return strings.Join(parts, "\n\n\\pagebreak\n\n")
}

// DefaultContextTemplate frames caller-supplied context appended to a system prompt.
const DefaultContextTemplate = "Here is some context that may be relevant to the text you are given:\n\n%s"

// ContextPrompt carries optional caller guidance for structured extraction.
type ContextPrompt struct {
	Template string
	Context  string
}

// NewContextPrompt creates a ContextPrompt with the default template.
func NewContextPrompt(context string) *ContextPrompt {
	return &ContextPrompt{Template: DefaultContextTemplate, Context: context}
}

// Render returns the filled-in prompt, or "" when no context was supplied.
func (p *ContextPrompt) Render() string {
	if p == nil || p.Context == "" {
		return ""
	}
	return fmt.Sprintf(p.Template, p.Context)
}

// ExtractionResult is the structured extraction output, optionally annotated
// with per-field and overall schema-matching confidence.
type ExtractionResult struct {
	Output                   json.RawMessage    `json:"output"`
	FieldScores              map[string]float64 `json:"field_scores,omitempty"`
	SchemaMatchingConfidence *float64           `json:"schema_matching_confidence,omitempty"`
}

// ConfidenceScores aggregates the pipeline's confidence estimates.
type ConfidenceScores struct {
	Overall        float64            `json:"overall"`
	Ocr            *float64           `json:"ocr,omitempty"`
	Summarization  *float64           `json:"summarization,omitempty"`
	SchemaMatching *float64           `json:"schema_matching,omitempty"`
	FieldScores    map[string]float64 `json:"field_scores,omitempty"`
}

// Refinement is the result of one refinement pipeline run. The transport layer
// attaches the source identifier (url, filename, or bucket+key).
type Refinement struct {
	Schema     map[string]any    `json:"json_schema"`
	Summary    string            `json:"summary"`
	Output     json.RawMessage   `json:"output"`
	Context    string            `json:"context,omitempty"`
	Confidence *ConfidenceScores `json:"confidence,omitempty"`
}
