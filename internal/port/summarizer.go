package port

import "context"

// Summarizer abstracts an LLM backend that compresses OCR text into a
// concise, information-dense summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
