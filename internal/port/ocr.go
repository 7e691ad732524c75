package port

import (
	"context"

	"refinery/internal/domain"
)

// FileInput carries a raw uploaded file for OCR processing.
type FileInput struct {
	Data        []byte
	Filename    string
	ContentType string
}

// OcrProcessor abstracts an OCR backend that turns a URL or raw file bytes
// into per-page markdown.
type OcrProcessor interface {
	// ProcessURL runs OCR over a fetchable URL pointing at a document or image.
	ProcessURL(ctx context.Context, url string) (*domain.OcrResult, error)

	// ProcessFile uploads raw bytes to the backend, OCRs them via a transient
	// signed URL, and cleans up the uploaded artifact afterwards.
	ProcessFile(ctx context.Context, file FileInput) (*domain.OcrResult, error)
}
