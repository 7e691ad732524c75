package service

import (
	"context"
	"fmt"
	"log"

	"refinery/internal/confidence"
	"refinery/internal/domain"
	"refinery/internal/port"
	"refinery/internal/validator"
)

// RefineURLInput carries a refinement request for a publicly fetchable URL.
type RefineURLInput struct {
	URL            string
	Schema         map[string]any
	Context        string
	WithConfidence bool
}

// RefineUploadInput carries a refinement request for an uploaded file.
type RefineUploadInput struct {
	File           port.FileInput
	Schema         map[string]any
	Context        string
	WithConfidence bool
}

// RefineS3Input carries a refinement request for an object-store object.
type RefineS3Input struct {
	Bucket         string
	Key            string
	Schema         map[string]any
	Context        string
	WithConfidence bool
}

/// RefineService orchestrates the refinement pipeline:
// resolve -> OCR -> summarize -> extract -> score confidence.
type RefineService interface {
	RefineURL(ctx context.Context, input RefineURLInput) (*domain.Refinement, error)
	RefineUpload(ctx context.Context, input RefineUploadInput) (*domain.Refinement, error)
	RefineS3(ctx context.Context, input RefineS3Input) (*domain.Refinement, error)
}

type refineService struct {
	ocr           port.OcrProcessor
	summarizer    port.Summarizer
	extractor     port.StructuredOutputWithConfidence
	storage       port.ObjectStorage // nil when object storage is not configured
	calc          *confidence.Calculator
	presignExpiry int64
}

// NewRefineService creates a RefineService. storage may be nil; the S3 route
// then fails fast with domain.ErrStorageNotConfigured.
func NewRefineService(
	ocr port.OcrProcessor,
	summarizer port.Summarizer,
	extractor port.StructuredOutputWithConfidence,
	storage port.ObjectStorage,
	calc *confidence.Calculator,
	presignExpiry int64,
) RefineService {
	if calc == nil {
		calc = confidence.NewCalculator()
	}
	if presignExpiry <= 0 {
		presignExpiry = 300
	}
	return &refineService{
		ocr:           ocr,
		summarizer:    summarizer,
		extractor:     extractor,
		storage:       storage,
		calc:          calc,
		presignExpiry: presignExpiry,
	}
}

func (s *refineService) RefineURL(ctx context.Context, input RefineURLInput) (*domain.Refinement, error) {
	if err := validator.CheckDraft7(input.Schema); err != nil {
		return nil, err
	}

	ocrResult, err := s.ocr.ProcessURL(ctx, input.URL)
	if err != nil {
		return nil, fmt.Errorf("ocr: %w", err)
	}

	return s.refine(ctx, ocrResult, input.Schema, input.Context, input.WithConfidence)
}

func (s *refineService) RefineUpload(ctx context.Context, input RefineUploadInput) (*domain.Refinement, error) {
	if err := validator.CheckDraft7(input.Schema); err != nil {
		return nil, err
	}

	ocrResult, err := s.ocr.ProcessFile(ctx, input.File)
	if err != nil {
		return nil, fmt.Errorf("ocr: %w", err)
	}

	return s.refine(ctx, ocrResult, input.Schema, input.Context, input.WithConfidence)
}

func (s *refineService) RefineS3(ctx context.Context, input RefineS3Input) (*domain.Refinement, error) {
	// Both fail-fast checks run before any backend call.
	if s.storage == nil {
		return nil, domain.ErrStorageNotConfigured
	}
	if err := validator.CheckDraft7(input.Schema); err != nil {
		return nil, err
	}

	presignedURL, err := s.storage.GetPresignedURL(ctx, input.Bucket, input.Key, s.presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presigning s3 object: %w", err)
	}

	ocrResult, err := s.ocr.ProcessURL(ctx, presignedURL)
	if err != nil {
		return nil, fmt.Errorf("ocr: %w", err)
	}

	return s.refine(ctx, ocrResult, input.Schema, input.Context, input.WithConfidence)
}

// refine runs the stages shared by all three sources: summarize the combined
// OCR markdown, extract against the caller schema, and optionally assemble
// confidence scores. Failures propagate; there are no partial results.
func (s *refineService) refine(ctx context.Context, ocrResult *domain.OcrResult, schema map[string]any, contextStr string, withConfidence bool) (*domain.Refinement, error) {
	summary, err := s.summarizer.Summarize(ctx, ocrResult.CombinedMarkdown)
	if err != nil {
		return nil, fmt.Errorf("summarization: %w", err)
	}

	var contextPrompt *domain.ContextPrompt
	if contextStr != "" {
		contextPrompt = domain.NewContextPrompt(contextStr)
	}

	refinement := &domain.Refinement{
		Schema:  schema,
		Summary: summary,
		Context: contextStr,
	}

	if !withConfidence {
		output, err := s.extractor.Process(ctx, schema, summary, contextPrompt)
		if err != nil {
			return nil, fmt.Errorf("structured extraction: %w", err)
		}
		refinement.Output = output
		return refinement, nil
	}

	extraction, err := s.extractor.ProcessWithConfidence(ctx, schema, summary, contextPrompt)
	if err != nil {
		return nil, fmt.Errorf("structured extraction: %w", err)
	}
	refinement.Output = extraction.Output

	ocrScore := s.calc.EstimateOcr(len(ocrResult.CombinedMarkdown), len(ocrResult.Pages))
	summaryScore := s.calc.EstimateSummarization(len(ocrResult.CombinedMarkdown), len(summary))
	overall := s.calc.Overall(&ocrScore, &summaryScore, extraction.SchemaMatchingConfidence)

	refinement.Confidence = &domain.ConfidenceScores{
		Overall:        overall,
		Ocr:            &ocrScore,
		Summarization:  &summaryScore,
		SchemaMatching: extraction.SchemaMatchingConfidence,
		FieldScores:    extraction.FieldScores,
	}

	log.Printf("refinement complete: pages=%d summary_chars=%d overall_confidence=%.3f",
		len(ocrResult.Pages), len(summary), overall)

	return refinement, nil
}
