package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"refinery/internal/confidence"
	"refinery/internal/domain"
	"refinery/internal/port"
	"refinery/internal/service"
	"refinery/mocks"
)

type fixture struct {
	ocr        *mocks.MockOcrProcessor
	summarizer *mocks.MockSummarizer
	extractor  *mocks.MockStructuredProcessor
	storage    *mocks.MockObjectStorage
}

func newFixture() *fixture {
	return &fixture{
		ocr:        new(mocks.MockOcrProcessor),
		summarizer: new(mocks.MockSummarizer),
		extractor:  new(mocks.MockStructuredProcessor),
		storage:    new(mocks.MockObjectStorage),
	}
}

func (f *fixture) service() service.RefineService {
	return service.NewRefineService(f.ocr, f.summarizer, f.extractor, f.storage, confidence.NewCalculator(), 300)
}

func (f *fixture) serviceWithoutStorage() service.RefineService {
	return service.NewRefineService(f.ocr, f.summarizer, f.extractor, nil, confidence.NewCalculator(), 300)
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.ocr.AssertExpectations(t)
	f.summarizer.AssertExpectations(t)
	f.extractor.AssertExpectations(t)
	f.storage.AssertExpectations(t)
}

func testSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{"type": "string"},
		},
		"required": []any{"summary"},
	}
}

func singlePageResult(markdown string) *domain.OcrResult {
	return domain.NewOcrResult([]domain.PageResult{{PageNumber: 0, Markdown: markdown}})
}

func TestRefineURL_PlainPipeline(t *testing.T) {
	f := newFixture()
	ocrResult := singlePageResult("document body")

	f.ocr.On("ProcessURL", mock.Anything, "https://example.com/doc.pdf").Return(ocrResult, nil)
	f.summarizer.On("Summarize", mock.Anything, ocrResult.CombinedMarkdown).Return("the summary", nil)
	f.extractor.On("Process", mock.Anything, testSchema(), "the summary", (*domain.ContextPrompt)(nil)).
		Return(json.RawMessage(`{"summary":"the summary"}`), nil)

	got, err := f.service().RefineURL(context.Background(), service.RefineURLInput{
		URL:    "https://example.com/doc.pdf",
		Schema: testSchema(),
	})

	require.NoError(t, err)
	assert.Equal(t, "the summary", got.Summary)
	assert.JSONEq(t, `{"summary":"the summary"}`, string(got.Output))
	assert.Nil(t, got.Confidence)
	f.assertExpectations(t)
}

func TestRefineURL_WithConfidence(t *testing.T) {
	f := newFixture()
	ocrResult := singlePageResult("document body")
	schemaConf := 0.9

	f.ocr.On("ProcessURL", mock.Anything, "https://example.com/doc.pdf").Return(ocrResult, nil)
	f.summarizer.On("Summarize", mock.Anything, ocrResult.CombinedMarkdown).Return("sum", nil)
	f.extractor.On("ProcessWithConfidence", mock.Anything, testSchema(), "sum", (*domain.ContextPrompt)(nil)).
		Return(&domain.ExtractionResult{
			Output:                   json.RawMessage(`{"summary":"sum"}`),
			FieldScores:              map[string]float64{"summary": 0.8},
			SchemaMatchingConfidence: &schemaConf,
		}, nil)

	got, err := f.service().RefineURL(context.Background(), service.RefineURLInput{
		URL:            "https://example.com/doc.pdf",
		Schema:         testSchema(),
		WithConfidence: true,
	})

	require.NoError(t, err)
	require.NotNil(t, got.Confidence)

	// combined markdown is short, so ocr=0.3; summary ratio ~0.15 -> 0.9.
	assert.Equal(t, 0.3, *got.Confidence.Ocr)
	assert.Equal(t, 0.9, *got.Confidence.Summarization)
	assert.Equal(t, 0.9, *got.Confidence.SchemaMatching)
	// 0.3*0.3 + 0.9*0.2 + 0.9*0.5 = 0.72
	assert.Equal(t, 0.72, got.Confidence.Overall)
	assert.Equal(t, map[string]float64{"summary": 0.8}, got.Confidence.FieldScores)
	f.assertExpectations(t)
}

func TestRefineURL_ContextPromptOnlyWhenNonEmpty(t *testing.T) {
	f := newFixture()
	ocrResult := singlePageResult("document body")

	f.ocr.On("ProcessURL", mock.Anything, mock.Anything).Return(ocrResult, nil)
	f.summarizer.On("Summarize", mock.Anything, mock.Anything).Return("sum", nil)
	f.extractor.On("Process", mock.Anything, mock.Anything, "sum", mock.MatchedBy(func(p *domain.ContextPrompt) bool {
		return p != nil && p.Context == "it is a lease"
	})).Return(json.RawMessage(`{}`), nil)

	got, err := f.service().RefineURL(context.Background(), service.RefineURLInput{
		URL:     "https://example.com/doc.pdf",
		Schema:  testSchema(),
		Context: "it is a lease",
	})

	require.NoError(t, err)
	assert.Equal(t, "it is a lease", got.Context)
	f.assertExpectations(t)
}

func TestRefineURL_InvalidSchemaFailsBeforeBackends(t *testing.T) {
	f := newFixture()

	badSchema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "any"},
		},
	}

	_, err := f.service().RefineURL(context.Background(), service.RefineURLInput{
		URL:    "https://example.com/doc.pdf",
		Schema: badSchema,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSchemaValidation))
	f.ocr.AssertNotCalled(t, "ProcessURL", mock.Anything, mock.Anything)
	f.summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
}

func TestRefineURL_OcrFailurePropagates(t *testing.T) {
	f := newFixture()

	f.ocr.On("ProcessURL", mock.Anything, mock.Anything).
		Return(nil, domain.ErrUnsupportedContentType)

	_, err := f.service().RefineURL(context.Background(), service.RefineURLInput{
		URL:    "https://example.com/doc.bin",
		Schema: testSchema(),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedContentType))
	f.summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
}

func TestRefineURL_SummarizationFailurePropagates(t *testing.T) {
	f := newFixture()
	ocrResult := singlePageResult("document body")

	f.ocr.On("ProcessURL", mock.Anything, mock.Anything).Return(ocrResult, nil)
	f.summarizer.On("Summarize", mock.Anything, mock.Anything).
		Return("", domain.ErrBackendFailure)

	_, err := f.service().RefineURL(context.Background(), service.RefineURLInput{
		URL:    "https://example.com/doc.pdf",
		Schema: testSchema(),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBackendFailure))
	f.extractor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRefineUpload_UsesProcessFile(t *testing.T) {
	f := newFixture()
	ocrResult := singlePageResult("uploaded body")
	file := port.FileInput{Data: []byte("%PDF-1.4"), Filename: "doc.pdf", ContentType: "application/pdf"}

	f.ocr.On("ProcessFile", mock.Anything, file).Return(ocrResult, nil)
	f.summarizer.On("Summarize", mock.Anything, ocrResult.CombinedMarkdown).Return("sum", nil)
	f.extractor.On("Process", mock.Anything, mock.Anything, "sum", (*domain.ContextPrompt)(nil)).
		Return(json.RawMessage(`{}`), nil)

	_, err := f.service().RefineUpload(context.Background(), service.RefineUploadInput{
		File:   file,
		Schema: testSchema(),
	})

	require.NoError(t, err)
	f.assertExpectations(t)
}

func TestRefineS3_PresignsThenProcessesURL(t *testing.T) {
	f := newFixture()
	ocrResult := singlePageResult("s3 body")

	f.storage.On("GetPresignedURL", mock.Anything, "my-bucket", "reports/q3.pdf", int64(300)).
		Return("https://my-bucket.s3.amazonaws.com/reports/q3.pdf?sig=abc", nil)
	f.ocr.On("ProcessURL", mock.Anything, "https://my-bucket.s3.amazonaws.com/reports/q3.pdf?sig=abc").
		Return(ocrResult, nil)
	f.summarizer.On("Summarize", mock.Anything, mock.Anything).Return("sum", nil)
	f.extractor.On("Process", mock.Anything, mock.Anything, "sum", (*domain.ContextPrompt)(nil)).
		Return(json.RawMessage(`{}`), nil)

	_, err := f.service().RefineS3(context.Background(), service.RefineS3Input{
		Bucket: "my-bucket",
		Key:    "reports/q3.pdf",
		Schema: testSchema(),
	})

	require.NoError(t, err)
	f.assertExpectations(t)
}

func TestRefineS3_StorageNotConfigured(t *testing.T) {
	f := newFixture()

	_, err := f.serviceWithoutStorage().RefineS3(context.Background(), service.RefineS3Input{
		Bucket: "my-bucket",
		Key:    "reports/q3.pdf",
		Schema: testSchema(),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorageNotConfigured))
	f.ocr.AssertNotCalled(t, "ProcessURL", mock.Anything, mock.Anything)
}

func TestRefineS3_PresignFailurePropagates(t *testing.T) {
	f := newFixture()

	f.storage.On("GetPresignedURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("presign exploded"))

	_, err := f.service().RefineS3(context.Background(), service.RefineS3Input{
		Bucket: "b", Key: "k", Schema: testSchema(),
	})

	require.Error(t, err)
	f.ocr.AssertNotCalled(t, "ProcessURL", mock.Anything, mock.Anything)
}
