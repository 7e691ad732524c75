// Package mistral implements the OCR capability against the Mistral OCR API.
package mistral

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"refinery/internal/config"
	"refinery/internal/domain"
	"refinery/internal/port"
	"refinery/internal/processor"
)

const providerName = "mistral"

// Processor implements port.OcrProcessor using the Mistral OCR API.
type Processor struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewProcessor creates a Mistral OCR processor from config.
func NewProcessor(cfg *config.OCRConfig) *Processor {
	return newProcessor(cfg, cfg.Endpoint)
}

// NewProcessorWithEndpoint creates a processor pointing at a custom API endpoint (for testing).
func NewProcessorWithEndpoint(cfg *config.OCRConfig, endpoint string) *Processor {
	return newProcessor(cfg, endpoint)
}

func newProcessor(cfg *config.OCRConfig, endpoint string) *Processor {
	model := cfg.Model
	if model == "" {
		model = "mistral-ocr-latest"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Processor{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// ocrResponse models the Mistral OCR API response.
type ocrResponse struct {
	Pages []struct {
		Index    int    `json:"index"`
		Markdown string `json:"markdown"`
	} `json:"pages"`
}

// ProcessURL runs OCR over a fetchable URL. The URL's path extension decides
// whether it is sent as a document or an image; both come back in the same
// page shape.
func (p *Processor) ProcessURL(ctx context.Context, url string) (*domain.OcrResult, error) {
	kind, ok := domain.ClassifyURL(url)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedContentType, url)
	}
	return p.processURL(ctx, url, kind)
}

func (p *Processor) processURL(ctx context.Context, url string, kind domain.DocumentKind) (*domain.OcrResult, error) {
	var document map[string]any
	switch kind {
	case domain.KindDocument:
		document = map[string]any{"type": "document_url", "document_url": url}
	case domain.KindImage:
		document = map[string]any{"type": "image_url", "image_url": url}
	}

	reqBody := map[string]any{
		"model":    p.model,
		"document": document,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+"/v1/ocr", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	respBody, err := p.do(req)
	if err != nil {
		return nil, err
	}

	var resp ocrResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling OCR response: %w", err)
	}

	pages := make([]domain.PageResult, 0, len(resp.Pages))
	for _, page := range resp.Pages {
		pages = append(pages, domain.PageResult{PageNumber: page.Index, Markdown: page.Markdown})
	}
	return domain.NewOcrResult(pages), nil
}

// ProcessFile uploads raw bytes to the backend, obtains a transient signed URL
// for the artifact, and runs OCR over that URL. The artifact's kind comes from
// the upload's declared content type (falling back to the filename extension)
// because the backend's signed URLs carry no extension. The uploaded artifact
// is deleted afterwards whether or not extraction succeeded; a failed delete
// is logged but never fails the call.
func (p *Processor) ProcessFile(ctx context.Context, file port.FileInput) (*domain.OcrResult, error) {
	kind, ok := domain.ClassifyContentType(file.ContentType)
	if !ok {
		if kind, ok = domain.ClassifyURL(file.Filename); !ok {
			return nil, fmt.Errorf("%w: %q (%s)", domain.ErrUnsupportedContentType, file.Filename, file.ContentType)
		}
	}

	fileID, err := p.uploadFile(ctx, file)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := p.deleteFile(context.WithoutCancel(ctx), fileID); err != nil {
			log.Printf("mistral: failed to delete uploaded file %s: %v", fileID, err)
		}
	}()

	signedURL, err := p.getSignedURL(ctx, fileID)
	if err != nil {
		return nil, err
	}

	return p.processURL(ctx, signedURL, kind)
}

func (p *Processor) uploadFile(ctx context.Context, file port.FileInput) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("purpose", "ocr"); err != nil {
		return "", fmt.Errorf("writing purpose field: %w", err)
	}
	part, err := writer.CreateFormFile("file", file.Filename)
	if err != nil {
		return "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return "", fmt.Errorf("writing file bytes: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("closing multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+"/v1/files", &buf)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	respBody, err := p.do(req)
	if err != nil {
		return "", err
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling upload response: %w", err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("%w: %s: upload response missing file id", domain.ErrBackendFailure, providerName)
	}
	return resp.ID, nil
}

func (p *Processor) getSignedURL(ctx context.Context, fileID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"/v1/files/"+fileID+"/url", nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	respBody, err := p.do(req)
	if err != nil {
		return "", err
	}

	var resp struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling signed URL response: %w", err)
	}
	if resp.URL == "" {
		return "", fmt.Errorf("%w: %s: signed URL response missing url", domain.ErrBackendFailure, providerName)
	}
	return resp.URL, nil
}

func (p *Processor) deleteFile(ctx context.Context, fileID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, p.endpoint+"/v1/files/"+fileID, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	_, err = p.do(req)
	return err
}

func (p *Processor) do(req *http.Request) ([]byte, error) {
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrBackendFailure, providerName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: reading response: %v", domain.ErrBackendFailure, providerName, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, processor.ClassifyStatus(providerName, resp.StatusCode, respBody)
	}
	return respBody, nil
}
