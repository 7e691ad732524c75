package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"refinery/internal/domain"
)

func TestNewOcrResult_CombinedMarkdown(t *testing.T) {
	result := domain.NewOcrResult([]domain.PageResult{
		{PageNumber: 1, Markdown: "A"},
		{PageNumber: 2, Markdown: "B"},
	})

	assert.Equal(t, "Page 1:\nA\n\n\\pagebreak\n\nPage 2:\nB", result.CombinedMarkdown)
}

func TestNewOcrResult_Empty(t *testing.T) {
	result := domain.NewOcrResult(nil)
	assert.Empty(t, result.CombinedMarkdown)
	assert.Empty(t, result.Pages)
}

func TestNewOcrResult_SinglePage(t *testing.T) {
	result := domain.NewOcrResult([]domain.PageResult{{PageNumber: 0, Markdown: "only"}})
	assert.Equal(t, "Page 0:\nonly", result.CombinedMarkdown)
}

func TestContextPrompt_Render(t *testing.T) {
	p := domain.NewContextPrompt("invoices are in EUR")
	assert.Equal(t, "Here is some context that may be relevant to the text you are given:\n\ninvoices are in EUR", p.Render())
}

func TestContextPrompt_Render_Empty(t *testing.T) {
	assert.Empty(t, domain.NewContextPrompt("").Render())

	var p *domain.ContextPrompt
	assert.Empty(t, p.Render())
}

func TestClassifyURL(t *testing.T) {
	tests := []struct {
		url  string
		kind domain.DocumentKind
		ok   bool
	}{
		{"https://example.com/report.pdf", domain.KindDocument, true},
		{"https://example.com/deck.pptx", domain.KindDocument, true},
		{"https://example.com/letter.docx", domain.KindDocument, true},
		{"https://example.com/notes.odt", domain.KindDocument, true},
		{"https://example.com/scan.jpg", domain.KindImage, true},
		{"https://example.com/scan.jpeg", domain.KindImage, true},
		{"https://example.com/scan.PNG", domain.KindImage, true},
		{"https://example.com/scan.webp?sig=abc123", domain.KindImage, true},
		{"https://example.com/archive.zip", "", false},
		{"https://example.com/page", "", false},
	}

	for _, tt := range tests {
		kind, ok := domain.ClassifyURL(tt.url)
		assert.Equal(t, tt.ok, ok, tt.url)
		assert.Equal(t, tt.kind, kind, tt.url)
	}
}

func TestClassifyContentType(t *testing.T) {
	kind, ok := domain.ClassifyContentType("application/pdf")
	assert.True(t, ok)
	assert.Equal(t, domain.KindDocument, kind)

	kind, ok = domain.ClassifyContentType("image/png; charset=binary")
	assert.True(t, ok)
	assert.Equal(t, domain.KindImage, kind)

	_, ok = domain.ClassifyContentType("text/html")
	assert.False(t, ok)
}
