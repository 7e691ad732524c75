package domain

import (
	"net/url"
	"path"
	"strings"
)

// DocumentKind distinguishes how a locator is sent to the OCR backend.
type DocumentKind string

const (
	KindDocument DocumentKind = "document"
	KindImage    DocumentKind = "image"
)

// SupportedDocumentContentTypes maps document MIME types to their kind.
var SupportedDocumentContentTypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   true,
	"application/vnd.oasis.opendocument.text":                                   true,
}

// SupportedImageContentTypes maps image MIME types to their kind.
var SupportedImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/avif": true,
}

// extensionContentTypes maps file extensions (without dot) to MIME content types.
var extensionContentTypes = map[string]string{
	"pdf":  "application/pdf",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"odt":  "application/vnd.oasis.opendocument.text",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"avif": "image/avif",
}

// ClassifyContentType maps a MIME content type onto a DocumentKind.
func ClassifyContentType(contentType string) (DocumentKind, bool) {
	// Strip parameters such as "; charset=utf-8".
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))

	if SupportedDocumentContentTypes[contentType] {
		return KindDocument, true
	}
	if SupportedImageContentTypes[contentType] {
		return KindImage, true
	}
	return "", false
}

// ClassifyURL guesses the content type of a URL from its path extension and
// maps it onto a DocumentKind. Query strings are ignored.
func ClassifyURL(rawURL string) (DocumentKind, bool) {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
	contentType, ok := extensionContentTypes[ext]
	if !ok {
		return "", false
	}
	return ClassifyContentType(contentType)
}
