package domain

import "errors"

var (
	ErrUnsupportedContentType = errors.New("input cannot be classified as a supported document or image")
	ErrSchemaValidation       = errors.New("json schema failed draft-7 validation")
	ErrInvalidRequest         = errors.New("backend rejected the request")
	ErrBackendFailure         = errors.New("backend call failed")
	ErrStorageNotConfigured   = errors.New("object storage is not configured")
)
