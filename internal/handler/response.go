package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"refinery/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedContentType):
		return http.StatusBadRequest, "UNSUPPORTED_CONTENT_TYPE", "input cannot be classified as a supported document or image"
	case errors.Is(err, domain.ErrSchemaValidation):
		return http.StatusBadRequest, "INVALID_JSON_SCHEMA", err.Error()
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, "BACKEND_REJECTED_REQUEST", err.Error()
	case errors.Is(err, domain.ErrStorageNotConfigured):
		return http.StatusInternalServerError, "S3_NOT_CONFIGURED", "object storage is not configured"
	case errors.Is(err, domain.ErrBackendFailure):
		return http.StatusBadGateway, "BACKEND_FAILURE", "a processing backend failed"
	default:
		return http.StatusInternalServerError, "INTERNAL", "internal server error"
	}
}

// HandleError maps err onto an HTTP error response and logs server-side faults.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
	}
	RespondError(c, status, code, msg)
}
