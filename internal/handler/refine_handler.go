package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"refinery/internal/domain"
	"refinery/internal/port"
	"refinery/internal/service"
	"refinery/internal/validator"
)

// RefineHandler handles document refinement endpoints.
type RefineHandler struct {
	refineService service.RefineService
}

// NewRefineHandler creates a new RefineHandler.
func NewRefineHandler(refineService service.RefineService) *RefineHandler {
	return &RefineHandler{refineService: refineService}
}

// RefineURLRequest is the body for POST /refine/url.
type RefineURLRequest struct {
	URL            string         `json:"url" binding:"required"`
	JSONSchema     map[string]any `json:"json_schema" binding:"required"`
	Context        string         `json:"context"`
	WithConfidence bool           `json:"with_confidence"`
}

// RefineS3Request is the body for POST /refine/s3.
type RefineS3Request struct {
	Bucket         string         `json:"bucket" binding:"required"`
	Key            string         `json:"key" binding:"required"`
	JSONSchema     map[string]any `json:"json_schema" binding:"required"`
	Context        string         `json:"context"`
	WithConfidence bool           `json:"with_confidence"`
}

// RefinedURLResponse carries a refinement result for a URL source.
type RefinedURLResponse struct {
	URL string `json:"url"`
	domain.Refinement
}

// RefinedUploadResponse carries a refinement result for an uploaded file.
type RefinedUploadResponse struct {
	Filename string `json:"filename"`
	domain.Refinement
}

// RefinedS3Response carries a refinement result for an object-store source.
type RefinedS3Response struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	domain.Refinement
}

// RefineURL handles POST /refine/url
// @Summary Refine a URL
// @Description Refine a publicly accessible remote URL into a schema-conforming object
// @Tags refine
// @Accept json
// @Produce json
// @Param request body RefineURLRequest true "URL, draft-7 JSON schema, optional context"
// @Success 200 {object} RefinedURLResponse
// @Failure 400 {object} APIError "Unsupported content type, invalid schema, or backend rejection"
// @Failure 502 {object} APIError "Backend failure"
// @Router /refine/url [post]
func (h *RefineHandler) RefineURL(c *gin.Context) {
	var req RefineURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	refinement, err := h.refineService.RefineURL(c.Request.Context(), service.RefineURLInput{
		URL:            req.URL,
		Schema:         req.JSONSchema,
		Context:        req.Context,
		WithConfidence: req.WithConfidence,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, RefinedURLResponse{URL: req.URL, Refinement: *refinement})
}

// RefineUpload handles POST /refine/upload
// @Summary Refine an uploaded file
// @Description Refine an uploaded document or image into a schema-conforming object
// @Tags refine
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document or image to refine"
// @Param json_schema formData string true "Draft-7 JSON schema for the structured output"
// @Param context formData string false "Optional extraction context"
// @Param with_confidence formData bool false "Include confidence scores"
// @Success 200 {object} RefinedUploadResponse
// @Failure 400 {object} APIError
// @Failure 502 {object} APIError
// @Router /refine/upload [post]
func (h *RefineHandler) RefineUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	schemaField := c.PostForm("json_schema")
	if schemaField == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_SCHEMA", "json_schema field is required")
		return
	}
	schema, err := validator.CheckDraft7String(schemaField)
	if err != nil {
		HandleError(c, err)
		return
	}

	withConfidence, _ := strconv.ParseBool(c.PostForm("with_confidence"))

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return
	}

	refinement, err := h.refineService.RefineUpload(c.Request.Context(), service.RefineUploadInput{
		File: port.FileInput{
			Data:        data,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
		},
		Schema:         schema,
		Context:        c.PostForm("context"),
		WithConfidence: withConfidence,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, RefinedUploadResponse{Filename: header.Filename, Refinement: *refinement})
}

// RefineS3 handles POST /refine/s3
// @Summary Refine an S3 object
// @Description Refine an object-store object via a short-lived presigned URL
// @Tags refine
// @Accept json
// @Produce json
// @Param request body RefineS3Request true "Bucket, key, draft-7 JSON schema, optional context"
// @Success 200 {object} RefinedS3Response
// @Failure 400 {object} APIError
// @Failure 500 {object} APIError "Object storage not configured"
// @Failure 502 {object} APIError
// @Router /refine/s3 [post]
func (h *RefineHandler) RefineS3(c *gin.Context) {
	var req RefineS3Request
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	refinement, err := h.refineService.RefineS3(c.Request.Context(), service.RefineS3Input{
		Bucket:         req.Bucket,
		Key:            req.Key,
		Schema:         req.JSONSchema,
		Context:        req.Context,
		WithConfidence: req.WithConfidence,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, RefinedS3Response{Bucket: req.Bucket, Key: req.Key, Refinement: *refinement})
}
