package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"refinery/internal/config"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	cfg *config.Config
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.cfg.OCR.APIKey == "" || h.cfg.LLM.APIKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "backend credentials not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"s3_configured": h.cfg.S3.Configured(),
	})
}
