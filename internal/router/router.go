package router

import (
	"github.com/gin-gonic/gin"

	"refinery/internal/handler"
	"refinery/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	refineH *handler.RefineHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	refine := r.Group("/refine")
	refine.POST("/url", refineH.RefineURL)
	refine.POST("/upload", refineH.RefineUpload)
	refine.POST("/s3", refineH.RefineS3)

	return r
}
