package main

import (
	"fmt"
	"log"

	"refinery/internal/confidence"
	"refinery/internal/config"
	"refinery/internal/handler"
	"refinery/internal/port"
	"refinery/internal/processor/mistral"
	"refinery/internal/processor/openai"
	"refinery/internal/router"
	"refinery/internal/service"
	s3storage "refinery/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize storage. Object storage is optional; the S3 refinement
	// route fails fast when it is not configured.
	var storage port.ObjectStorage
	if cfg.S3.Configured() {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	} else {
		log.Printf("object storage not configured, /refine/s3 disabled")
	}

	// Initialize processors
	ocr := mistral.NewProcessor(&cfg.OCR)
	summarizer := openai.NewSummarizer(&cfg.LLM)
	extractor := openai.NewConfidenceProcessor(&cfg.LLM)

	// Initialize services
	refineSvc := service.NewRefineService(
		ocr,
		summarizer,
		extractor,
		storage,
		confidence.NewCalculator(),
		cfg.S3.PresignExpiry,
	)

	// Initialize handlers
	refineH := handler.NewRefineHandler(refineSvc)
	healthH := handler.NewHealthHandler(cfg)

	// Setup router
	r := router.Setup(refineH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
