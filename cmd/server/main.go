package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eduaid-backend/internal/config"
	"eduaid-backend/internal/handlers"
	"eduaid-backend/internal/router"
	"eduaid-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting EduAid Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Generation Backends ────
	// Each backend is optional. A failed initialization is logged and its
	// endpoints degrade to 503 instead of taking the whole server down.
	var (
		mcqGen     handlers.MCQGenerator
		boolqGen   handlers.BoolQGenerator
		shortqGen  handlers.ShortQGenerator
		styledGen  handlers.StyledGenerator
		hardener   handlers.QuestionHardener
		qaBackend  handlers.QuestionAnswerer
		boolAnswer handlers.BooleanPredictor
	)

	geminiService, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiConcurrentReqs)
	if err != nil {
		log.Printf("✗ Gemini client unavailable: %v", err)
	} else {
		defer geminiService.Close()
		mcqGen = geminiService
		boolqGen = geminiService
		shortqGen = geminiService
		styledGen = geminiService
		hardener = geminiService
		qaBackend = geminiService
		boolAnswer = geminiService
		log.Println("✓ Gemini Flash client initialized")
	}

	// ──── Step 3: Initialize Google Workspace Clients ────
	var formCreator handlers.FormCreator
	formService, err := services.NewFormService(context.Background(), cfg.GoogleCredentialsFile)
	if err != nil {
		log.Printf("✗ Google Forms client unavailable: %v", err)
	} else {
		formCreator = formService
		log.Println("✓ Google Forms client initialized")
	}

	var docFetcher handlers.DocumentFetcher
	docsService, err := services.NewDocsService(context.Background(), cfg.GoogleCredentialsFile)
	if err != nil {
		log.Printf("✗ Google Docs client unavailable: %v", err)
	} else {
		docFetcher = docsService
		log.Println("✓ Google Docs client initialized")
	}

	// ──── Step 4: Initialize Always-On Services ────
	wikiService := services.NewWikipediaService()
	transcriptService := services.NewTranscriptService(cfg.YtDlpPath, cfg.SubtitlesDir)
	fileProcessor := services.NewFileProcessor()

	// ──── Step 5: Initialize Handlers ────
	generateHandler := handlers.NewGenerateHandler(mcqGen, boolqGen, shortqGen, styledGen, hardener, wikiService)
	answerHandler := handlers.NewAnswerHandler(qaBackend, boolAnswer)
	formHandler := handlers.NewFormHandler(formCreator)
	contentHandler := handlers.NewContentHandler(docFetcher, fileProcessor)
	transcriptHandler := handlers.NewTranscriptHandler(transcriptService)
	healthHandler := handlers.NewHealthHandler()

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		generateHandler,
		answerHandler,
		formHandler,
		contentHandler,
		transcriptHandler,
		healthHandler,
		cfg.AllowedOrigins,
		cfg.GenerationRateLimit,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
		// Generation calls can take a while; keep the write timeout generous.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ EduAid Backend ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
