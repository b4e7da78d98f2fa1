package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"eduaid-backend/internal/handlers"
	"eduaid-backend/internal/middleware"
)

func New(
	generateHandler *handlers.GenerateHandler,
	answerHandler *handlers.AnswerHandler,
	formHandler *handlers.FormHandler,
	contentHandler *handlers.ContentHandler,
	transcriptHandler *handlers.TranscriptHandler,
	healthHandler *handlers.HealthHandler,
	allowedOrigins []string,
	generationRateLimit int,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         3600,
	}))

	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Health)

	// Generation limiter guards the endpoints that fan out to model calls.
	generationLimiter := middleware.NewRateLimiter(generationRateLimit, time.Minute)

	// ──── Question Generation ────
	r.Group(func(r chi.Router) {
		r.Use(generationLimiter.Middleware)
		r.Post("/get_mcq", generateHandler.GetMCQ)
		r.Post("/get_boolq", generateHandler.GetBoolQ)
		r.Post("/get_shortq", generateHandler.GetShortQ)
		r.Post("/get_problems", generateHandler.GetProblems)
		r.Post("/get_shortq_hard", generateHandler.GetShortQHard)
		r.Post("/get_mcq_hard", generateHandler.GetMCQHard)
		r.Post("/get_boolq_hard", generateHandler.GetBoolQHard)
	})

	// ──── Answer Prediction ────
	r.Post("/get_mcq_answer", answerHandler.GetMCQAnswer)
	r.Post("/get_shortq_answer", answerHandler.GetShortQAnswer)
	r.Post("/get_boolean_answer", answerHandler.GetBooleanAnswer)

	// ──── Export & Ingestion ────
	r.Post("/generate_gform", formHandler.GenerateGForm)
	r.Post("/get_content", contentHandler.GetContent)
	r.Post("/upload", contentHandler.Upload)
	r.Get("/getTranscript", transcriptHandler.GetTranscript)

	return r
}
