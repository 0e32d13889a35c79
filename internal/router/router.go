package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"studyhub-backend/internal/handlers"
	"studyhub-backend/internal/middleware"
	"studyhub-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	sessionHandler *handlers.StudySessionHandler,
	doubtHandler *handlers.DoubtHandler,
	flashcardHandler *handlers.FlashcardHandler,
	summaryHandler *handlers.SummaryHandler,
	pdfHandler *handlers.PDFHandler,
	dashboardHandler *handlers.DashboardHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── Study Session Routes ────
		r.Route("/study-sessions", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", sessionHandler.Create)
			r.Get("/", sessionHandler.List)
			r.Put("/{id}", sessionHandler.Update)
			r.Post("/{id}/complete", sessionHandler.Complete)
			r.Delete("/{id}", sessionHandler.Delete)
			r.Post("/restore", sessionHandler.Restore)
		})

		// ──── Doubt Routes ────
		r.Route("/doubts", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", doubtHandler.Create)
			r.Get("/", doubtHandler.List)
			r.Get("/{id}", doubtHandler.Get)
			r.Post("/{id}/reply", doubtHandler.Reply)
			r.Post("/{id}/solve", doubtHandler.Solve)
		})

		// ──── Flashcard Routes ────
		r.Route("/flashcards", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/generate", flashcardHandler.Generate)

			r.Route("/decks", func(r chi.Router) {
				r.Post("/", flashcardHandler.CreateDeck)
				r.Get("/", flashcardHandler.ListDecks)
				r.Get("/{id}", flashcardHandler.GetDeck)
				r.Delete("/{id}", flashcardHandler.DeleteDeck)
				r.Post("/{id}/cards", flashcardHandler.AddCard)
			})

			r.Route("/cards", func(r chi.Router) {
				r.Put("/{cardID}", flashcardHandler.UpdateCard)
				r.Delete("/{cardID}", flashcardHandler.DeleteCard)
			})
		})

		// ──── Summary Routes ────
		r.Route("/summaries", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", summaryHandler.Summarize)
			r.Post("/extract", summaryHandler.Extract)
		})

		// ──── PDF Routes ────
		r.Route("/pdfs", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", pdfHandler.Create)
			r.Get("/", pdfHandler.List)
			r.Get("/{id}/download", pdfHandler.Download)
			r.Delete("/{id}", pdfHandler.Delete)
		})

		// ──── Dashboard Routes ────
		r.Route("/dashboard", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/stats", dashboardHandler.Stats)
			r.Get("/subject-progress", dashboardHandler.SubjectProgress)
			r.Get("/upcoming", dashboardHandler.Upcoming)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
