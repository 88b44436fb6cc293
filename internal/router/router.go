package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"chatbot-backend/internal/handlers"
	"chatbot-backend/internal/middleware"
	"chatbot-backend/web"
)

func New(messageHandler *handlers.MessageHandler, frontendURL string) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// ──── Chat Routes ────
	r.Get("/messages", messageHandler.GetMessages)
	r.Post("/send", messageHandler.Send)

	// ──── Embedded Chat UI ────
	r.Handle("/*", web.Handler())

	return r
}
