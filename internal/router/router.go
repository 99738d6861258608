package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"mikulas-chat/internal/handlers"
	"mikulas-chat/internal/middleware"
	"mikulas-chat/internal/telemetry"
)

func base(logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// Health check
	r.Get("/", handlers.Health)

	return r
}

// NewAPI builds the chat endpoint router.
func NewAPI(logger zerolog.Logger, chatHandler *handlers.ChatHandler, allowedOrigins []string) http.Handler {
	r := base(logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
			ExposedHeaders: []string{middleware.RequestIDHeader},
			MaxAge:         300,
		}))
		r.Post("/chat", chatHandler.Chat)
	})

	return telemetry.Handler(r, "chat-api")
}

// NewProxy builds the same-origin proxy router.
func NewProxy(logger zerolog.Logger, proxyHandler *handlers.ProxyHandler) http.Handler {
	r := base(logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", proxyHandler.Chat)
	})

	return telemetry.Handler(r, "chat-proxy")
}
