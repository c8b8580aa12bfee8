package api

import (
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig holds settings for the API router.
// Passed from main.go so the router can configure CORS and limits from env vars.
type RouterConfig struct {
	// CorsAllowedOrigins is a comma-separated list of allowed origins.
	// If empty, defaults to "*" (development mode).
	CorsAllowedOrigins string

	// MaxUploadBytes caps the conversation request body size.
	MaxUploadBytes int64

	// MaxConcurrentConversations caps in-flight conversation requests.
	MaxConcurrentConversations int64
}

func NewRouter(h *Handler, cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (applied to all routes including health checks)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// CORS: restrict origins when configured, otherwise allow all (dev mode)
	allowedOrigins := []string{"*"}
	if cfg.CorsAllowedOrigins != "" {
		origins := strings.Split(cfg.CorsAllowedOrigins, ",")
		trimmed := make([]string, 0, len(origins))
		for _, o := range origins {
			if s := strings.TrimSpace(o); s != "" {
				trimmed = append(trimmed, s)
			}
		}
		if len(trimmed) > 0 {
			allowedOrigins = trimmed
		}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           86400, // Cache preflight responses for 24 hours
	}))

	// Health checks — always available, even with no credentials configured.
	// Both the bare and /api-prefixed forms exist because deployed front-ends
	// were written against each at different times.
	r.Get("/", h.Root)
	r.Get("/test", h.Test)
	r.Get("/api/test", h.Test)

	// Conversation endpoints — body size and concurrency limited
	r.Group(func(r chi.Router) {
		r.Use(BodyLimit(cfg.MaxUploadBytes))
		r.Use(ConcurrencyLimit(cfg.MaxConcurrentConversations))
		r.Post("/conversation", h.Conversation)
		r.Post("/api/conversation", h.Conversation)
	})

	return r
}
