package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"honeytrap-lab/internal/api/handlers"
	"honeytrap-lab/internal/api/middleware"
	"honeytrap-lab/internal/config"
	"honeytrap-lab/internal/infrastructure/cache"
	"honeytrap-lab/pkg/logger"
)

// Setup builds the HTTP router with all middleware and routes.
func Setup(cfg *config.Config, h *handlers.Handlers, redisCache *cache.RedisCache, log *logger.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: cfg.CORS.AllowedMethods,
		AllowedHeaders: cfg.CORS.AllowedHeaders,
		MaxAge:         cfg.CORS.MaxAge,
	}))

	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimiter(redisCache, cfg.RateLimit.Requests, cfg.RateLimit.Window, log))
	}

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Route("/api/v1", func(r chi.Router) {
		// Aggregate counters carry no session content, so stats stays
		// open alongside the health probes.
		r.Get("/stats", h.Stats)

		r.Group(func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(cfg.Auth.APIKey))

			r.Post("/analyze", h.Analyze)
			r.Get("/sessions/{id}", h.GetSession)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminAuth(cfg.Auth.AdminToken))
				r.Delete("/sessions/{id}", h.DeleteSession)
			})
		})
	})

	return r
}
