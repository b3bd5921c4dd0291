package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/krishnabalajiwork/farmai-assistant/internal/api"
	"github.com/krishnabalajiwork/farmai-assistant/internal/api/handlers"
	"github.com/krishnabalajiwork/farmai-assistant/internal/api/middleware"
)

type RouterConfig struct {
	APIKey        string
	AskHandler    *handlers.AskHandler
	StatusHandler *handlers.StatusHandler
	ChunksHandler *handlers.ChunksHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 64 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(cfg.APIKey))

		r.Post("/ask", cfg.AskHandler.Ask)
		r.Get("/status", cfg.StatusHandler.Status)
		if cfg.ChunksHandler != nil {
			r.Get("/chunks", cfg.ChunksHandler.List)
		}
	})

	return r
}
