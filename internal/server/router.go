package server

import (
	"net/http"

	"github.com/deskflow-ai/deskflow/internal/api"
	"github.com/deskflow-ai/deskflow/internal/api/handlers"
	"github.com/deskflow-ai/deskflow/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

type RouterConfig struct {
	ConversationHandler *handlers.ConversationHandler
	SimilarHandler      *handlers.SimilarHandler
	HistoricalHandler   *handlers.HistoricalHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 5 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/conversations", func(r chi.Router) {
		r.Post("/{id}/process", cfg.ConversationHandler.Process)
		r.Get("/{id}", cfg.ConversationHandler.Get)
		r.Get("/{id}/results", cfg.ConversationHandler.Results)
	})

	r.Post("/similar", cfg.SimilarHandler.Search)
	r.Get("/historical", cfg.HistoricalHandler.List)

	return r
}
