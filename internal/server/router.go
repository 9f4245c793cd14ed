package server

import (
	"log/slog"
	"net/http"

	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/api"
	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/api/handlers"
	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

type RouterConfig struct {
	Logger          *slog.Logger
	DocumentHandler *handlers.DocumentHandler
	SearchHandler   *handlers.SearchHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 5 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog(cfg.Logger))
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/documents", cfg.DocumentHandler.Create)
	r.Post("/search", cfg.SearchHandler.Search)

	return r
}
