package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/api"
	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/service"
)

const defaultDocumentName = "upload.md"

type DocumentIngester interface {
	Ingest(ctx context.Context, name string, raw []byte) (*service.IngestResult, error)
}

type DocumentHandler struct {
	svc    DocumentIngester
	logger *slog.Logger
}

func NewDocumentHandler(svc DocumentIngester, logger *slog.Logger) *DocumentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentHandler{svc: svc, logger: logger.With("component", "documents")}
}

type DocumentResponse struct {
	Name   string `json:"name"`
	Title  string `json:"title"`
	Chunks int    `json:"chunks"`
}

// Create ingests the raw request body as one transcript document.
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		name = defaultDocumentName
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	if len(raw) == 0 {
		api.Error(w, http.StatusBadRequest, "request body is empty")
		return
	}

	result, err := h.svc.Ingest(r.Context(), name, raw)
	if err != nil {
		h.logger.Error("failed to ingest document", "file", name, "error", err)
		api.HandleError(w, err)
		return
	}

	h.logger.Info("ingested document", "file", name, "title", result.Title, "chunks", result.Chunks)
	api.Success(w, http.StatusCreated, DocumentResponse{
		Name:   result.Name,
		Title:  result.Title,
		Chunks: result.Chunks,
	})
}
