package handlers

import (
	"context"
	"encoding/json"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/api"
	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/domain"
	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/service"
)

type QuerySearcher interface {
	Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievedQuote, error)
	Generate(ctx context.Context, query string, quotes []domain.RetrievedQuote) iter.Seq2[string, error]
}

type SearchHandler struct {
	svc    QuerySearcher
	logger *slog.Logger
}

func NewSearchHandler(svc QuerySearcher, logger *slog.Logger) *SearchHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchHandler{svc: svc, logger: logger.With("component", "search")}
}

type SearchRequest struct {
	Query string `json:"query"`
	K     *int   `json:"k,omitempty"`
}

type SearchResponse struct {
	Episodes []string                `json:"episodes"`
	Quotes   []domain.RetrievedQuote `json:"quotes"`
	Answer   string                  `json:"answer"`
}

// Search retrieves the nearest quotes and answers the query. With
// ?stream=true the answer is written as plain text while it is generated.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	k := service.DefaultResultCount
	if req.K != nil {
		k = *req.K
	}

	quotes, err := h.svc.Retrieve(r.Context(), req.Query, k)
	if err != nil {
		h.logger.Warn("search failed", "error", err)
		api.HandleError(w, err)
		return
	}
	episodes := domain.EpisodeTitles(quotes)

	if stream, _ := strconv.ParseBool(r.URL.Query().Get("stream")); stream {
		h.stream(w, r, req.Query, episodes, quotes)
		return
	}

	var answer strings.Builder
	for fragment, err := range h.svc.Generate(r.Context(), req.Query, quotes) {
		if err != nil {
			h.logger.Warn("answer generation failed", "error", err)
			api.HandleError(w, err)
			return
		}
		answer.WriteString(fragment)
	}

	api.Success(w, http.StatusOK, SearchResponse{
		Episodes: episodes,
		Quotes:   quotes,
		Answer:   answer.String(),
	})
}

func (h *SearchHandler) stream(w http.ResponseWriter, r *http.Request, query string, episodes []string, quotes []domain.RetrievedQuote) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	if err := service.WriteEpisodes(w, query, episodes); err != nil {
		return
	}
	if flusher != nil {
		flusher.Flush()
	}

	// Headers are gone by now, so a failure can only end the stream.
	for fragment, err := range h.svc.Generate(r.Context(), query, quotes) {
		if err != nil {
			h.logger.Warn("answer stream failed", "error", err)
			return
		}
		if _, err := io.WriteString(w, fragment); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}
