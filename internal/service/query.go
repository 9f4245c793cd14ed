package service

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/domain"
	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/telemetry"
)

// DefaultResultCount is how many quotes a search retrieves when not told otherwise.
const DefaultResultCount = 3

// EpisodesSeparator closes the episode list printed before an answer.
const EpisodesSeparator = "-------------------"

// QueryEmbedder embeds a single search query.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Generator streams a model response to a prompt.
type Generator interface {
	Stream(ctx context.Context, prompt string) iter.Seq2[string, error]
}

// QuoteSearchRepository is the read side of quote storage
type QuoteSearchRepository interface {
	SearchNearest(ctx context.Context, embedding []float32, k int) ([]domain.RetrievedQuote, error)
}

// QueryService answers questions from the stored quotes.
type QueryService struct {
	quotes    QuoteSearchRepository
	embedder  QueryEmbedder
	generator Generator
	prompt    *PromptBuilder
	logger    *slog.Logger
}

func NewQueryService(quotes QuoteSearchRepository, embedder QueryEmbedder, generator Generator, logger *slog.Logger) *QueryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryService{
		quotes:    quotes,
		embedder:  embedder,
		generator: generator,
		prompt:    NewPromptBuilder(),
		logger:    logger.With("component", "query"),
	}
}

// Retrieve returns up to k quotes nearest to the query, closest first.
func (s *QueryService) Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievedQuote, error) {
	ctx, span := telemetry.StartSpan(ctx, "QueryService.Retrieve", telemetry.SpanAttributes{
		Operation:   "retrieve",
		ResultCount: k,
	})
	defer span.End()

	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}
	if k < 1 {
		return nil, domain.ErrInvalidResultCount
	}

	embedding, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	quotes, err := s.quotes.SearchNearest(ctx, embedding, k)
	if err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("failed to search quotes: %w", err)
	}

	s.logger.Debug("retrieved quotes", "count", len(quotes), "k", k)
	return quotes, nil
}

// Generate renders the answer prompt and streams the model's response.
func (s *QueryService) Generate(ctx context.Context, query string, quotes []domain.RetrievedQuote) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		ctx, span := telemetry.StartSpan(ctx, "QueryService.Generate", telemetry.SpanAttributes{
			Operation:   "generate",
			ResultCount: len(quotes),
		})
		defer span.End()

		prompt, err := s.prompt.Build(query, quotes)
		if err != nil {
			span.SetError(err)
			yield("", fmt.Errorf("failed to render prompt: %w", err))
			return
		}

		for fragment, err := range s.generator.Stream(ctx, prompt) {
			if err != nil {
				span.SetError(err)
				yield("", err)
				return
			}
			if !yield(fragment, nil) {
				return
			}
		}
	}
}

// Ask retrieves quotes for query, writes the matching episode titles and
// then the streamed answer to w.
func (s *QueryService) Ask(ctx context.Context, w io.Writer, query string, k int) error {
	quotes, err := s.Retrieve(ctx, query, k)
	if err != nil {
		return err
	}

	if err := WriteEpisodes(w, query, domain.EpisodeTitles(quotes)); err != nil {
		return err
	}

	for fragment, err := range s.Generate(ctx, query, quotes) {
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, fragment); err != nil {
			return err
		}
		if f, ok := w.(interface{ Flush() }); ok {
			f.Flush()
		}
	}
	return nil
}

// WriteEpisodes prints the header, one title per line, and the separator.
func WriteEpisodes(w io.Writer, query string, titles []string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Here are some episodes that might help you with \"%s\":\n", query)
	for _, title := range titles {
		b.WriteString(title)
		b.WriteByte('\n')
	}
	b.WriteString(EpisodesSeparator)
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}
