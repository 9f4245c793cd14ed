package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/domain"
	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/frontmatter"
	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/telemetry"
)

// TranscriptionRepositoryInterface defines the repository interface for transcription persistence
type TranscriptionRepositoryInterface interface {
	Create(ctx context.Context, t *domain.Transcription) error
}

// QuoteRepositoryInterface defines the repository interface for quote persistence and search
type QuoteRepositoryInterface interface {
	CreateBatch(ctx context.Context, quotes []domain.Quote) error
	SearchNearest(ctx context.Context, embedding []float32, k int) ([]domain.RetrievedQuote, error)
}

// DocumentEmbedder turns a batch of texts into vectors, one per text, in order.
type DocumentEmbedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}

// ShowInfo is stamped into the metadata of every ingested transcription.
type ShowInfo struct {
	Show       string
	Network    string
	NetworkURL string
}

// IngestResult describes one successfully stored document.
type IngestResult struct {
	Name   string `json:"name"`
	Title  string `json:"title"`
	Chunks int    `json:"chunks"`
}

// IngestSummary counts the outcome of a multi-document run.
type IngestSummary struct {
	Ingested int
	Failed   int
}

// IngestService parses, chunks, embeds and stores transcripts.
type IngestService struct {
	txRunner TxRunner
	splitter Splitter
	embedder DocumentEmbedder
	show     ShowInfo
	out      io.Writer
	logger   *slog.Logger
}

func NewIngestService(
	txRunner TxRunner,
	splitter Splitter,
	embedder DocumentEmbedder,
	show ShowInfo,
	out io.Writer,
	logger *slog.Logger,
) *IngestService {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &IngestService{
		txRunner: txRunner,
		splitter: splitter,
		embedder: embedder,
		show:     show,
		out:      out,
		logger:   logger.With("component", "ingest"),
	}
}

// Parse reads the front-matter of raw and builds the transcription to store.
func (s *IngestService) Parse(raw []byte) (*domain.Transcription, error) {
	post, err := frontmatter.Parse(raw)
	if err != nil {
		return nil, err
	}
	if err := post.Validate(); err != nil {
		return nil, err
	}

	pubDate, err := frontmatter.ParsePubDate(post.PubDate)
	if err != nil {
		return nil, err
	}

	t := domain.NewTranscription(post.Title, post.Content, domain.Metadata{
		Title:       post.Title,
		Show:        s.show.Show,
		Network:     s.show.Network,
		NetworkURL:  s.show.NetworkURL,
		Description: post.Description,
		URL:         post.URL,
		PubDate:     pubDate,
	})
	if err := domain.ValidateTranscription(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Ingest stores one document and its quotes in a single transaction.
// name is only used for reporting.
func (s *IngestService) Ingest(ctx context.Context, name string, raw []byte) (*IngestResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "IngestService.Ingest", telemetry.SpanAttributes{
		Source:    name,
		Operation: "ingest",
	})
	defer span.End()

	t, err := s.Parse(raw)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	result := &IngestResult{Name: name, Title: t.Title}
	err = s.txRunner.WithTx(ctx, func(repos TxRepositories) error {
		if err := repos.Transcriptions().Create(ctx, t); err != nil {
			return err
		}

		chunks, err := s.splitter.SplitText(t.Content)
		if err != nil {
			return fmt.Errorf("failed to split %q: %w", t.Title, err)
		}

		embeddings, err := s.embedder.EmbedDocuments(ctx, chunks)
		if err != nil {
			return err
		}

		fmt.Fprintf(s.out, "%s - %d chunks\n", name, len(chunks))

		quotes, err := domain.NewQuotes(t.Title, chunks, embeddings)
		if err != nil {
			return err
		}
		if err := repos.Quotes().CreateBatch(ctx, quotes); err != nil {
			return err
		}

		result.Chunks = len(quotes)
		return nil
	})
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	telemetry.AddBreadcrumb(ctx, "ingest", fmt.Sprintf("stored %q with %d chunks", t.Title, result.Chunks))
	return result, nil
}

// IngestAll ingests every document the sequence yields, each in its own
// transaction. A failing document is logged and skipped; only context
// cancellation stops the run early.
func (s *IngestService) IngestAll(ctx context.Context, docs iter.Seq2[domain.Document, error]) IngestSummary {
	var summary IngestSummary
	for doc, err := range docs {
		if ctxErr := ctx.Err(); ctxErr != nil {
			s.logger.Warn("ingestion cancelled", "error", ctxErr)
			break
		}
		if err == nil {
			_, err = s.Ingest(ctx, doc.Name, doc.Content)
		}
		if err != nil {
			summary.Failed++
			s.logError(doc.Name, err)
			continue
		}
		summary.Ingested++
	}
	return summary
}

func (s *IngestService) logError(name string, err error) {
	var de *domain.DomainError
	if errors.As(err, &de) {
		s.logger.Error("failed to ingest document", "file", name, "code", de.Code, "error", err)
		return
	}
	s.logger.Error("failed to ingest document", "file", name, "error", err)
}
