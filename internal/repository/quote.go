package repository

import (
	"context"
	"fmt"

	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// QuoteRepository handles persistence and nearest-neighbor search of quotes.
type QuoteRepository struct {
	db dbtx
}

func NewQuoteRepository(pool *pgxpool.Pool) *QuoteRepository {
	return &QuoteRepository{db: pool}
}

func NewQuoteRepositoryWithTx(tx pgx.Tx) *QuoteRepository {
	return &QuoteRepository{db: tx}
}

// CreateBatch inserts all quotes in a single round trip.
func (r *QuoteRepository) CreateBatch(ctx context.Context, quotes []domain.Quote) error {
	if len(quotes) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, q := range quotes {
		batch.Queue(
			`INSERT INTO quotes (content, embedding, transcription_title) VALUES ($1, $2, $3)`,
			q.Content, pgvector.NewVector(q.Embedding), q.TranscriptionTitle,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	for i := range quotes {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to insert quote %d: %w", i, err)
		}
	}
	return br.Close()
}

// SearchNearest returns up to k quotes ordered by ascending L2 distance to embedding.
func (r *QuoteRepository) SearchNearest(ctx context.Context, embedding []float32, k int) ([]domain.RetrievedQuote, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, content, transcription_title, embedding <-> $1 AS distance
		 FROM quotes
		 ORDER BY embedding <-> $1
		 LIMIT $2`,
		pgvector.NewVector(embedding), k,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, pgx.RowToStructByName[domain.RetrievedQuote])
}

func (r *QuoteRepository) CountByTranscription(ctx context.Context, title string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM quotes WHERE transcription_title = $1`,
		title,
	).Scan(&count)
	return count, err
}

// ListByTranscription returns a transcription's quotes in insertion order.
func (r *QuoteRepository) ListByTranscription(ctx context.Context, title string) ([]domain.Quote, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, content, transcription_title FROM quotes
		 WHERE transcription_title = $1 ORDER BY id`,
		title,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []domain.Quote
	for rows.Next() {
		var q domain.Quote
		if err := rows.Scan(&q.ID, &q.Content, &q.TranscriptionTitle); err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}
