package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TranscriptionRepository struct {
	db dbtx
}

func NewTranscriptionRepository(pool *pgxpool.Pool) *TranscriptionRepository {
	return &TranscriptionRepository{db: pool}
}

func NewTranscriptionRepositoryWithTx(tx pgx.Tx) *TranscriptionRepository {
	return &TranscriptionRepository{db: tx}
}

func (r *TranscriptionRepository) Create(ctx context.Context, t *domain.Transcription) error {
	meta, err := json.Marshal(t.Meta)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO transcriptions (title, content, meta) VALUES ($1, $2, $3)`,
		t.Title, t.Content, meta,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewDomainErrorWithCause(
				domain.ErrTranscriptionAlreadyExists.Code,
				domain.ErrTranscriptionAlreadyExists.Message,
				fmt.Errorf("%q", t.Title),
			)
		}
		return err
	}
	return nil
}

func (r *TranscriptionRepository) GetByTitle(ctx context.Context, title string) (*domain.Transcription, error) {
	var t domain.Transcription
	var meta []byte
	err := r.db.QueryRow(ctx,
		`SELECT title, content, meta FROM transcriptions WHERE title = $1`,
		title,
	).Scan(&t.Title, &t.Content, &meta)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTranscriptionNotFound
		}
		return nil, err
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &t.Meta); err != nil {
			return nil, fmt.Errorf("failed to decode metadata: %w", err)
		}
	}
	return &t, nil
}
