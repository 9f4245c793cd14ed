//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/domain"
	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/testutil"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

const testDimensions = 3

// newSchemaPool starts a container and creates the extension and both tables
// with 3-dimension vectors.
func newSchemaPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	pc := testutil.NewPostgresContainer(ctx, t)
	t.Cleanup(func() { _ = pc.Terminate(context.Background()) })

	pool := testutil.NewTestPool(ctx, t, pc)
	t.Cleanup(pool.Close)

	schema := NewSchemaRepository(pool)
	require.NoError(t, schema.CreateExtension(ctx, domain.VectorExtension))
	require.NoError(t, schema.CreateTable(ctx, domain.TranscriptionsTable, testDimensions))
	require.NoError(t, schema.CreateTable(ctx, domain.QuotesTable, testDimensions))
	return pool
}

func newTestTranscription(title string) *domain.Transcription {
	return domain.NewTranscription(title, "Sentence one. Sentence two. Sentence three.", domain.Metadata{
		Title:       title,
		Show:        "Conduit",
		Network:     "Relay",
		NetworkURL:  "https://relay.fm",
		Description: "Getting started",
		URL:         "https://relay.fm/conduit/1",
		PubDate:     "2023-01-05",
	})
}
