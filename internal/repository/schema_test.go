//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/domain"
	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/service"
	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaRepository_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc)
	defer pool.Close()

	repo := NewSchemaRepository(pool)

	exists, err := repo.ExtensionExists(ctx, domain.VectorExtension)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.CreateExtension(ctx, domain.VectorExtension))

	exists, err = repo.ExtensionExists(ctx, domain.VectorExtension)
	require.NoError(t, err)
	assert.True(t, exists)

	for _, table := range []string{domain.TranscriptionsTable, domain.QuotesTable} {
		exists, err := repo.TableExists(ctx, table)
		require.NoError(t, err)
		assert.False(t, exists, table)

		require.NoError(t, repo.CreateTable(ctx, table, 768))

		exists, err = repo.TableExists(ctx, table)
		require.NoError(t, err)
		assert.True(t, exists, table)
	}

	var typ string
	err = pool.QueryRow(ctx,
		`SELECT format_type(atttypid, atttypmod) FROM pg_attribute
		 WHERE attrelid = 'quotes'::regclass AND attname = 'embedding'`,
	).Scan(&typ)
	require.NoError(t, err)
	assert.Equal(t, "vector(768)", typ)
}

func TestSchemaRepository_RejectsUnknownNames(t *testing.T) {
	repo := &SchemaRepository{}
	ctx := context.Background()

	err := repo.CreateTable(ctx, "users; DROP TABLE quotes", 768)
	assert.ErrorIs(t, err, domain.ErrUnknownTable)

	err = repo.CreateExtension(ctx, "plpython3u")
	var de *domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeValidation, de.Code)
}

func TestTxRunner_RollsBackSchemaOnError(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc)
	defer pool.Close()

	runner := NewTxRunner(pool)
	err := runner.WithTx(ctx, func(repos service.TxRepositories) error {
		if err := repos.Schema().CreateExtension(ctx, domain.VectorExtension); err != nil {
			return err
		}
		if err := repos.Schema().CreateTable(ctx, domain.TranscriptionsTable, 768); err != nil {
			return err
		}
		return repos.Schema().CreateTable(ctx, "not_a_table", 768)
	})
	require.Error(t, err)

	repo := NewSchemaRepository(pool)
	exists, err := repo.ExtensionExists(ctx, domain.VectorExtension)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.TableExists(ctx, domain.TranscriptionsTable)
	require.NoError(t, err)
	assert.False(t, exists)
}
