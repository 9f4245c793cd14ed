package repository

import (
	"context"
	"fmt"

	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// tableDefinitions holds the column list of every table the initializer may
// create. Anything else is rejected before SQL is built.
var tableDefinitions = map[string]func(dimensions int) string{
	domain.TranscriptionsTable: func(int) string {
		return `title TEXT PRIMARY KEY,
			content TEXT,
			meta JSONB`
	},
	domain.QuotesTable: func(dimensions int) string {
		return fmt.Sprintf(`id SERIAL PRIMARY KEY,
			content TEXT,
			embedding vector(%d),
			transcription_title TEXT REFERENCES %s(title)`,
			dimensions, pgx.Identifier{domain.TranscriptionsTable}.Sanitize())
	},
}

var knownExtensions = map[string]bool{
	domain.VectorExtension: true,
}

// SchemaRepository inspects and creates the catalog objects the pipeline needs.
type SchemaRepository struct {
	db dbtx
}

func NewSchemaRepository(pool *pgxpool.Pool) *SchemaRepository {
	return &SchemaRepository{db: pool}
}

func NewSchemaRepositoryWithTx(tx pgx.Tx) *SchemaRepository {
	return &SchemaRepository{db: tx}
}

func (r *SchemaRepository) ExtensionExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM pg_extension WHERE extname = $1)`,
		name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to look up extension %s: %w", name, err)
	}
	return exists, nil
}

func (r *SchemaRepository) CreateExtension(ctx context.Context, name string) error {
	if !knownExtensions[name] {
		return domain.NewDomainErrorWithCause(domain.ErrUnknownTable.Code, "extension is not part of the schema", fmt.Errorf("%s", name))
	}
	_, err := r.db.Exec(ctx, "CREATE EXTENSION "+pgx.Identifier{name}.Sanitize())
	if err != nil {
		return fmt.Errorf("failed to create extension %s: %w", name, err)
	}
	return nil
}

func (r *SchemaRepository) TableExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = current_schema() AND table_name = $1
		)`,
		name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to look up table %s: %w", name, err)
	}
	return exists, nil
}

// CreateTable creates one of the known tables. dimensions sets the length of
// vector columns.
func (r *SchemaRepository) CreateTable(ctx context.Context, name string, dimensions int) error {
	columns, ok := tableDefinitions[name]
	if !ok {
		return domain.NewDomainErrorWithCause(domain.ErrUnknownTable.Code, domain.ErrUnknownTable.Message, fmt.Errorf("%s", name))
	}
	if dimensions <= 0 {
		return domain.NewDomainError(domain.ErrCodeValidation, "vector dimensions must be positive")
	}

	sql := fmt.Sprintf("CREATE TABLE %s (%s)", pgx.Identifier{name}.Sanitize(), columns(dimensions))
	if _, err := r.db.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to create table %s: %w", name, err)
	}
	return nil
}
