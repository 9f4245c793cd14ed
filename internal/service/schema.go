package service

import (
	"context"
	"log/slog"

	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/domain"
	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/telemetry"
)

// SchemaRepositoryInterface defines catalog lookups and DDL for the schema initializer
type SchemaRepositoryInterface interface {
	ExtensionExists(ctx context.Context, name string) (bool, error)
	CreateExtension(ctx context.Context, name string) error
	TableExists(ctx context.Context, name string) (bool, error)
	CreateTable(ctx context.Context, name string, dimensions int) error
}

// SchemaService makes sure the vector extension and both tables exist.
type SchemaService struct {
	txRunner   TxRunner
	dimensions int
	logger     *slog.Logger
}

func NewSchemaService(txRunner TxRunner, dimensions int, logger *slog.Logger) *SchemaService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SchemaService{
		txRunner:   txRunner,
		dimensions: dimensions,
		logger:     logger.With("component", "schema"),
	}
}

// Ensure creates whatever is missing in a single transaction. Existing
// objects are left untouched; on error nothing created during the run survives.
func (s *SchemaService) Ensure(ctx context.Context) (*domain.SchemaReport, error) {
	ctx, span := telemetry.StartSpan(ctx, "SchemaService.Ensure", telemetry.SpanAttributes{
		Operation: "ensure_schema",
	})
	defer span.End()

	var report *domain.SchemaReport
	err := s.txRunner.WithTx(ctx, func(repos TxRepositories) error {
		report = &domain.SchemaReport{}
		schema := repos.Schema()

		exists, err := schema.ExtensionExists(ctx, domain.VectorExtension)
		if err != nil {
			return err
		}
		if exists {
			s.logger.Debug("extension already exists", "extension", domain.VectorExtension)
			report.Add("extension", domain.VectorExtension, domain.SchemaOutcomeExisted)
		} else {
			if err := schema.CreateExtension(ctx, domain.VectorExtension); err != nil {
				return err
			}
			s.logger.Info("created extension", "extension", domain.VectorExtension)
			report.Add("extension", domain.VectorExtension, domain.SchemaOutcomeCreated)
		}

		// quotes references transcriptions, so order matters
		for _, table := range []string{domain.TranscriptionsTable, domain.QuotesTable} {
			exists, err := schema.TableExists(ctx, table)
			if err != nil {
				return err
			}
			if exists {
				s.logger.Debug("table already exists", "table", table)
				report.Add("table", table, domain.SchemaOutcomeExisted)
				continue
			}
			if err := schema.CreateTable(ctx, table, s.dimensions); err != nil {
				return err
			}
			s.logger.Info("created table", "table", table)
			report.Add("table", table, domain.SchemaOutcomeCreated)
		}
		return nil
	})
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	return report, nil
}
