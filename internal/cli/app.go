// Package cli implements the ragcli commands and wires configuration,
// logging, the database pool and the services together.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/config"
	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/database"
	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/domain"
	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/logging"
	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/openai"
	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/repository"
	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/service"
	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/storage"
	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/telemetry"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

// ErrReported is returned by commands that already printed their failure.
var ErrReported = errors.New("error already reported")

// app holds the process-wide dependencies of one command run.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	pool   *pgxpool.Pool

	shutdownTelemetry func()
}

func setup(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	logger, err := logging.Setup(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	shutdown, err := telemetry.Init(telemetry.Config{
		DSN:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		TracesSampleRate: sampleRate(cfg.Environment),
	})
	if err != nil {
		logger.Warn("telemetry init failed, continuing without tracing", "error", err)
		shutdown = func() {}
	}

	pool, err := database.NewPool(ctx, database.Config{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
	})
	if err != nil {
		shutdown()
		return nil, err
	}
	logger.Debug("connected to database", "max_conns", cfg.DBMaxConns)

	return &app{cfg: cfg, logger: logger, pool: pool, shutdownTelemetry: shutdown}, nil
}

// Default to 10% sampling in production, 100% elsewhere.
func sampleRate(environment string) float64 {
	if environment == "production" {
		return 0.1
	}
	return 1.0
}

func (a *app) Close() {
	a.pool.Close()
	a.shutdownTelemetry()
}

func (a *app) schemaService() *service.SchemaService {
	return service.NewSchemaService(repository.NewTxRunner(a.pool), a.cfg.EmbeddingDimensions, a.logger)
}

func (a *app) embedder() *openai.Client {
	return openai.NewClientWithConfig(openai.Config{
		APIKey:              a.cfg.EmbeddingAPIKey,
		BaseURL:             a.cfg.EmbeddingBaseURL,
		EmbeddingModel:      a.cfg.EmbeddingModel,
		EmbeddingDimensions: a.cfg.EmbeddingDimensions,
	})
}

func (a *app) ingestService(out io.Writer) *service.IngestService {
	splitter := service.NewRecursiveSplitter(service.ChunkConfig{
		Size:    a.cfg.ChunkSize,
		Overlap: a.cfg.ChunkOverlap,
	})
	show := service.ShowInfo{
		Show:       a.cfg.ShowName,
		Network:    a.cfg.NetworkName,
		NetworkURL: a.cfg.NetworkURL,
	}
	return service.NewIngestService(repository.NewTxRunner(a.pool), splitter, a.embedder(), show, out, a.logger)
}

func (a *app) queryService() *service.QueryService {
	chat := openai.NewChatClient(openai.ChatConfig{
		APIKey:  a.cfg.LLMAPIKey,
		BaseURL: a.cfg.LLMBaseURL,
		Model:   a.cfg.LLMModel,
	})
	return service.NewQueryService(repository.NewQuoteRepository(a.pool), a.embedder(), chat, a.logger)
}

// resolver reads s3:// arguments only when credentials are configured.
func (a *app) resolver(ctx context.Context) (*storage.Resolver, error) {
	if !a.cfg.HasS3() {
		return storage.NewResolver(nil), nil
	}
	client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
		Endpoint:        a.cfg.S3Endpoint,
		Region:          a.cfg.S3Region,
		AccessKeyID:     a.cfg.S3AccessKey,
		SecretAccessKey: a.cfg.S3SecretKey,
		UsePathStyle:    a.cfg.S3Endpoint != "",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}
	return storage.NewResolver(client), nil
}

// errorType names an error for user-facing reports: the code of a domain
// error, otherwise the Go type of the innermost wrapped error.
func errorType(err error) string {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	for {
		inner := errors.Unwrap(err)
		if inner == nil {
			break
		}
		err = inner
	}
	name := fmt.Sprintf("%T", err)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
