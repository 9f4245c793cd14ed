package cli

import (
	"context"
	"fmt"
	"io"
	"iter"

	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/domain"
	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/service"
	"github.com/spf13/cobra"
)

type documentIngester interface {
	IngestAll(ctx context.Context, docs iter.Seq2[domain.Document, error]) service.IngestSummary
}

// UploadCmd returns the upload command
func UploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file|dir|s3://bucket/prefix>...",
		Short: "Chunk, embed and store transcripts",
		Long: "Parse each transcript's front-matter, split the body into quotes, embed them and " +
			"store everything in one transaction per document. Directories are read one level " +
			"deep; s3:// URIs read every object under the prefix.",
		Example: "  ragcli upload transcripts/\n  ragcli upload episode-1.md episode-2.md\n  ragcli upload s3://transcripts/conduit/",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			resolver, err := a.resolver(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return runUpload(ctx, out, a.ingestService(out), resolver.Documents(ctx, args))
		},
	}
}

// runUpload never fails the command for a bad document; those are logged
// by the ingester and counted in the summary.
func runUpload(ctx context.Context, out io.Writer, ingester documentIngester, docs iter.Seq2[domain.Document, error]) error {
	summary := ingester.IngestAll(ctx, docs)
	fmt.Fprintf(out, "Done! %d uploaded, %d failed\n", summary.Ingested, summary.Failed)
	return ctx.Err()
}
