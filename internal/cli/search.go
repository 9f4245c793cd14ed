package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/service"
	"github.com/spf13/cobra"
)

type asker interface {
	Ask(ctx context.Context, w io.Writer, query string, k int) error
}

// SearchCmd returns the search command
func SearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Answer a question from the stored transcripts",
		Long: "Embed the query, fetch the nearest quotes, list the episodes they come from " +
			"and stream an answer grounded in those quotes.",
		Example: `  ragcli search "how do I stay focused?" --k-results 5`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			k, _ := cmd.Flags().GetInt("k-results")

			a, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			return runSearch(ctx, cmd.OutOrStdout(), a.logger, a.queryService(), strings.Join(args, " "), k)
		},
	}

	cmd.Flags().IntP("k-results", "k", service.DefaultResultCount, "Number of quotes to retrieve")

	return cmd
}

// runSearch reports failures as a warning and still exits successfully.
func runSearch(ctx context.Context, out io.Writer, logger *slog.Logger, svc asker, query string, k int) error {
	err := svc.Ask(ctx, out, query, k)
	fmt.Fprintln(out)
	if err != nil {
		logger.Warn("search failed", "type", errorType(err), "error", err)
	}
	return nil
}
