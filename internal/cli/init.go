package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/domain"
	"github.com/spf13/cobra"
)

type schemaEnsurer interface {
	Ensure(ctx context.Context) (*domain.SchemaReport, error)
}

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the vector extension and tables",
		Long:  "Create the vector extension and the transcriptions and quotes tables if they do not exist yet. Safe to run repeatedly.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			return runInit(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), a.schemaService())
		},
	}
}

func runInit(ctx context.Context, out, errOut io.Writer, schema schemaEnsurer) error {
	report, err := schema.Ensure(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "%s: %v\n", errorType(err), err)
		return ErrReported
	}

	if created := report.Created(); len(created) > 0 {
		fmt.Fprintf(out, "Created: %s\n", strings.Join(created, ", "))
	} else {
		fmt.Fprintln(out, "Schema already up to date")
	}
	return nil
}
