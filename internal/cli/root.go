package cli

import "github.com/spf13/cobra"

// NewRootCmd builds the ragcli command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ragcli",
		Short: "Transcript search over Postgres and pgvector",
		Long: "ragcli loads podcast transcripts into Postgres with pgvector embeddings " +
			"and answers questions with quotes retrieved from them.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides RAG_LOG_LEVEL")
	AddHelpJSONFlag(root)

	root.AddCommand(InitCmd())
	root.AddCommand(UploadCmd())
	root.AddCommand(SearchCmd())
	root.AddCommand(ServeCmd())

	return root
}
