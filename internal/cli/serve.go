package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/api/handlers"
	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/server"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long:  "Serve document upload and search over HTTP until interrupted.",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "", "Port to listen on (default from RAG_PORT, 8080)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if port, _ := cmd.Flags().GetString("port"); port != "" {
		a.cfg.Port = port
	}

	router := server.NewRouter(server.RouterConfig{
		Logger:          a.logger,
		DocumentHandler: handlers.NewDocumentHandler(a.ingestService(io.Discard), a.logger),
		SearchHandler:   handlers.NewSearchHandler(a.queryService(), a.logger),
	})

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting server", "port", a.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	a.logger.Info("server exited")
	return nil
}
