package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/tacit-labs/tacit/adapter/api"
	"github.com/tacit-labs/tacit/internal/app"
	"github.com/tacit-labs/tacit/pkg/config"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Starts the HTTP API that accepts communications for synchronous
processing and reports service health.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		container, err := app.NewContainer(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("initializing container: %w", err)
		}
		defer container.Close()

		serverCfg := api.DefaultServerConfig()
		serverCfg.Addr = cfg.HTTPAddr
		handler := api.NewCommunicationHandler(container.UseCase, logger)
		server := api.NewServer(serverCfg, handler, container.Health, logger)

		errCh := make(chan error, 1)
		go func() {
			if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
