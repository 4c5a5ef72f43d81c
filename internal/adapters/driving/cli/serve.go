package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/chrona-labs/chrona-cli/internal/adapters/driving/api"
	"github.com/chrona-labs/chrona-cli/internal/logger"
)

// shutdownTimeout bounds how long in-flight requests may run after a
// stop signal.
const shutdownTimeout = 10 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP support API",
	Long: `Starts the HTTP API that exposes the assistant to web clients.

Endpoints:
  POST /api/ask     - answer a support question
  GET  /api/search  - rank documentation pages
  GET  /api/stats   - knowledge base statistics
  GET  /healthz     - liveness probe
  GET  /images/*    - downloaded screenshots`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	settings := appSettings.Server
	if serveAddr != "" {
		settings.Addr = serveAddr
	}

	server := api.NewServer(api.Config{
		Assistant: assistantService,
		DocSearch: docSearchService,
		Settings:  settings,
		ImagesDir: appSettings.ImagesDir,
		Version:   version,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening on %s", settings.Addr)
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
