package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/dass21/internal/api"
	"github.com/abhisek/dass21/internal/intake"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the questionnaire as an HTTP form-collector API",
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := cfg.LoadBank()
		if err != nil {
			return err
		}
		sink, _, err := cfg.OpenSink()
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer sink.Close()

		logger := slog.Default()
		srv := api.New(intake.NewService(bank, sink, logger), logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Listen(cfg.Addr) }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("shutting down http collector")
		if err := srv.Shutdown(); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("shutdown: %w", err)
		}
		return <-errCh
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides DASS21_ADDR env var)")
}
