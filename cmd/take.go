package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/dass21/internal/app"
	"github.com/abhisek/dass21/internal/intake"
)

var takeCmd = &cobra.Command{
	Use:   "take",
	Short: "Open the terminal form and collect submissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTake(cmd)
	},
}

// runTake loads the banks, opens the sinks, and launches the TUI.
func runTake(cmd *cobra.Command) error {
	bank, err := cfg.LoadBank()
	if err != nil {
		return err
	}

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	cfg.DBPath = dbPath

	sink, _, err := cfg.OpenSink()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer sink.Close()

	// The terminal belongs to the form; logs go beside the database.
	logger, closeLog, err := tuiLogger(dbPath)
	if err != nil {
		return err
	}
	defer closeLog()

	svc := intake.NewService(bank, sink, logger)
	return app.Run(cmd.Context(), app.Options{
		Bank:      bank,
		Submitter: svc,
		Tag:       version,
	})
}

// tuiLogger logs to dass21.log next to the database when verbose and
// discards otherwise.
func tuiLogger(dbPath string) (*slog.Logger, func() error, error) {
	if !verbose {
		return newLogger(io.Discard), func() error { return nil }, nil
	}
	path := filepath.Join(filepath.Dir(dbPath), "dass21.log")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(f), f.Close, nil
}
