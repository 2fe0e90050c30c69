package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/dass21/internal/config"
)

var (
	cfg     config.Config
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:          "dass21",
	Short:        "DASS-21 screening form and scorer",
	Long:         "dass21 collects DASS-21 questionnaires, scores the stress, anxiety and depression subscales, and keeps an append-only log of every submission.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTake(cmd)
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides DASS21_DB env var)")
	pf.String("csv", "", "Also append submissions to this CSV file (overrides DASS21_CSV env var)")
	pf.String("variant", "", "Default question bank id (overrides DASS21_VARIANT env var)")
	pf.String("bank", "", "Extra question bank YAML file (overrides DASS21_BANK env var)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(variantsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads .env and the environment, then applies flag overrides.
func loadConfig(cmd *cobra.Command) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}
	cfg = config.Load()

	flags := cmd.Flags()
	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("db", &cfg.DBPath)
	override("csv", &cfg.CSVPath)
	override("variant", &cfg.Variant)
	override("bank", &cfg.BankFile)
	if flags.Lookup("addr") != nil {
		override("addr", &cfg.Addr)
	}

	slog.SetDefault(newLogger(os.Stderr))
	return nil
}

// newLogger returns a text logger honoring --verbose.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
