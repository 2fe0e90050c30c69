package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/dass21/internal/record"
	"github.com/abhisek/dass21/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export logged submissions as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		outPath, _ := flags.GetString("out")
		only, _ := flags.GetString("only")
		limit, _ := flags.GetInt("limit")
		fromStr, _ := flags.GetString("from")
		toStr, _ := flags.GetString("to")

		opts := store.QueryOpts{Variant: only, Limit: limit}
		var err error
		if opts.From, err = parseDay(fromStr, false); err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		if opts.To, err = parseDay(toStr, true); err != nil {
			return fmt.Errorf("--to: %w", err)
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		entries, err := st.SubmissionRepo().List(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("list submissions: %w", err)
		}
		subs := make([]*record.Submission, len(entries))
		for i, e := range entries {
			subs[i] = e.Submission
		}

		var w io.Writer = cmd.OutOrStdout()
		if outPath != "" && outPath != "-" {
			f, err := os.OpenFile(outPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()
			w = f
		}
		if err := store.WriteCSV(w, subs); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		if outPath != "" && outPath != "-" {
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d submissions to %s\n", len(subs), outPath)
		}
		return nil
	},
}

func init() {
	f := exportCmd.Flags()
	f.StringP("out", "o", "", "Write to this new file instead of stdout")
	f.String("only", "", "Only export submissions of this question bank id")
	f.String("from", "", "Earliest day to export (YYYY-MM-DD, UTC)")
	f.String("to", "", "Latest day to export, inclusive (YYYY-MM-DD, UTC)")
	f.Int("limit", 0, "Maximum number of submissions (0 = all)")
}

// openStore opens the submissions log read for reporting commands.
func openStore() (*store.Store, error) {
	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// parseDay parses a YYYY-MM-DD day in UTC. endOfDay returns the last
// instant of the day. An empty string yields the zero time.
func parseDay(s string, endOfDay bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q, want YYYY-MM-DD", s)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
