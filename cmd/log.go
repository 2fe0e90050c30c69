package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/dass21/internal/questionnaire"
	"github.com/abhisek/dass21/internal/record"
	"github.com/abhisek/dass21/internal/store"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the latest logged submissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		tail, _ := cmd.Flags().GetInt("tail")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		repo := st.SubmissionRepo()
		total, err := repo.Count(cmd.Context())
		if err != nil {
			return err
		}
		opts := store.QueryOpts{Latest: true}
		if tail > 0 {
			opts.Limit = tail
		}
		entries, err := repo.List(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("list submissions: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d submissions logged\n", total)
		if len(entries) == 0 {
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "\nSEQ\tTIMESTAMP\tVARIANT\tSTRESS\tANXIETY\tDEPRESSION\tID")
		for _, e := range entries {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				e.Sequence,
				e.Timestamp.Format(record.TimestampLayout),
				e.Variant,
				e.Score(questionnaire.Stress).Label,
				e.Score(questionnaire.Anxiety).Label,
				e.Score(questionnaire.Depression).Label,
				e.ID,
			)
		}
		return w.Flush()
	},
}

func init() {
	logCmd.Flags().IntP("tail", "n", 10, "Number of latest submissions to show (0 = all)")
}

