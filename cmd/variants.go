package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List the loaded question banks",
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := cfg.LoadBank()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tLOCALE\tMULTIPLIER\tTITLE")
		for _, e := range bank.Engines() {
			v := e.Variant()
			id := v.ID
			if e == bank.Default() {
				id += " *"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", id, v.Locale, e.Multiplier(), v.Title)
		}
		return w.Flush()
	},
}
