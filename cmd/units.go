package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "List the unit vocabulary and each unit's scale to the base unit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		table := cfg.Units
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "UNIT\tSCALE (%s)\n", table.Base())
		for _, u := range table.Units() {
			scale, _ := table.Scale(u)
			fmt.Fprintf(w, "%s\t%g\n", u, scale)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(unitsCmd)
}
