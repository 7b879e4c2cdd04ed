package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByLCY/lithos/component"
	"github.com/ByLCY/lithos/library"
	"github.com/ByLCY/lithos/options"
)

type typeOptions struct {
	Type        string            `json:"type"`
	Description string            `json:"description,omitempty"`
	Options     *options.Template `json:"options"`
}

var optionsCmd = &cobra.Command{
	Use:   "options <Type>",
	Short: "Print a component type's default options as ordered JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := library.Default().New(args[0])
		if err != nil {
			return err
		}
		out := typeOptions{Type: args[0], Options: c.DefaultOptions()}
		if desc, ok := c.(component.Describer); ok {
			out.Description = desc.Description()
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("编码默认参数失败: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

func init() {
	rootCmd.AddCommand(optionsCmd)
}
