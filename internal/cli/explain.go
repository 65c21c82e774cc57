package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newExplainCommand(flags *stackFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <path>",
		Short: "Show how every layer answers a lookup",
		Long: `Query every layer for the path, highest precedence first, and show which
one supplies the effective value, which are shadowed, and which failed.

Example:
  stratum --source yaml:base.yaml --source yaml:override.yaml explain server.port`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildStack(flags)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, keyNameStyle.Render(args[0]))

			resolved := false
			for _, entry := range cfg.Trace(args[0]) {
				var status string
				switch {
				case entry.Err != nil:
					status = tombstoneStyle.Render("error: " + entry.Err.Error())
				case entry.Tombstone:
					status = tombstoneStyle.Render("tombstone (masks lower layers)")
					resolved = true
				case entry.Found && !resolved:
					status = winnerStyle.Render(formatValue(entry.Value)) +
						winnerStyle.Render("  ← effective")
					resolved = true
				case entry.Found:
					status = valueStyle.Render(formatValue(entry.Value)) +
						layerStyle.Render("  (shadowed)")
				default:
					status = layerStyle.Render("—")
				}
				fmt.Fprintf(out, "  %-24s %s\n", entry.Layer, status)
			}

			if !resolved {
				fmt.Fprintln(out, tombstoneStyle.Render(strings.Repeat(" ", 2)+"not defined by any layer"))
			}
			return nil
		},
	}
}
