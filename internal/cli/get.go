package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stratumcfg/stratum/coerce"
)

func newGetCommand(flags *stackFlags) *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Resolve one value across the stack",
		Long: `Resolve a dotted path against the stack and print the effective value.

Without --type the value is typed by the closest typed layer (usually the
defaults). With --type the raw value is coerced explicitly.

Examples:
  stratum --source yaml:app.yaml get server.port
  stratum --source ini:app.ini --default server.port=8080 get server.port
  stratum --source ini:app.ini get server.timeout --type duration`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildStack(flags)
			if err != nil {
				return err
			}
			var value any
			if typeName != "" {
				kind, err := coerce.ParseKind(typeName)
				if err != nil {
					return err
				}
				value, err = cfg.GetKind(args[0], kind)
				if err != nil {
					return err
				}
			} else {
				value, err = cfg.Get(args[0])
				if err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatValue(value))
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "",
		"coerce to an explicit type (bool, int, float, date, datetime, duration, list, ints)")

	return cmd
}

// formatValue prints values in their canonical string form where one exists.
func formatValue(v any) string {
	if s, err := coerce.Serialize(v); err == nil {
		return s
	}
	return fmt.Sprintf("%v", v)
}
