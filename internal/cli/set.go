package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stratumcfg/stratum/coerce"
)

func newSetCommand(flags *stackFlags) *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Write a value to the designated writable layer",
		Long: `Write a value through the stack to the layer named by --write-to.

The write does not change precedence: if a higher layer also defines the
path, that layer's value still wins lookups.

Examples:
  stratum --source yaml:app.yaml --write-to yaml:app.yaml set server.port 9090
  stratum --source etcd:http://127.0.0.1:2379 --write-to etcd:http://127.0.0.1:2379 set server.debug true --type bool`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildStack(flags)
			if err != nil {
				return err
			}
			var value any = args[1]
			if typeName != "" {
				kind, err := coerce.ParseKind(typeName)
				if err != nil {
					return err
				}
				value, err = coerce.Coerce(args[1], kind)
				if err != nil {
					return err
				}
			}
			if err := cfg.Set(args[0], value); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (layer %s)\n",
				args[0], formatValue(value), cfg.WritableLayerName())
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "",
		"coerce the value before writing so typed backends store it natively")

	return cmd
}

func newUnsetCommand(flags *stackFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <path>",
		Short: "Delete a key from the designated writable layer",
		Long: `Delete a key from the layer named by --write-to. Values for the same
path in other layers are untouched and become visible again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildStack(flags)
			if err != nil {
				return err
			}
			if err := cfg.Unset(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "unset %s (layer %s)\n",
				args[0], cfg.WritableLayerName())
			return nil
		},
	}
}
