package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	keyNameStyle   = lipgloss.NewStyle().Bold(true)
	layerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	sectionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	tombstoneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	winnerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
)

func newKeysCommand(flags *stackFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "keys [path]",
		Short: "List keys visible at a section with their owning layer",
		Long: `List the union of every layer's keys at a section. Each key shows the
layer whose value currently wins — a key defined only by the lowest layer is
still listed unless a higher layer masks it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildStack(flags)
			if err != nil {
				return err
			}
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			keys, err := cfg.Keys(path)
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n",
					keyNameStyle.Render(k.Name),
					layerStyle.Render("("+k.Layer+")"))
			}
			return nil
		},
	}
}

func newSectionsCommand(flags *stackFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sections [path]",
		Short: "List child sections visible at a path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildStack(flags)
			if err != nil {
				return err
			}
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			sections, err := cfg.Sections(path)
			if err != nil {
				return err
			}
			for _, name := range sections {
				fmt.Fprintln(cmd.OutOrStdout(), sectionStyle.Render(name))
			}
			return nil
		},
	}
}
