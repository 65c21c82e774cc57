// Package cli implements the stratum inspector command line: it assembles a
// layer stack from flags and exposes get/set/keys/sections/explain plus an
// interactive browser over the merged view.
package cli

import (
	"github.com/spf13/cobra"
)

// stackFlags collects the persistent flags every subcommand uses to assemble
// the stack.
type stackFlags struct {
	Sources       []string // kind:ref specs, lowest precedence first
	Defaults      []string // path=value seed entries
	EnvPrefix     string
	EnvEmptyUnset bool
	Sets          []string // path=value command-line layer entries
	Unsets        []string // paths tombstoned by the command-line layer
	WriteTo       string   // layer name designated as write target
	EtcdPrefix    string
	EtcdTimeout   string
	Verbose       bool
}

// NewRootCommand builds the stratum command tree.
func NewRootCommand(version string) *cobra.Command {
	flags := &stackFlags{}

	rootCmd := &cobra.Command{
		Use:   "stratum",
		Short: "Inspect and edit layered configuration stacks",
		Long: `Stratum resolves configuration values across an ordered stack of sources:
defaults, INI/JSON/YAML files, environment variables, command-line values,
and an etcd-backed remote store.

Sources are listed lowest precedence first; the last source listed wins.

Examples:
  stratum --source yaml:app.yaml --env-prefix MYAPP get server.port
  stratum --source ini:base.ini --source yaml:override.yaml keys server
  stratum --source etcd:http://127.0.0.1:2379 --write-to etcd:http://127.0.0.1:2379 set server.port 9090
  stratum --source yaml:app.yaml explain server.timeout
  stratum --source yaml:app.yaml browse`,
		Version: version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringArrayVar(&flags.Sources, "source", nil,
		"layer as kind:ref (kinds: ini, json, yaml, etcd); repeatable, last wins")
	pf.StringArrayVar(&flags.Defaults, "default", nil,
		"default entry as path=value; repeatable, forms the lowest layer")
	pf.StringVar(&flags.EnvPrefix, "env-prefix", "",
		"enable an environment layer with this variable prefix")
	pf.BoolVar(&flags.EnvEmptyUnset, "env-empty-unsets", false,
		"an empty environment variable masks lower layers")
	pf.StringArrayVar(&flags.Sets, "set", nil,
		"command-line value as path=value; repeatable, highest layer")
	pf.StringArrayVar(&flags.Unsets, "unset-flag", nil,
		"path the command-line layer masks from lower layers; repeatable")
	pf.StringVar(&flags.WriteTo, "write-to", "",
		"layer name (as shown by explain) that receives writes")
	pf.StringVar(&flags.EtcdPrefix, "etcd-prefix", "/config",
		"key-space prefix for etcd sources")
	pf.StringVar(&flags.EtcdTimeout, "etcd-timeout", "5s",
		"request timeout for etcd sources")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false,
		"log layer resolution details to stderr")

	rootCmd.AddCommand(
		newGetCommand(flags),
		newSetCommand(flags),
		newUnsetCommand(flags),
		newKeysCommand(flags),
		newSectionsCommand(flags),
		newExplainCommand(flags),
		newBrowseCommand(flags),
	)

	return rootCmd
}
