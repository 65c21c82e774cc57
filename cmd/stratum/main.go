package main

import (
	"fmt"
	"os"

	"github.com/stratumcfg/stratum/internal/cli"
)

// Overridden at release time with -ldflags.
var version = "dev"

func main() {
	rootCmd := cli.NewRootCommand(version)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
