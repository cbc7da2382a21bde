// Package cmd implements the CLI commands for onepux using Cobra.
package cmd

import (
	"fmt"
	"os"
)

var rootCmd = newRootCmd()

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
