// Package cli provides the command-line interface for opdoc.
package cli

import (
	"github.com/spf13/cobra"
)

// Execute creates and runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand returns the opdoc root command with subcommands attached.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "opdoc",
		Short: "Doc-comment driven OpenAPI operation tooling",
	}

	rootCmd.AddCommand(newGenerateCommand())

	return rootCmd
}
