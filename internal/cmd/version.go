package cmd

import (
	"github.com/lsycxyj/disableSplitChunks/version"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates and returns the version subcommand for the splitchunks CLI.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			version.PrintVersion(cmd.OutOrStdout(), cmd.Root().Name())
		},
	}
}
