package main

import (
	"github.com/spf13/cobra"
)

// newHelpCmd replaces cobra's help command so "rclonewrap help ..." reaches
// rclone's own help. Wrapper help is shown when rclonewrap runs without
// arguments.
func newHelpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:                "help [topic]",
		Short:              "Show rclone's help",
		Hidden:             true,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			args = a.stripGlobalFlags(args)
			return a.forward(cmd.Context(), append([]string{"help"}, args...))
		},
	}
}
