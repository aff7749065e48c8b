package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/rclonewrap/internal/command"
)

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List known rclone subcommands",
		Long: `List the rclone subcommands rclonewrap knows about.

The list is informational: any subcommand, known or not, is forwarded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Known rclone commands:")
			return command.Fprint(out)
		},
	}
}
