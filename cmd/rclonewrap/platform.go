package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/rclonewrap/internal/binary"
)

func newPlatformCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "platform",
		Short: "Show the resolved platform and install target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.setup(cmd.Context())
			if err != nil {
				return err
			}

			client, err := a.client(env)
			if err != nil {
				return err
			}

			manager, err := binary.NewManager(binary.Config{
				InstallDir: env.cfg.InstallDir,
				Platform:   env.info,
			})
			if err != nil {
				return err
			}
			ok, err := manager.IsInstalled()
			if err != nil {
				return err
			}
			installed := "no"
			if ok {
				installed = "yes"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "rclonewrap %s\n", Version)
			fmt.Fprintf(out, "OS:         %s (%s)\n", env.info.OS, env.info.OSRaw)
			fmt.Fprintf(out, "Arch:       %s (%s)\n", env.info.Arch, env.info.ArchRaw)
			if d := env.info.GetDistro(); d != nil {
				fmt.Fprintf(out, "Distro:     %s %s (%s)\n", d.ID, d.Version, d.Family)
			}
			fmt.Fprintf(out, "Executable: %s\n", client.BinaryPath())
			fmt.Fprintf(out, "Installed:  %s\n", installed)
			if env.cfg.Source != "" {
				fmt.Fprintf(out, "Config:     %s\n", env.cfg.Source)
			}
			return nil
		},
	}
}
