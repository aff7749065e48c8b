package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/rclonewrap/internal/binary"
)

func newUpdateCmd(a *app) *cobra.Command {
	var (
		verify  bool
		version string
		keyring string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Download and install rclone",
		Long: `Download the rclone release archive for this platform and install the
rclone executable into the install directory, replacing any existing one.

By default the current release is installed without verification. With
--verify the archive is checked against the release SHA256SUMS; with
--keyring that file must also be signed by a key in the keyring.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			env, err := a.setup(ctx)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("verify") {
				env.cfg.Verify = verify
			}
			if version != "" {
				env.cfg.Version = version
			}
			if keyring != "" {
				env.cfg.Keyring = keyring
				env.cfg.Verify = true
			}
			if err := env.cfg.Validate(); err != nil {
				return err
			}

			manager, err := binary.NewManager(binary.Config{
				InstallDir:  env.cfg.InstallDir,
				CacheDir:    env.cfg.CacheDir,
				Platform:    env.info,
				BaseURL:     env.cfg.BaseURL,
				Version:     env.cfg.Version,
				Verify:      env.cfg.Verify,
				KeyringPath: env.cfg.Keyring,
				Logger:      env.logger,
			})
			if err != nil {
				return fmt.Errorf("create binary manager: %w", err)
			}

			result, err := manager.Update(ctx)
			if err != nil {
				return fmt.Errorf("update rclone: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, p := range result.Installed {
				fmt.Fprintf(out, "✓ Installed %s\n", p)
			}
			if result.Version != "" {
				fmt.Fprintf(out, "  Version:  %s\n", result.Version)
			}
			fmt.Fprintf(out, "  Verified: %s\n", result.Verified)
			fmt.Fprintf(out, "  Took:     %s\n", result.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "check the archive against the release SHA256SUMS")
	cmd.Flags().StringVar(&version, "version", "", "install a pinned release such as v1.68.2")
	cmd.Flags().StringVar(&keyring, "keyring", "", "PGP public key that must have signed SHA256SUMS (implies --verify)")

	return cmd
}
