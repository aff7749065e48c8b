package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/rclonewrap/internal/argv"
	"github.com/ZebulonRouseFrantzich/rclonewrap/internal/config"
	"github.com/ZebulonRouseFrantzich/rclonewrap/internal/platform"
	"github.com/ZebulonRouseFrantzich/rclonewrap/internal/rclone"
)

// app carries the process streams and per-invocation settings shared by
// all subcommands.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	detector   platform.Detector
	configPath string
	debug      bool
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		detector: platform.NewDetector(),
	}
}

// exitError carries a child exit code through cobra.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("rclone exited with code %d", e.code)
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, a *app) int {
	root := newRootCmd(a)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}

	fmt.Fprintf(a.stderr, "Error: %v\n", err)
	return 1
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "rclonewrap [rclone-subcommand] [args...] [--option[=value]...]",
		Short: "Install and run a managed copy of rclone",
		Long: `rclonewrap keeps an rclone executable next to itself and runs it.

Anything that is not a rclonewrap command is forwarded to rclone
unchanged: the child's output is piped through, and its exit code
becomes rclonewrap's exit code. Leading --debug and --wrap-config
flags are kept by rclonewrap; everything else, --config included,
belongs to rclone.

  rclonewrap update                  install the current release
  rclonewrap copy src: dst: --dry-run
  rclonewrap cat remote:file.txt     raw bytes straight to stdout`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			args = a.stripGlobalFlags(args)
			if len(args) == 0 {
				return cmd.Help()
			}
			return a.forward(cmd.Context(), args)
		},
	}

	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.configPath, "wrap-config", "", "rclonewrap config file (default $RCLONEWRAP_CONFIG or <user config dir>/rclonewrap/config.lua)")

	root.SetHelpCommand(newHelpCmd(a))

	root.AddCommand(
		newUpdateCmd(a),
		newPlatformCmd(a),
		newCommandsCmd(),
	)

	return root
}

// wrapperFlags are the root flags rclonewrap keeps for itself. Every
// other token, including rclone's own --config, goes to rclone.
var wrapperFlags = []string{"debug", "wrap-config"}

// stripGlobalFlags consumes the leading run of wrapper flags, which the
// root command cannot parse itself because its flags belong to rclone.
func (a *app) stripGlobalFlags(args []string) []string {
	n := 0
	for n < len(args) {
		name, hasValue := wrapperFlag(args[n])
		if name == "" {
			break
		}
		n++
		if name == "wrap-config" && !hasValue && n < len(args) {
			n++
		}
	}

	_, opts := argv.Parse(args[:n])
	if v, ok := opts.Get("debug"); ok {
		a.debug, _ = v.(bool)
	}
	if v, ok := opts.Get("wrap-config"); ok {
		if path, isString := v.(string); isString {
			a.configPath = path
		}
	}

	return args[n:]
}

// wrapperFlag returns the wrapper flag a token names, if any, and whether
// the token carries its value inline.
func wrapperFlag(token string) (name string, hasValue bool) {
	for _, f := range wrapperFlags {
		switch {
		case token == "--"+f:
			return f, false
		case strings.HasPrefix(token, "--"+f+"="):
			return f, true
		}
	}
	return "", false
}

// environment holds what every subcommand needs after startup.
type environment struct {
	info   *platform.Info
	cfg    *config.Config
	logger config.Logger
}

// setup detects the platform, loads the config file and builds the logger.
func (a *app) setup(ctx context.Context) (*environment, error) {
	info, err := a.detector.Detect(ctx)
	if err != nil {
		return nil, fmt.Errorf("detect platform: %w", err)
	}

	cfg, err := config.Load(ctx, a.configPath, info)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := config.NewLogger(a.stderr, a.debug || config.DebugEnabled())
	logger.Debug("configuration loaded", "source", cfg.Source, "install_dir", cfg.InstallDir, "platform", info.String())

	return &environment{info: info, cfg: cfg, logger: logger}, nil
}

// client builds an rclone client over the app's streams.
func (a *app) client(env *environment) (*rclone.Client, error) {
	return rclone.NewClient(rclone.Config{
		InstallDir: env.cfg.InstallDir,
		Platform:   env.info,
		Env:        env.cfg.Environ(),
		Stdin:      a.stdin,
		Stdout:     a.stdout,
		Stderr:     a.stderr,
		Logger:     env.logger,
	})
}
