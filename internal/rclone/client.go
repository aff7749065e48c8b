// Package rclone launches the managed rclone executable.
//
// Every call spawns a fresh process. Start returns a handle over piped
// standard streams; Cat runs rclone's cat with the parent's stdio so raw
// bytes flow straight through; Output buffers stdout and fails fast on the
// first stderr chunk. Spawn failures never surface at call time: they are
// reported through the handle's streams, Err and Wait.
//
// The Install Target is resolved from the install directory and platform
// on every launch, so an update that replaces the executable is picked up
// by the next call. Nothing guards against an update racing a launch.
package rclone

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/rclonewrap/internal/argv"
	"github.com/ZebulonRouseFrantzich/rclonewrap/internal/command"
	"github.com/ZebulonRouseFrantzich/rclonewrap/internal/config"
	"github.com/ZebulonRouseFrantzich/rclonewrap/internal/platform"
)

// Config configures a Client.
type Config struct {
	// InstallDir holds the rclone executable.
	InstallDir string
	// Platform decides the executable name.
	Platform *platform.Info
	// Env is appended to the inherited environment (KEY=value).
	Env []string
	// Dir is the working directory; empty inherits the parent's.
	Dir string
	// Stdin, Stdout and Stderr are handed to streaming commands.
	// They default to the process's own standard streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger config.Logger
}

// Client spawns rclone processes.
type Client struct {
	installDir string
	platform   platform.Info
	env        []string
	dir        string
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	logger     config.Logger
}

// NewClient creates a client for the executable in cfg.InstallDir.
func NewClient(cfg Config) (*Client, error) {
	if cfg.InstallDir == "" {
		return nil, fmt.Errorf("InstallDir is required")
	}
	if cfg.Platform == nil {
		return nil, fmt.Errorf("Platform is required")
	}

	// An absolute path keeps exec from searching PATH for a bare "rclone".
	installDir, err := filepath.Abs(cfg.InstallDir)
	if err != nil {
		return nil, fmt.Errorf("resolve install dir: %w", err)
	}

	c := &Client{
		installDir: installDir,
		platform:   *cfg.Platform,
		env:        cfg.Env,
		dir:        cfg.Dir,
		stdin:      cfg.Stdin,
		stdout:     cfg.Stdout,
		stderr:     cfg.Stderr,
		logger:     cfg.Logger,
	}
	if c.stdin == nil {
		c.stdin = os.Stdin
	}
	if c.stdout == nil {
		c.stdout = os.Stdout
	}
	if c.stderr == nil {
		c.stderr = os.Stderr
	}
	if c.logger == nil {
		c.logger = config.NopLogger()
	}

	return c, nil
}

// BinaryPath returns the Install Target.
func (c *Client) BinaryPath() string {
	return filepath.Join(c.installDir, platform.ExecutableName(c.platform.OS))
}

// command builds the exec.Cmd for an argument vector.
func (c *Client) command(ctx context.Context, args []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.BinaryPath(), args...)
	cmd.Dir = c.dir
	if len(c.env) > 0 {
		cmd.Env = append(os.Environ(), c.env...)
	}
	return cmd
}

// Start spawns rclone with piped stdin, stdout and stderr.
//
// The subcommand is not checked against the known command table. Callers
// must read Stdout and Stderr to EOF before calling Wait.
func (c *Client) Start(ctx context.Context, subcommand string, args []string, opts argv.Options) *Process {
	vector := argv.Marshal(subcommand, args, opts)
	cmd := c.command(ctx, vector)

	p := &Process{Path: cmd.Path, Args: vector, cmd: cmd}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return p.fail(err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return p.fail(err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return p.fail(err)
	}

	c.logger.Debug("starting rclone", "path", cmd.Path, "args", vector)

	if err := cmd.Start(); err != nil {
		c.logger.Debug("rclone failed to start", "path", cmd.Path, "error", err)
		return p.fail(err)
	}

	p.Stdin = stdin
	p.Stdout = stdout
	p.Stderr = stderr
	return p
}

// Run is Start for a command from the known table.
func (c *Client) Run(ctx context.Context, name command.Name, args []string, opts argv.Options) *Process {
	return c.Start(ctx, name.String(), args, opts)
}

// Cat runs "rclone cat" with the client's stdio attached directly to the
// child. The returned handle has no streams; use Wait for completion.
func (c *Client) Cat(ctx context.Context, args []string, opts argv.Options) *Process {
	return c.Inherit(ctx, command.Cat.String(), args, opts)
}

// Inherit spawns any subcommand with the client's stdio attached directly.
func (c *Client) Inherit(ctx context.Context, subcommand string, args []string, opts argv.Options) *Process {
	vector := argv.Marshal(subcommand, args, opts)
	cmd := c.command(ctx, vector)
	cmd.Stdin = c.stdin
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr

	p := &Process{Path: cmd.Path, Args: vector, cmd: cmd}

	c.logger.Debug("starting rclone with inherited stdio", "path", cmd.Path, "args", vector)

	if err := cmd.Start(); err != nil {
		p.err = &SpawnError{Path: cmd.Path, Err: err}
	}
	return p
}

// StderrError is returned by Output when rclone writes to stderr before
// stdout ends. Output holds the first stderr chunk.
type StderrError struct {
	Output string
}

func (e *StderrError) Error() string {
	return e.Output
}

// ErrSpawn matches every SpawnError with errors.Is.
var ErrSpawn = errors.New("failed to start rclone")

// SpawnError reports an executable that could not be started.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrSpawn, e.Path, e.Err)
}

// Unwrap returns the underlying exec error.
func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Is reports ErrSpawn as a match.
func (e *SpawnError) Is(target error) bool {
	return target == ErrSpawn
}
