package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/ZebulonRouseFrantzich/rclonewrap/internal/command"
	"github.com/ZebulonRouseFrantzich/rclonewrap/internal/rclone"
)

// forward runs rclone with the raw CLI tokens and mirrors its exit code.
// The tokens reach rclone verbatim: rclone's own flag grammar decides
// which token is a flag value, so nothing is reordered.
func (a *app) forward(ctx context.Context, tokens []string) error {
	env, err := a.setup(ctx)
	if err != nil {
		return err
	}

	client, err := a.client(env)
	if err != nil {
		return err
	}

	subcommand := tokens[0]
	if _, known := command.Lookup(subcommand); !known {
		env.logger.Debug("forwarding unknown subcommand", "subcommand", subcommand)
	}

	var p *rclone.Process
	if command.IsStreaming(subcommand) {
		p = client.Inherit(ctx, "", tokens, nil)
	} else {
		p = client.Start(ctx, "", tokens, nil)
		if p.Err() == nil {
			if err := a.pipe(p); err != nil {
				_ = p.Kill()
				_ = p.Wait()
				return fmt.Errorf("forward rclone output: %w", err)
			}
		}
	}

	return a.finish(p)
}

// pipe feeds the app's stdin to the child and copies its stdout and
// stderr to the app's streams until both reach EOF.
func (a *app) pipe(p *rclone.Process) error {
	go func() {
		_, _ = io.Copy(p.Stdin, a.stdin)
		_ = p.Stdin.Close()
	}()

	var g errgroup.Group
	g.Go(func() error {
		_, err := io.Copy(a.stdout, p.Stdout)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(a.stderr, p.Stderr)
		return err
	})
	return g.Wait()
}

// finish waits for the child and turns a non-zero exit into an exitError.
func (a *app) finish(p *rclone.Process) error {
	err := p.Wait()
	if err == nil {
		return nil
	}
	if errors.Is(err, rclone.ErrSpawn) {
		return fmt.Errorf("%w\nRun 'rclonewrap update' to install rclone", err)
	}
	code := rclone.ExitCodeOf(err)
	if code < 0 {
		// Killed by a signal.
		code = 1
	}
	return &exitError{code: code}
}
