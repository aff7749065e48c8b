package rclone

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ZebulonRouseFrantzich/rclonewrap/internal/argv"
)

// Output runs a subcommand and returns its stdout with surrounding
// whitespace removed.
//
// Output returns as soon as stdout ends or the first stderr chunk arrives,
// whichever happens first. A stderr chunk yields a *StderrError even if
// the process would later exit successfully; the exit status itself is
// never consulted. Stdin is closed immediately. The process is reaped in
// the background once both streams are drained.
func (c *Client) Output(ctx context.Context, subcommand string, args []string, opts argv.Options) (string, error) {
	p := c.Start(ctx, subcommand, args, opts)
	if err := p.Err(); err != nil {
		return "", err
	}
	_ = p.Stdin.Close()

	type result struct {
		out string
		err error
	}
	results := make(chan result, 2)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, p.Stdout); err != nil {
			results <- result{err: fmt.Errorf("read stdout: %w", err)}
			return
		}
		results <- result{out: strings.TrimSpace(buf.String())}
	}()

	go func() {
		defer wg.Done()
		if chunk := firstChunk(p.Stderr); chunk != "" {
			results <- result{err: &StderrError{Output: chunk}}
		}
		_, _ = io.Copy(io.Discard, p.Stderr)
	}()

	go func() {
		wg.Wait()
		if err := p.Wait(); err != nil {
			c.logger.Debug("rclone exited", "args", p.Args, "error", err)
		}
	}()

	r := <-results
	return r.out, r.err
}

// firstChunk returns the data of the first non-empty read from r.
func firstChunk(r io.Reader) string {
	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			return string(buf[:n])
		}
		if err != nil {
			return ""
		}
	}
}
