package rclone

import (
	"errors"
	"io"
	"os/exec"
)

// Process is a handle on one rclone process. It is owned by the caller
// that created it and never reused.
type Process struct {
	// Stdin, Stdout and Stderr are nil for processes with inherited stdio.
	Stdin  io.WriteCloser
	Stdout io.ReadCloser
	Stderr io.ReadCloser

	// Path is the executable and Args the argument vector, without argv[0].
	Path string
	Args []string

	cmd *exec.Cmd
	err error
}

// fail records a spawn error and replaces the streams with ones that
// report it.
func (p *Process) fail(err error) *Process {
	p.err = &SpawnError{Path: p.Path, Err: err}
	p.Stdin = failedStream{p.err}
	p.Stdout = failedStream{p.err}
	p.Stderr = failedStream{p.err}
	return p
}

// Err returns the spawn error, if any.
func (p *Process) Err() error {
	return p.err
}

// Wait waits for the process to exit. It returns the spawn error when the
// process never started and an *exec.ExitError on a non-zero exit.
func (p *Process) Wait() error {
	if p.err != nil {
		return p.err
	}
	return p.cmd.Wait()
}

// Kill terminates the process.
func (p *Process) Kill() error {
	if p.err != nil {
		return p.err
	}
	return p.cmd.Process.Kill()
}

// Pid returns the OS process ID, or -1 when the process never started.
func (p *Process) Pid() int {
	if p.err != nil || p.cmd.Process == nil {
		return -1
	}
	return p.cmd.Process.Pid
}

// ExitCode returns the exit code after Wait, or -1.
func (p *Process) ExitCode() int {
	if p.err != nil || p.cmd.ProcessState == nil {
		return -1
	}
	return p.cmd.ProcessState.ExitCode()
}

// ExitCodeOf extracts the exit code from an error returned by Wait.
// It returns 0 for nil and 1 for errors that carry no exit status.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

// failedStream stands in for the pipes of a process that never started.
type failedStream struct {
	err error
}

func (f failedStream) Read([]byte) (int, error)  { return 0, f.err }
func (f failedStream) Write([]byte) (int, error) { return 0, f.err }
func (f failedStream) Close() error              { return nil }
