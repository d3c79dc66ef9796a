// Package testable provides interfaces for mocking external dependencies
// such as the file system, git repositories and child processes in tests.
package testable

import (
	"context"
	"io"
	"os/exec"
)

// Streams are the standard streams attached to a child process.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// CommandExecutor finds and runs external programs, so callers such as the
// editor launcher can be tested without starting a real program.
type CommandExecutor interface {
	// LookPath searches for an executable named file in the directories
	// named by the PATH environment variable.
	LookPath(file string) (string, error)

	// Run starts name with args attached to s and waits for it to exit.
	// Cancelling ctx kills the process.
	Run(ctx context.Context, s Streams, name string, args ...string) error
}

type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Run(ctx context.Context, s Streams, name string, args ...string) error {
	c := exec.CommandContext(ctx, name, args...) //nolint:gosec // the user picks the editor
	c.Stdin, c.Stdout, c.Stderr = s.Stdin, s.Stdout, s.Stderr
	return c.Run()
}

// DefaultExecutor returns a CommandExecutor backed by os/exec.
func DefaultExecutor() CommandExecutor {
	return osExecutor{}
}
