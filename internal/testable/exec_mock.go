package testable

import (
	"context"
	"errors"
	"strings"
)

// MockCommandExecutor records the commands it is asked to run instead of
// running them.
type MockCommandExecutor struct {
	// LookPathErr, when non-nil, is returned by LookPath for any file.
	LookPathErr error

	// Errors maps a command line (name and args joined by spaces) to the
	// error Run returns for it.
	Errors map[string]error

	// DefaultError, when non-empty, makes every unmatched command fail
	// with that message.
	DefaultError string

	// Calls records each command line passed to Run.
	Calls []string
}

// LookPath pretends every program lives in /usr/bin unless LookPathErr is set.
func (m *MockCommandExecutor) LookPath(file string) (string, error) {
	if m.LookPathErr != nil {
		return "", m.LookPathErr
	}
	return "/usr/bin/" + file, nil
}

// Run records the command line and returns the configured error, if any.
func (m *MockCommandExecutor) Run(ctx context.Context, _ Streams, name string, args ...string) error {
	key := strings.Join(append([]string{name}, args...), " ")
	m.Calls = append(m.Calls, key)
	if err := ctx.Err(); err != nil {
		return err
	}
	if err, ok := m.Errors[key]; ok {
		return err
	}
	if m.DefaultError != "" {
		return errors.New(m.DefaultError)
	}
	return nil
}
