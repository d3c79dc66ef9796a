package main

import (
	"errors"
	"fmt"

	"github.com/davetashner/triage/internal/report"
	"github.com/davetashner/triage/internal/source"
)

// Exit codes for the triage CLI.
const (
	ExitOK             = 0 // Success, including an empty report.
	ExitInvalidArgs    = 1 // Invalid arguments, unknown issue, bad config.
	ExitParseFailure   = 2 // The report could not be decoded.
	ExitNetworkFailure = 3 // A download or API call failed.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
// An empty msg means the problem was already reported to the user and main
// prints nothing.
type exitCodeError struct {
	code int
	msg  string
	err  error
}

func (e *exitCodeError) Error() string {
	if e.msg == "" && e.err != nil {
		return e.err.Error()
	}
	return e.msg
}

func (e *exitCodeError) Unwrap() error { return e.err }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitParseFailure:
			msg = "triage: report could not be parsed"
		case ExitNetworkFailure:
			msg = "triage: network request failed"
		default:
			msg = "triage: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}

// classify attaches the exit code matching err. Errors that already carry
// a code are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ece *exitCodeError
	if errors.As(err, &ece) {
		return err
	}
	code := ExitInvalidArgs
	var pe *report.ParseError
	switch {
	case errors.As(err, &pe):
		code = ExitParseFailure
	case source.IsNetwork(err):
		code = ExitNetworkFailure
	}
	return &exitCodeError{code: code, msg: err.Error(), err: err}
}

// ingestError maps the result of loading a report. An empty report is a
// warning, not a failure. Parse and download failures were already shown as
// a dashboard notice, so they exit silently with their code, unless --quiet
// hid the notice; then the error itself is printed.
func ingestError(err error) error {
	var (
		pe  *report.ParseError
		msg string
	)
	if quiet && err != nil {
		msg = err.Error()
	}
	switch {
	case err == nil, errors.Is(err, report.ErrEmptyInput):
		return nil
	case errors.As(err, &pe):
		return &exitCodeError{code: ExitParseFailure, msg: msg, err: err}
	case source.IsNetwork(err):
		return &exitCodeError{code: ExitNetworkFailure, msg: msg, err: err}
	}
	return classify(err)
}
