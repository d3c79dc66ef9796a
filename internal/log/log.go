// Package log configures structured logging for triage using log/slog.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Level returns the minimum level for the verbosity flags:
//
//   - quiet mode:   only WARN and ERROR messages
//   - normal mode:  INFO and above
//   - verbose mode: DEBUG and above
//
// Quiet wins when both are set.
func Level(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelWarn
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Setup configures the default slog logger based on verbosity flags.
// Output is written to stderr using slog.TextHandler.
func Setup(verbose, quiet bool) {
	SetupWriter(os.Stderr, verbose, quiet)
}

// SetupWriter is Setup with a custom destination. The terminal UI sends
// logs to a file or io.Discard so they do not draw over the screen.
func SetupWriter(w io.Writer, verbose, quiet bool) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: Level(verbose, quiet),
	})
	slog.SetDefault(slog.New(handler))
}
