package cli

import (
	"io"
	"log/slog"
)

// newLogger creates a logger for one command run. It does not set the
// global logger. Verbose enables debug records.
func newLogger(verbose bool, formatStr string, outW io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler)
}

// commandLogger builds the logger for cmd from the root flags.
func commandLogger(opts *RootOptions, errW io.Writer) *slog.Logger {
	return newLogger(opts.Verbose, opts.LogFormat, errW)
}
