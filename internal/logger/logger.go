// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"log/slog"
)

// Log is the global logger. It discards everything until Setup is called.
var Log = slog.New(slog.DiscardHandler)

// Setup initializes the global logger writing to w.
// Verbose enables debug output; json selects the JSON handler instead of text.
func Setup(w io.Writer, verbose, json bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
	return Log
}
