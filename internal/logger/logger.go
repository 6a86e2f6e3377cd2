package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the process logger, replaced by Init.
var Logger = slog.Default()

// Init installs a text logger on stdout as the process default.
func Init(debug bool) *slog.Logger {
	return InitWriter(os.Stdout, debug)
}

// InitWriter is Init with an explicit destination.
func InitWriter(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	Logger = slog.New(slog.NewTextHandler(w, opts))
	slog.SetDefault(Logger)
	return Logger
}
