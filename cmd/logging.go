package cmd

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger creates a logger writing to w with the specified level and
// format. The console format is meant for humans on a terminal.
func NewLogger(level, format string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}

	if format != "json" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// newStderrLogger creates the logger of the CLI from its configuration.
func newStderrLogger(c LoggingConfig) zerolog.Logger {
	return NewLogger(c.Level, c.Format, os.Stderr)
}
