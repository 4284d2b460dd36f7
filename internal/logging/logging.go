// Package logging builds the structured logger used for debug traces.
package logging

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects where debug logs go. With neither field set, logs are
// discarded.
type Config struct {
	// Debug writes text logs to the stderr writer passed to New.
	Debug bool
	// File writes JSON logs to a size-rotated file. Takes precedence
	// over Debug.
	File string
}

// New returns a logger for cfg and a function that releases its output.
func New(cfg Config, stderr io.Writer) (*slog.Logger, func() error) {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}

	if cfg.File != "" {
		out := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
		}
		return slog.New(slog.NewJSONHandler(out, opts)), out.Close
	}

	if cfg.Debug {
		return slog.New(slog.NewTextHandler(stderr, opts)), nop
	}

	return slog.New(slog.DiscardHandler), nop
}

func nop() error { return nil }
