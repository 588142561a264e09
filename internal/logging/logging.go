// Package logging builds the zerolog logger shared by commands and the TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Mode selects where log output goes.
type Mode int

const (
	// Console writes human-readable lines to stderr.
	Console Mode = iota
	// Fullscreen keeps the terminal free for the TUI: logs go to the
	// configured file or nowhere.
	Fullscreen
)

// Options configures New.
type Options struct {
	Level string
	File  string
	Mode  Mode
}

// New returns a logger and a close function for any file it opened.
func New(opts Options) (zerolog.Logger, func() error, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), nop, fmt.Errorf("parsing log level: %w", err)
		}
		level = l
	}

	var (
		w       io.Writer
		closeFn = nop
	)
	switch {
	case opts.File != "":
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nop, fmt.Errorf("opening log file: %w", err)
		}
		w, closeFn = f, f.Close
	case opts.Mode == Fullscreen:
		return zerolog.Nop(), nop, nil
	default:
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return logger, closeFn, nil
}

func nop() error { return nil }
