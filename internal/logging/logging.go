// ABOUTME: Structured logger construction for minigram commands.
// ABOUTME: Builds a leveled zerolog logger writing to a log file or a fallback writer.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options selects the log level and destination.
type Options struct {
	Level string // trace, debug, info, warn, error; empty means info
	File  string // append to this file when set
}

// New returns a logger and a closer for the underlying file.
// When no file is configured the logger writes to fallback; pass io.Discard
// from full-screen commands so log lines never reach the terminal.
func New(opts Options, fallback io.Writer) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	var out io.Writer = fallback
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0750); err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closer = f
	} else if fallback == os.Stderr || fallback == os.Stdout {
		out = zerolog.ConsoleWriter{Out: fallback, TimeFormat: time.Kitchen}
	}
	if out == nil {
		out = io.Discard
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}

// ParseLevel maps a config string to a zerolog level.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
