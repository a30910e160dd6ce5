// Package logging sets up the zerolog logger shared by every hook.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options selects level, format and destination.
type Options struct {
	Level  string    // trace, debug, info, warn, error; empty means info
	Format string    // "console" or "json"
	Out    io.Writer // defaults to os.Stderr
}

// New builds a logger. Console output is human-readable; JSON output is
// for hosts that collect structured logs.
func New(opts Options) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	var w io.Writer
	switch opts.Format {
	case "", "console":
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	case "json":
		w = out
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q", opts.Format)
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// NewRunID returns an identifier shared by all log lines of one run.
func NewRunID() string {
	return uuid.NewString()
}

// WithRun tags every entry with the run ID.
func WithRun(log zerolog.Logger, runID string) zerolog.Logger {
	return log.With().Str("run_id", runID).Logger()
}

// ForHook tags every entry with the hook name.
func ForHook(log zerolog.Logger, hook string) zerolog.Logger {
	return log.With().Str("hook", hook).Logger()
}
