// Package logging provides the structured loggers shared by the client, the
// gateway server and the command line tools.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a zerolog logger scoped to a subsystem.
type Logger struct {
	zl zerolog.Logger
}

// New creates a root logger. A nil w writes human readable lines to stderr.
// Unknown levels fall back to info; validate user input with ParseLevel.
func New(w io.Writer, level string) *Logger {
	if w == nil {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	lvl, err := ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	return &Logger{zl: zerolog.New(w).Level(lvl).With().Timestamp().Logger()}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// Sub returns a child logger tagged with a subsystem name.
func (l *Logger) Sub(subsystem string) *Logger {
	return l.With("subsystem", subsystem)
}

// With returns a child logger carrying an extra string field.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{zl: l.zl.With().Str(key, value).Logger()}
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }

// Fatal logs at fatal level and exits the process once the event is sent.
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// ParseLevel maps a LOG_LEVEL value to a zerolog level. Matching is case
// insensitive, an empty value means info and "silent" or "off" disable
// logging.
func ParseLevel(s string) (zerolog.Level, error) {
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case "":
		return zerolog.InfoLevel, nil
	case "silent", "off":
		return zerolog.Disabled, nil
	case "warning":
		return zerolog.WarnLevel, nil
	}

	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "disabled" || s == "panic" {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}
