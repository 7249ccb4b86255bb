// Package logging builds the zerolog logger jlcat uses for its own
// diagnostics. Formatted log output never goes through it; it only reports
// what the tool itself is doing, on stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel keeps the tool quiet unless something goes wrong.
const DefaultLevel = "warn"

// Config selects where and how much to log.
type Config struct {
	Level   string
	Output  io.Writer // nil means os.Stderr
	NoColor bool
}

// New returns a console logger for cfg. An unrecognised level is an error.
func New(cfg Config) (zerolog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	console := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    cfg.NoColor,
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(console).
		Level(level).
		With().
		Timestamp().
		Str("component", "jlcat").
		Logger(), nil
}

// ParseLevel accepts zerolog level names, ignoring case and surrounding
// space. An empty string yields DefaultLevel.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		s = DefaultLevel
	}
	if s == "warning" {
		s = "warn"
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
