// Package severity maps free-text log levels to an ordered severity and a
// fixed-width abbreviation for display.
package severity

import "strings"

// Level is the severity of a log entry. Known levels are ordered from Trace
// to Fatal; Unknown sits outside that order.
type Level int

const (
	Unknown Level = iota
	Trace
	Debug
	Info
	Warn
	Error
	Fatal
)

var names = [...]string{
	Unknown: "unknown",
	Trace:   "trace",
	Debug:   "debug",
	Info:    "info",
	Warn:    "warn",
	Error:   "error",
	Fatal:   "fatal",
}

var abbreviations = [...]string{
	Trace: "trc",
	Debug: "dbg",
	Info:  "inf",
	Warn:  "wrn",
	Error: "err",
	Fatal: "ftl",
}

// lookup is keyed by the lower-cased level text.
var lookup = map[string]Level{
	"trace":   Trace,
	"verbose": Trace,
	"silly":   Trace,
	"debug":   Debug,
	"info":    Info,
	"warn":    Warn,
	"warning": Warn,
	"error":   Error,
	"fatal":   Fatal,
}

// Levels lists the known levels in ascending order.
func Levels() []Level {
	return []Level{Trace, Debug, Info, Warn, Error, Fatal}
}

// Classify maps level text to its Level and display abbreviation. Matching
// ignores case. Unrecognised text yields Unknown and the text itself as the
// abbreviation.
func Classify(text string) (Level, string) {
	if lvl, ok := lookup[strings.ToLower(text)]; ok {
		return lvl, abbreviations[lvl]
	}
	return Unknown, text
}

func (l Level) String() string {
	if l < 0 || int(l) >= len(names) {
		return names[Unknown]
	}
	return names[l]
}

// Known reports whether l takes part in the severity order.
func (l Level) Known() bool {
	return l > Unknown && l <= Fatal
}

// Compare returns -1, 0 or +1 as l is less than, equal to or greater than
// other. ok is false when either level is Unknown.
func (l Level) Compare(other Level) (cmp int, ok bool) {
	if !l.Known() || !other.Known() {
		return 0, false
	}
	switch {
	case l < other:
		return -1, true
	case l > other:
		return 1, true
	default:
		return 0, true
	}
}
