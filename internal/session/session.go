// Package session detects the start of a new logging session from the
// message text of entries.
package session

import "strings"

// Tracker watches entry messages for a configured prefix. A Tracker belongs
// to a single pipeline run.
type Tracker struct {
	marker string
	count  int
}

// New returns a Tracker for marker. An empty marker disables detection.
func New(marker string) *Tracker {
	return &Tracker{marker: marker}
}

// Observe reports whether message starts a new session. Every match counts,
// including one on the very first entry. The prefix match is exact.
func (t *Tracker) Observe(message string) bool {
	if t == nil || t.marker == "" {
		return false
	}
	if !strings.HasPrefix(message, t.marker) {
		return false
	}
	t.count++
	return true
}

// Count returns the number of session starts seen so far.
func (t *Tracker) Count() int {
	if t == nil {
		return 0
	}
	return t.count
}
