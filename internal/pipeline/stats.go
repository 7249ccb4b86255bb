package pipeline

import (
	"errors"

	"github.com/five82/jlcat/internal/entry"
	"github.com/five82/jlcat/internal/severity"
)

// Stats summarises a run.
type Stats struct {
	Lines        int // lines read successfully
	Entries      int
	Empty        int
	SyntaxErrors int
	SchemaErrors int
	Sessions     int
	ByLevel      map[severity.Level]int
}

func newStats() Stats {
	return Stats{ByLevel: make(map[severity.Level]int)}
}

// ParseErrors returns the number of lines that were not valid log records.
func (s Stats) ParseErrors() int {
	return s.SyntaxErrors + s.SchemaErrors
}

func (s *Stats) record(l severity.Level) {
	s.Entries++
	s.ByLevel[l]++
}

func (s *Stats) countParseError(err error) {
	if errors.Is(err, entry.ErrSyntax) {
		s.SyntaxErrors++
		return
	}
	s.SchemaErrors++
}
