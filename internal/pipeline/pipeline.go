// Package pipeline drives log lines through parsing, session detection,
// classification and formatting, one line at a time and in input order.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/five82/jlcat/internal/entry"
	"github.com/five82/jlcat/internal/render"
	"github.com/five82/jlcat/internal/session"
	"github.com/five82/jlcat/internal/severity"
)

// LineSource supplies input lines. Next returns io.EOF at the end of input;
// any other error is a read failure for the returned line number.
type LineSource interface {
	Next() (entry.RawLine, error)
}

// Formatter renders processed lines.
type Formatter interface {
	Format(rec render.Record) []string
	EmptyRun(n int) []string
}

// Options configure a run.
type Options struct {
	// SessionStart enables session separators for messages with this prefix.
	SessionStart string
}

// ReadError reports that the input itself failed. Lines before it have
// already been written.
type ReadError struct {
	Line int
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read line %d: %v", e.Line, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Run processes src until it is exhausted and writes every rendered line to
// out before reading the next input line. Parse failures are rendered and
// skipped. A read failure is rendered, then returned as *ReadError. A write
// failure or a cancelled ctx stops the run.
func Run(ctx context.Context, src LineSource, f Formatter, out io.Writer, opts Options) (Stats, error) {
	stats := newStats()
	tracker := session.New(opts.SessionStart)
	blank := 0

	emit := func(lines []string) error {
		if len(lines) == 0 {
			return nil
		}
		if _, err := io.WriteString(out, strings.Join(lines, "\n")+"\n"); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		if fl, ok := out.(interface{ Flush() error }); ok {
			if err := fl.Flush(); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		raw, err := src.Next()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}

		var rec render.Record
		if err != nil {
			rec.Outcome = entry.ReadFailure(raw.Number, err)
		} else {
			stats.Lines++
			rec.Outcome = entry.Parse(raw)
		}

		if rec.Outcome.Kind == entry.KindEmpty {
			stats.Empty++
			blank++
			continue
		}

		var lines []string
		if blank > 0 {
			lines = append(lines, f.EmptyRun(blank)...)
			blank = 0
		}

		switch rec.Outcome.Kind {
		case entry.KindEntry:
			e := rec.Outcome.Entry
			rec.NewSession = tracker.Observe(e.Message)
			rec.Level, rec.Abbrev = severity.Classify(e.Level)
			stats.record(rec.Level)
		case entry.KindParseError:
			stats.countParseError(rec.Outcome.Err)
		}
		stats.Sessions = tracker.Count()

		lines = append(lines, f.Format(rec)...)
		if werr := emit(lines); werr != nil {
			return stats, werr
		}

		if rec.Outcome.Kind == entry.KindReadError {
			return stats, &ReadError{Line: raw.Number, Err: err}
		}
	}
}
