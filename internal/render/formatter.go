package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/five82/jlcat/internal/entry"
	"github.com/five82/jlcat/internal/severity"
)

// Options control what the Formatter emits.
type Options struct {
	// Source names the input in diagnostics, e.g. a file path or <stdin>.
	Source string
	// ShowExtras adds the indented extras line(s) under each entry.
	ShowExtras bool
	// SkipEmpty suppresses the notice for runs of blank input lines.
	SkipEmpty bool
	// SessionMarker is the text shown on session separator lines.
	SessionMarker string
}

// Record is one processed input line ready for display.
type Record struct {
	Outcome    entry.Outcome
	Level      severity.Level
	Abbrev     string
	NewSession bool
}

// Formatter renders records as display lines. With the Ascii colour profile
// it produces plain text.
type Formatter struct {
	opts   Options
	color  bool
	styles Styles
	values valuePrinter
}

// New returns a Formatter using theme. profile selects the escape sequences
// used for colour; termenv.Ascii disables styling entirely.
func New(theme Theme, profile termenv.Profile, opts Options) *Formatter {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)

	if opts.Source == "" {
		opts.Source = "<stdin>"
	}

	f := &Formatter{
		opts:   opts,
		color:  profile != termenv.Ascii,
		styles: theme.Styles(r),
	}
	f.values = valuePrinter{paint: f.paint, styles: f.styles}
	return f
}

// Colors reports whether the formatter emits ANSI styling.
func (f *Formatter) Colors() bool {
	return f.color
}

// Format renders one record. Empty lines render nothing; parse and read
// failures render a single diagnostic line; entries render a header, an
// optional session separator before it and optional extras after it.
func (f *Formatter) Format(rec Record) []string {
	out := rec.Outcome
	switch out.Kind {
	case entry.KindEmpty:
		return nil
	case entry.KindParseError:
		return []string{f.diagnostic(out.Line, out.Err, "")}
	case entry.KindReadError:
		return []string{f.diagnostic(out.Line, out.Err, "read error: ")}
	case entry.KindEntry:
		return f.entry(rec)
	default:
		return []string{f.diagnostic(out.Line, out.Err, "unexpected outcome: ")}
	}
}

// EmptyRun renders the notice for n consecutive blank lines. It returns
// nothing for runs shorter than two lines or when SkipEmpty is set.
func (f *Formatter) EmptyRun(n int) []string {
	if f.opts.SkipEmpty || n < 2 {
		return nil
	}
	return []string{f.paint(f.styles.Notice, fmt.Sprintf("%s: %d empty lines skipped", f.opts.Source, n))}
}

func (f *Formatter) entry(rec Record) []string {
	e := rec.Outcome.Entry
	lines := make([]string, 0, 3)

	if rec.NewSession {
		lines = append(lines, f.session())
	}

	abbrev := rec.Abbrev
	if abbrev == "" && rec.Level == severity.Unknown {
		abbrev = e.Level
	}
	tag := f.paint(f.styles.Level(rec.Level), "["+escapeControl(abbrev)+"]")
	lines = append(lines, escapeControl(shortTime(e.Timestamp))+" "+tag+" "+escapeControl(e.Message))

	if f.opts.ShowExtras {
		lines = append(lines, f.values.extras(e.Extras)...)
	}
	return lines
}

func (f *Formatter) session() string {
	marker := f.opts.SessionMarker
	if marker == "" {
		marker = "new session"
	}
	return f.paint(f.styles.Session, "--- "+escapeControl(marker)+" ---")
}

func (f *Formatter) diagnostic(line int, err error, prefix string) string {
	cause := "unknown error"
	if err != nil {
		cause = err.Error()
	}
	return f.paint(f.styles.Diagnostic, fmt.Sprintf("%s(%d): %s%s", f.opts.Source, line, prefix, cause))
}

// paint applies style to text when colours are enabled. Each line of
// multi-line text is styled on its own so lipgloss never pads them to a
// common width.
func (f *Formatter) paint(style lipgloss.Style, text string) string {
	if !f.color || text == "" {
		return text
	}
	if !strings.Contains(text, "\n") {
		return style.Render(text)
	}
	parts := strings.Split(text, "\n")
	for i, p := range parts {
		if p != "" {
			parts[i] = style.Render(p)
		}
	}
	return strings.Join(parts, "\n")
}
