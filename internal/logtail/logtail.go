package logtail

import (
	"bufio"
	"io"
	"strings"

	"github.com/five82/jlcat/internal/entry"
)

// Reader yields numbered lines from an input stream. Lines may be of any
// length. After the first read failure it reports io.EOF.
type Reader struct {
	br   *bufio.Reader
	line int
	done bool
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, 64*1024)}
}

// Next returns the next line without its line terminator. At the end of
// input it returns io.EOF. Any other error is an I/O failure on the line
// returned alongside it; its text is empty.
func (r *Reader) Next() (entry.RawLine, error) {
	if r.done {
		return entry.RawLine{}, io.EOF
	}

	text, err := r.br.ReadString('\n')
	switch {
	case err == nil:
	case err == io.EOF:
		r.done = true
		if text == "" {
			return entry.RawLine{}, io.EOF
		}
	default:
		// A partial line read before the failure is dropped; it cannot be
		// parsed reliably and the diagnostic only needs its number.
		r.done = true
		r.line++
		return entry.RawLine{Number: r.line}, err
	}

	r.line++
	return entry.RawLine{Number: r.line, Text: trimEOL(text)}, nil
}

// Tail reads r to the end and keeps only the last maxLines lines with their
// original line numbers. maxLines <= 0 keeps every line. A read failure
// stops reading; the Replay yields it after the lines kept so far.
func Tail(r io.Reader, maxLines int) *Replay {
	src := NewReader(r)
	if maxLines <= 0 {
		var lines []entry.RawLine
		for {
			line, err := src.Next()
			if err != nil {
				return newReplay(lines, line, err)
			}
			lines = append(lines, line)
		}
	}

	ring := make([]entry.RawLine, maxLines)
	count := 0
	idx := 0
	for {
		line, err := src.Next()
		if err != nil {
			lines := make([]entry.RawLine, count)
			if count == maxLines {
				for i := 0; i < count; i++ {
					lines[i] = ring[(idx+i)%maxLines]
				}
			} else {
				copy(lines, ring[:count])
			}
			return newReplay(lines, line, err)
		}
		ring[idx] = line
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
}

// Replay yields a fixed set of lines, then the read failure that ended them
// if there was one, then io.EOF.
type Replay struct {
	lines   []entry.RawLine
	pos     int
	errLine entry.RawLine
	err     error
}

func newReplay(lines []entry.RawLine, errLine entry.RawLine, err error) *Replay {
	if err == io.EOF {
		err = nil
	}
	return &Replay{lines: lines, errLine: errLine, err: err}
}

// NewReplay returns a Replay over lines.
func NewReplay(lines []entry.RawLine) *Replay {
	return &Replay{lines: lines}
}

// Len returns the number of lines held.
func (r *Replay) Len() int {
	return len(r.lines)
}

// Next implements the pipeline's line source.
func (r *Replay) Next() (entry.RawLine, error) {
	if r.pos < len(r.lines) {
		line := r.lines[r.pos]
		r.pos++
		return line, nil
	}
	if r.err != nil {
		err := r.err
		r.err = nil
		return r.errLine, err
	}
	return entry.RawLine{}, io.EOF
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
