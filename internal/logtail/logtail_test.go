package logtail

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/five82/jlcat/internal/entry"
)

func collect(t *testing.T, next func() (entry.RawLine, error)) ([]entry.RawLine, error) {
	t.Helper()
	var lines []entry.RawLine
	for i := 0; i < 10000; i++ {
		line, err := next()
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
	}
	t.Fatalf("source did not reach EOF")
	return nil, nil
}

func TestReader_NumbersLines(t *testing.T) {
	input := "first\n\nthird\r\n  \nlast"
	lines, err := collect(t, NewReader(strings.NewReader(input)).Next)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	want := []entry.RawLine{
		{Number: 1, Text: "first"},
		{Number: 2, Text: ""},
		{Number: 3, Text: "third"},
		{Number: 4, Text: "  "},
		{Number: 5, Text: "last"},
	}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("lines = %#v, want %#v", lines, want)
	}
}

func TestReader_TrailingNewlineAddsNoLine(t *testing.T) {
	lines, err := collect(t, NewReader(strings.NewReader("a\nb\n")).Next)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
}

func TestReader_LongLines(t *testing.T) {
	long := strings.Repeat("x", 3*1024*1024)
	lines, err := collect(t, NewReader(strings.NewReader(long+"\nshort\n")).Next)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if len(lines) != 2 || len(lines[0].Text) != len(long) || lines[1].Text != "short" {
		t.Fatalf("long line not read intact: %d lines", len(lines))
	}
}

type failingReader struct {
	data []byte
	err  error
}

func (f *failingReader) Read(p []byte) (int, error) {
	if len(f.data) > 0 {
		n := copy(p, f.data)
		f.data = f.data[n:]
		return n, nil
	}
	return 0, f.err
}

func TestReader_ReadErrorIsReportedOnce(t *testing.T) {
	boom := errors.New("simulated error")
	r := NewReader(&failingReader{data: []byte("ok\n"), err: boom})

	line, err := r.Next()
	if err != nil || line.Text != "ok" {
		t.Fatalf("first Next() = %#v, %v", line, err)
	}
	line, err = r.Next()
	if !errors.Is(err, boom) {
		t.Fatalf("second Next() error = %v, want %v", err, boom)
	}
	if line.Number != 2 {
		t.Fatalf("failed line number = %d, want 2", line.Number)
	}
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("Next() after failure = %v, want io.EOF", err)
	}
}

func TestReader_PartialLineBeforeErrorIsDropped(t *testing.T) {
	boom := errors.New("simulated error")
	r := NewReader(&failingReader{data: []byte("ok\n{\"timestamp\":"), err: boom})

	if _, err := r.Next(); err != nil {
		t.Fatalf("first Next() error = %v", err)
	}
	line, err := r.Next()
	if !errors.Is(err, boom) {
		t.Fatalf("second Next() error = %v, want %v", err, boom)
	}
	if line.Number != 2 || line.Text != "" {
		t.Fatalf("failed line = %#v, want number 2 with no text", line)
	}
}

func TestTail(t *testing.T) {
	var content strings.Builder
	var all []entry.RawLine
	for i := 1; i <= 10; i++ {
		text := fmt.Sprintf("Line %d", i)
		content.WriteString(text + "\n")
		all = append(all, entry.RawLine{Number: i, Text: text})
	}

	tests := []struct {
		name     string
		maxLines int
		expected []entry.RawLine
	}{
		{"read all (0)", 0, all},
		{"read all (negative)", -1, all},
		{"read partial (5)", 5, all[5:]},
		{"read exactly all (10)", 10, all},
		{"read more than exists (20)", 20, all},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replay := Tail(strings.NewReader(content.String()), tt.maxLines)
			if replay.Len() != len(tt.expected) {
				t.Fatalf("Len() = %d, want %d", replay.Len(), len(tt.expected))
			}
			got, err := collect(t, replay.Next)
			if err != nil {
				t.Fatalf("Next() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tail() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTail_ReplaysReadError(t *testing.T) {
	boom := errors.New("disk gone")
	replay := Tail(&failingReader{data: []byte("a\nb\nc\n"), err: boom}, 2)

	got, err := collect(t, replay.Next)
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want %v", err, boom)
	}
	want := []entry.RawLine{{Number: 2, Text: "b"}, {Number: 3, Text: "c"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %v, want %v", got, want)
	}
	if _, err := replay.Next(); err != io.EOF {
		t.Fatalf("Next() after error = %v, want io.EOF", err)
	}
}

func TestNewReplay(t *testing.T) {
	lines := []entry.RawLine{{Number: 7, Text: "x"}}
	got, err := collect(t, NewReplay(lines).Next)
	if err != nil || !reflect.DeepEqual(got, lines) {
		t.Fatalf("NewReplay lines = %v, %v", got, err)
	}
}
