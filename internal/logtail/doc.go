// Package logtail reads JSON log input line by line.
//
// # Overview
//
// The pipeline pulls one line at a time so output can start before the input
// ends. Reader wraps any io.Reader (a file or standard input) and numbers the
// lines from 1. Line numbers are what diagnostics point at, so they always
// refer to the physical line in the source, blank lines included.
//
// # Line Handling
//
//   - Lines end at '\n'; a trailing '\r' is removed as well.
//   - A final line without a terminator is still returned.
//   - There is no line length limit.
//
// # Read Failures
//
// An I/O error is returned once, paired with the number of the line that
// could not be read. The Reader then reports io.EOF so a failing device is
// never polled in a loop.
//
// # Tail Window
//
// Tail keeps the last N lines of an input using a ring buffer of size N:
//
//  1. Allocate a ring of N slots
//  2. For each line, store it at the current index and advance (wrapping)
//  3. At the end, return the ring starting from the oldest slot
//
// Memory use is O(N) regardless of input size. The lines keep their original
// numbers, so diagnostics for a tailed file still match the file.
package logtail
