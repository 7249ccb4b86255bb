// Package app is the composition root for jlcat.
//
// # Overview
//
// Run wires together configuration, the input source, terminal probing, the
// formatter and the pipeline. Everything stateful is created per call; there
// are no package-level singletons.
//
// # Startup Sequence
//
//  1. Load ~/.config/jlcat/config.toml (or --config) and merge the flags
//     that were set explicitly on top of it
//  2. Build the zerolog logger for jlcat's own diagnostics on stderr
//  3. Open the input file, or standard input for "-"
//  4. Optionally read the whole input into a tail window (--tail N)
//  5. Decide on colours: --color always/never, or auto, which colours only
//     a terminal and honours NO_COLOR
//  6. Run the pipeline to stdout, or into a buffer handed to the pager.
//     The pager only opens once the input has ended, so it is not suited to
//     a stdin that never closes
//
// # Output and Errors
//
// Stdout is wrapped in a bufio.Writer that the pipeline flushes after every
// input line, so output keeps pace with a slow or live input. A closed
// stdout (EPIPE, e.g. piping into head) ends the run without an error;
// main ignores SIGPIPE so such writes fail instead of killing the process. A
// read failure on the input is returned after its diagnostic has been
// printed, which makes the process exit non-zero.
package app
