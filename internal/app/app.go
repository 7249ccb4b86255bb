package app

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/five82/jlcat/internal/config"
	"github.com/five82/jlcat/internal/logging"
	"github.com/five82/jlcat/internal/logtail"
	"github.com/five82/jlcat/internal/pager"
	"github.com/five82/jlcat/internal/pipeline"
	"github.com/five82/jlcat/internal/render"
)

// StdinName names standard input in diagnostics.
const StdinName = "<stdin>"

// Options configure a jlcat run. Pointer fields are nil when the matching
// flag was not given, so the config file value applies.
type Options struct {
	Path       string // input file; "" or "-" reads standard input
	ConfigPath string // empty uses ~/.config/jlcat/config.toml

	SkipEmptyLines *bool
	SessionStart   *string
	NoExtras       *bool
	Color          string // auto, always or never; empty uses config
	Theme          string
	LogLevel       string

	Tail  int  // keep only the last N lines; zero reads everything
	Pager bool // page output when stdout is a terminal

	Stdin  io.Reader // nil means os.Stdin
	Stdout io.Writer // nil means os.Stdout
	Stderr io.Writer // nil means os.Stderr
}

// settings is the result of merging the config file with flags.
type settings struct {
	skipEmpty    bool
	sessionStart string
	showExtras   bool
	color        string
	theme        string
	logLevel     string
}

// Run renders the input until it ends, ctx is cancelled or output fails.
func Run(ctx context.Context, opts Options) error {
	stdin, stdout, stderr := opts.Stdin, opts.Stdout, opts.Stderr
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	s, err := resolve(cfg, opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		Level:   s.logLevel,
		Output:  stderr,
		NoColor: !isTerminal(stderr),
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	source, input, closeInput, err := openInput(opts.Path, stdin)
	if err != nil {
		return err
	}
	defer closeInput()

	var lines pipeline.LineSource
	if opts.Tail > 0 {
		replay := logtail.Tail(input, opts.Tail)
		logger.Debug().Int("kept", replay.Len()).Int("tail", opts.Tail).Msg("tail window loaded")
		lines = replay
	} else {
		lines = logtail.NewReader(input)
	}

	stdoutTTY := isTerminal(stdout)
	useColor := colorEnabled(s.color, stdoutTTY)
	profile := colorProfile(stdout, useColor)

	theme, ok := render.GetTheme(s.theme)
	if !ok {
		logger.Warn().
			Str("theme", s.theme).
			Strs("available", render.ThemeNames()).
			Msg("unknown theme, using default")
	}

	formatter := render.New(theme, profile, render.Options{
		Source:        source,
		ShowExtras:    s.showExtras,
		SkipEmpty:     s.skipEmpty,
		SessionMarker: s.sessionStart,
	})
	pipeOpts := pipeline.Options{SessionStart: s.sessionStart}

	logger.Debug().
		Str("source", source).
		Str("color", s.color).
		Bool("colors", formatter.Colors()).
		Str("theme", theme.Name).
		Str("session_start", s.sessionStart).
		Msg("starting")

	usePager := opts.Pager && stdoutTTY
	if opts.Pager && !stdoutTTY {
		logger.Warn().Msg("stdout is not a terminal, ignoring --pager")
	}

	if usePager {
		var buf bytes.Buffer
		stats, err := pipeline.Run(ctx, lines, formatter, &buf, pipeOpts)
		logStats(logger, stats)
		if err != nil {
			return runError(source, err)
		}
		rendered := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		return pager.Run(ctx, rendered, pager.Options{Title: source, Color: useColor})
	}

	out := bufio.NewWriter(stdout)
	stats, err := pipeline.Run(ctx, lines, formatter, out, pipeOpts)
	logStats(logger, stats)
	if err != nil {
		if isBrokenPipe(err) {
			logger.Debug().Msg("output closed, stopping")
			return nil
		}
		return runError(source, err)
	}
	return nil
}

func resolve(cfg config.Config, opts Options) (settings, error) {
	s := settings{
		skipEmpty:    cfg.SkipEmptyLines,
		sessionStart: cfg.SessionStart,
		showExtras:   !cfg.NoExtras,
		color:        cfg.Color,
		theme:        cfg.Theme,
		logLevel:     cfg.LogLevel,
	}
	if opts.SkipEmptyLines != nil {
		s.skipEmpty = *opts.SkipEmptyLines
	}
	if opts.SessionStart != nil {
		s.sessionStart = *opts.SessionStart
	}
	if opts.NoExtras != nil {
		s.showExtras = !*opts.NoExtras
	}
	if c := strings.ToLower(strings.TrimSpace(opts.Color)); c != "" {
		if err := config.ValidateColor(c); err != nil {
			return settings{}, err
		}
		s.color = c
	}
	if t := strings.TrimSpace(opts.Theme); t != "" {
		s.theme = t
	}
	if l := strings.TrimSpace(opts.LogLevel); l != "" {
		s.logLevel = l
	}
	if s.color == "" {
		s.color = config.ColorAuto
	}
	return s, nil
}

func openInput(path string, stdin io.Reader) (string, io.Reader, func(), error) {
	if path == "" || path == "-" {
		return StdinName, stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return "", nil, nil, fmt.Errorf("open input: %w", err)
	}
	return path, f, func() { _ = f.Close() }, nil
}

// colorEnabled applies the --color mode. auto colours only a terminal, and
// only when NO_COLOR is unset.
func colorEnabled(mode string, tty bool) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		_, noColor := os.LookupEnv("NO_COLOR")
		return tty && !noColor
	}
}

// colorProfile picks the escape sequences for w. Forced colours on a
// non-terminal get the 256-colour profile since termenv reports Ascii there.
func colorProfile(w io.Writer, enabled bool) termenv.Profile {
	if !enabled {
		return termenv.Ascii
	}
	profile := termenv.NewOutput(w).ColorProfile()
	if profile == termenv.Ascii {
		return termenv.ANSI256
	}
	return profile
}

func isTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE)
}

func runError(source string, err error) error {
	var readErr *pipeline.ReadError
	if errors.As(err, &readErr) {
		return fmt.Errorf("read %s: %w", source, err)
	}
	return err
}

func logStats(logger zerolog.Logger, stats pipeline.Stats) {
	logger.Debug().
		Int("lines", stats.Lines).
		Int("entries", stats.Entries).
		Int("empty", stats.Empty).
		Int("syntax_errors", stats.SyntaxErrors).
		Int("schema_errors", stats.SchemaErrors).
		Int("sessions", stats.Sessions).
		Msg("run complete")
}
