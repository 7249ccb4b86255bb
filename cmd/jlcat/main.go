package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/five82/jlcat/internal/app"
	"github.com/five82/jlcat/internal/render"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	fs := flag.NewFlagSet("jlcat", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: jlcat [flags] [FILE]\n\n")
		fmt.Fprintf(os.Stderr, "Show JSON log lines in a human-friendly format. FILE '-' or no FILE reads standard input.\n\n")
		fs.PrintDefaults()
	}

	skipEmpty := fs.Bool("skip-empty-lines", false, "do not report runs of empty input lines")
	sessionStart := fs.StringP("session-start", "s", "", "start a new session when the message starts with this text")
	noExtras := fs.Bool("no-extras", false, "hide fields other than timestamp, level and message")
	color := fs.String("color", "", "colorize output: auto, always or never (default auto)")
	theme := fs.String("theme", "", fmt.Sprintf("color theme: %v", render.ThemeNames()))
	tail := fs.IntP("tail", "n", 0, "show only the last N input lines")
	usePager := fs.BoolP("pager", "p", false, "page output when stdout is a terminal; reads the whole input before showing anything")
	configPath := fs.String("config", "", "override config path (default ~/.config/jlcat/config.toml)")
	logLevel := fs.String("log-level", "", "level for jlcat's own messages on stderr (default warn)")
	showVersion := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Printf("jlcat %s\n", version)
		return 0
	}
	if fs.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "jlcat: expected at most one FILE, got %d\n", fs.NArg())
		return 2
	}
	if *tail < 0 {
		fmt.Fprintf(os.Stderr, "jlcat: --tail must not be negative\n")
		return 2
	}

	// Writes to a closed stdout then fail with EPIPE, which app.Run treats
	// as a normal end of output, instead of the runtime killing the process.
	signal.Ignore(syscall.SIGPIPE)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		Path:       fs.Arg(0),
		ConfigPath: *configPath,
		Color:      *color,
		Theme:      *theme,
		LogLevel:   *logLevel,
		Tail:       *tail,
		Pager:      *usePager,
	}
	// Only flags given on the command line override the config file.
	if fs.Changed("skip-empty-lines") {
		opts.SkipEmptyLines = skipEmpty
	}
	if fs.Changed("session-start") {
		opts.SessionStart = sessionStart
	}
	if fs.Changed("no-extras") {
		opts.NoExtras = noExtras
	}

	if err := app.Run(ctx, opts); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		fmt.Fprintf(os.Stderr, "jlcat: %v\n", err)
		return 1
	}
	return 0
}
