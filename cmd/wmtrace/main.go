// Package main is the entry point for wmtrace, a terminal front end for the
// window manager event pipeline.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/dshills/wmevent/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type cliOptions struct {
	app.Options
	scenePath    string
	replay       string
	listSessions bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts.Options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.listSessions {
		return listSessions(ctx, application)
	}

	if opts.scenePath != "" {
		raw, err := os.ReadFile(opts.scenePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if err := application.ReloadScene(raw); err != nil {
			fmt.Fprintf(os.Stderr, "Error: load scene: %v\n", err)
			return 1
		}
	}

	if opts.replay != "" {
		id, err := uuid.Parse(opts.replay)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid session %q: %v\n", opts.replay, err)
			return 1
		}
		if _, err := application.Replay(ctx, id); err != nil {
			fmt.Fprintf(os.Stderr, "Error: replay: %v\n", err)
			return 1
		}
	}

	scr, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetScreen(scr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set screen: %v\n", err)
		return 1
	}

	if err := application.Run(ctx); err != nil {
		if app.IsQuit(err) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func listSessions(ctx context.Context, application *app.Application) int {
	sessions, err := application.Sessions(ctx)
	if errors.Is(err, app.ErrNoJournal) {
		fmt.Fprintln(os.Stderr, "Error: -sessions needs -journal")
		return 1
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	for _, s := range sessions {
		fmt.Printf("%s  %-16s %s  %d events\n", s.ID, s.Name, s.Started.Format("2006-01-02 15:04:05"), s.Events)
	}
	return 0
}

func parseFlags() cliOptions {
	var opts cliOptions
	var showVersion bool

	flag.StringVar(&opts.PrefsPath, "prefs", "", "Path to the preferences file (TOML)")
	flag.StringVar(&opts.PrefsPath, "p", "", "Path to the preferences file (shorthand)")
	flag.BoolVar(&opts.Watch, "watch", false, "Reload the preferences file when it changes")
	flag.Func("keymap", "Keymap file (YAML) to merge over the defaults; repeatable", func(s string) error {
		opts.KeymapFiles = append(opts.KeymapFiles, s)
		return nil
	})
	flag.StringVar(&opts.JournalPath, "journal", "", "Record handled events to this SQLite journal")
	flag.StringVar(&opts.JournalPath, "j", "", "Journal path (shorthand)")
	flag.StringVar(&opts.Session, "session", "", "Name of the recorded session")
	flag.StringVar(&opts.replay, "replay", "", "Replay the journal session with this ID before starting")
	flag.BoolVar(&opts.listSessions, "sessions", false, "List the journal sessions and exit")
	flag.StringVar(&opts.scenePath, "scene", "", "Load the scene document from a JSON file")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the preferences")
	flag.StringVar(&opts.LogPath, "log-file", "", "Write the log to this file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "wmtrace - window manager event pipeline in a terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: wmtrace [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  wmtrace -log-file wm.log -log-level debug\n")
		fmt.Fprintf(os.Stderr, "  wmtrace -j events.db -session demo\n")
		fmt.Fprintf(os.Stderr, "  wmtrace -j events.db -sessions\n")
		fmt.Fprintf(os.Stderr, "  wmtrace -j events.db -replay <session-id>\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("wmtrace %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch strings.ToLower(opts.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}
	if opts.replay != "" && opts.JournalPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -replay needs -journal")
		os.Exit(1)
	}

	return opts
}
