package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dshills/wmevent/internal/config"
	"github.com/dshills/wmevent/internal/dispatcher"
	"github.com/dshills/wmevent/internal/dispatcher/execctx"
	"github.com/dshills/wmevent/internal/dispatcher/operator"
	"github.com/dshills/wmevent/internal/input/keymap"
	"github.com/dshills/wmevent/internal/input/mouse"
	"github.com/dshills/wmevent/internal/journal"
	"github.com/dshills/wmevent/internal/platform/tcellsrc"
	"github.com/dshills/wmevent/internal/script"
	"github.com/dshills/wmevent/internal/wm"
	"github.com/dshills/wmevent/internal/wmlog"
)

const (
	// scriptTimeout bounds a single poll expression.
	scriptTimeout = 50 * time.Millisecond
	// statsHistory is how many dispatched operators the status line keeps.
	statsHistory = 16
	// Initial window size until the terminal reports its own.
	defaultWidth  = 80
	defaultHeight = 24
)

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Preferences
	prefs, err := loadPrefs(app.opts.PrefsPath)
	if err != nil {
		return &InitError{Component: "preferences", Err: err}
	}

	// 2. Logging and metrics
	log, closer, err := newLogger(prefs, app.opts)
	if err != nil {
		return &InitError{Component: "logger", Err: err}
	}
	app.log, app.logFile = log, closer

	m, reader, flush, err := newMetrics()
	if err != nil {
		return &InitError{Component: "metrics", Err: err}
	}
	app.metrics, app.reader, app.flush = m, reader, flush

	app.ctx = execctx.New(
		execctx.WithPrefs(prefs),
		execctx.WithLogger(app.log),
		execctx.WithMetrics(app.metrics),
	)

	// 3. Keymaps and operators
	app.scripts = script.NewEngine(script.WithTimeout(scriptTimeout))
	kc, err := app.loadKeyConfig(prefs)
	if err != nil {
		return &InitError{Component: "keymaps", Err: err}
	}
	ops := operator.NewRegistry()
	if err := app.registerOperators(ops); err != nil {
		return &InitError{Component: "operators", Err: err}
	}

	// 4. Journal
	var wmOpts []wm.Option
	if app.opts.JournalPath != "" {
		if err := app.openJournal(); err != nil {
			return &InitError{Component: "journal", Err: err}
		}
		wmOpts = append(wmOpts, wm.WithRecorder(context.Background(), app.recorder))
	}

	// 5. Window manager
	app.manager, err = wm.New(app.ctx, kc, ops, wmOpts...)
	if err != nil {
		return &InitError{Component: "window manager", Err: err}
	}
	stats := dispatcher.NewStats(statsHistory)
	app.manager.Dispatcher().AddPostHook(stats)
	app.status = newStatusLine(stats)
	app.hint = newCursorHint(app.manager)
	app.search = newSearchMenu(app)

	app.scene, err = newScene(app.manager.Store(), nil)
	if err != nil {
		return &InitError{Component: "scene", Err: err}
	}

	app.source = tcellsrc.New()
	app.window, err = app.manager.OpenWindow(mouse.Position{}, defaultWidth, defaultHeight)
	if err != nil {
		return &InitError{Component: "window", Err: err}
	}
	app.installAreas()
	if err := app.installKeymaps(); err != nil {
		return &InitError{Component: "handlers", Err: err}
	}
	if err := app.subscribe(); err != nil {
		return &InitError{Component: "subscriptions", Err: err}
	}

	// 6. Preferences watcher
	if app.opts.Watch && app.opts.PrefsPath != "" {
		app.watcher, err = config.NewWatcher(app.opts.PrefsPath)
		if err != nil {
			// A missing watcher only loses live reload.
			app.log.Channel(wmlog.ChannelConfig).Warn("watch %s: %v", app.opts.PrefsPath, err)
			app.watcher = nil
		}
	}
	return nil
}

// loadPrefs reads the preferences file, or the defaults when path is
// empty, and applies WM_* environment overrides.
func loadPrefs(path string) (*config.Prefs, error) {
	p := config.Default()
	if path != "" {
		var err error
		if p, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if err := config.ApplyEnv(p, os.LookupEnv); err != nil {
		return nil, err
	}
	return p, nil
}

// loadKeyConfig builds the built-in key configuration and merges the
// keymap files of the preferences and the options over it.
func (app *Application) loadKeyConfig(p *config.Prefs) (*keymap.KeyConfig, error) {
	kc := keymap.DefaultKeyConfig()
	loader := keymap.NewLoader(keymap.WithPollCompiler(app.scripts))

	files := append([]string(nil), p.Keymap.Files...)
	files = append(files, app.opts.KeymapFiles...)
	for _, f := range files {
		user, err := loader.LoadFile(f)
		if err != nil {
			return nil, err
		}
		if err := kc.Merge(user); err != nil {
			return nil, fmt.Errorf("merge %s: %w", f, err)
		}
		app.log.Channel(wmlog.ChannelKeymap).Info("loaded %d keymaps from %s", user.Len(), f)
	}
	return kc, nil
}

func (app *Application) openJournal() error {
	j, err := journal.Open(app.opts.JournalPath)
	if err != nil {
		return err
	}
	name := app.opts.Session
	if name == "" {
		name = "session"
	}
	rec, err := j.NewRecorder(context.Background(), name, app.ctx.Now())
	if err != nil {
		_ = j.Close()
		return err
	}
	app.journal, app.recorder = j, rec
	app.log.Channel(wmlog.ChannelJournal).Info("recording session %s to %s", rec.Session(), app.opts.JournalPath)
	return nil
}
