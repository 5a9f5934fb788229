// Package app wires the event pipeline into a runnable terminal program:
// preferences, keymaps, operators, the window manager, the journal and a
// tcell screen acting as the platform.
package app

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/dshills/wmevent/internal/config"
	"github.com/dshills/wmevent/internal/dispatcher"
	"github.com/dshills/wmevent/internal/dispatcher/execctx"
	"github.com/dshills/wmevent/internal/journal"
	"github.com/dshills/wmevent/internal/metrics"
	"github.com/dshills/wmevent/internal/platform/tcellsrc"
	"github.com/dshills/wmevent/internal/rna"
	"github.com/dshills/wmevent/internal/script"
	"github.com/dshills/wmevent/internal/wm"
	"github.com/dshills/wmevent/internal/wmlog"
)

// Application owns the window manager and everything around it. The event
// loop runs on the goroutine calling Run; only the terminal reader and the
// preferences watcher run elsewhere and talk to it over channels.
type Application struct {
	mu sync.Mutex

	opts Options

	log     *wmlog.Logger
	logFile io.Closer
	metrics *metrics.Metrics
	reader  *sdkmetric.ManualReader
	flush   func() error

	ctx     *execctx.Context
	manager *wm.Manager
	scripts *script.Engine
	watcher *config.Watcher

	journal  *journal.Journal
	recorder *journal.Recorder

	screen tcell.Screen
	source *tcellsrc.Source
	window *wm.Window
	layout layout
	scene  *scene
	status *statusLine
	hint   *cursorHint
	search *searchMenu

	keymapHandles []dispatcher.Handle

	running  atomic.Bool
	done     chan struct{}
	closed   sync.Once
	released sync.Once
}

// Options configures the application.
type Options struct {
	// PrefsPath is the preferences file. Empty uses the built-in defaults.
	PrefsPath string
	// Watch reloads PrefsPath when it changes.
	Watch bool

	// KeymapFiles are loaded after the built-in keymaps and the files the
	// preferences list.
	KeymapFiles []string

	// JournalPath records handled events to a SQLite journal.
	JournalPath string
	// Session names the recorded session.
	Session string

	// LogLevel overrides the preferences log level when set.
	LogLevel string
	// LogPath writes the log to a file instead of stderr, which the
	// terminal screen owns while running.
	LogPath string
}

// New creates an application. The terminal is attached with SetScreen.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts: opts,
		done: make(chan struct{}),
	}
	if err := app.bootstrap(); err != nil {
		app.shutdown()
		return nil, err
	}
	return app, nil
}

// SetScreen sets the terminal. Must be called before Run.
func (app *Application) SetScreen(s tcell.Screen) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.screen = s
	return nil
}

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Manager returns the window manager.
func (app *Application) Manager() *wm.Manager {
	return app.manager
}

// Window returns the terminal window.
func (app *Application) Window() *wm.Window {
	return app.window
}

// Scene returns the property document the demo operators edit.
func (app *Application) Scene() *rna.Document {
	return app.scene.doc
}

// Journal returns the journal, or nil when recording is off.
func (app *Application) Journal() *journal.Journal {
	return app.journal
}

// Recorder returns the session recorder, or nil when recording is off.
func (app *Application) Recorder() *journal.Recorder {
	return app.recorder
}

// Counter returns the current total of a pipeline counter such as
// "wm.events.queued".
func (app *Application) Counter(ctx context.Context, name string) (int64, error) {
	return collectCount(ctx, app.reader, name)
}

func (app *Application) logSummary() {
	ctx := context.Background()
	for _, name := range []string{"wm.events.queued", "wm.dispatch.events", "wm.msgbus.publishes"} {
		n, err := app.Counter(ctx, name)
		if err != nil {
			app.log.Warn("collect %s: %v", name, err)
			return
		}
		app.log.Info("%s: %d", name, n)
	}
}

// Logger returns the root logger.
func (app *Application) Logger() *wmlog.Logger {
	return app.log
}

// Shutdown stops Run and releases every resource. It is safe to call more
// than once and from another goroutine.
func (app *Application) Shutdown() {
	app.closed.Do(func() {
		close(app.done)
		if !app.running.Load() {
			app.shutdown()
		}
	})
}

// shutdown releases resources in reverse bootstrap order.
func (app *Application) shutdown() {
	app.released.Do(app.release)
}

func (app *Application) release() {
	if app.manager != nil {
		app.manager.Bus().ClearByOwner(app)
	}
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			app.log.Channel(wmlog.ChannelConfig).Warn("close watcher: %v", err)
		}
		app.watcher = nil
	}
	if app.journal != nil {
		if err := app.journal.Close(); err != nil {
			app.log.Channel(wmlog.ChannelJournal).Warn("close journal: %v", err)
		}
		app.journal = nil
	}
	if app.scripts != nil {
		_ = app.scripts.Close()
		app.scripts = nil
	}
	if app.reader != nil && app.log != nil {
		app.logSummary()
	}
	if app.flush != nil {
		if err := app.flush(); err != nil && app.log != nil {
			app.log.Warn("flush metrics: %v", err)
		}
		app.flush = nil
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
	}
}
