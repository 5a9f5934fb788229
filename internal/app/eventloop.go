package app

import (
	"context"
	"errors"
	"time"

	"github.com/dshills/wmevent/internal/config"
	"github.com/dshills/wmevent/internal/platform/tcellsrc"
	"github.com/dshills/wmevent/internal/wmlog"
)

// tickInterval is how often the loop steps without input, so timers fire.
const tickInterval = 10 * time.Millisecond

// Run initializes the screen and runs the event loop until the quit
// operator runs, Shutdown is called or ctx is done. Quitting through the
// operator returns ErrQuit.
func (app *Application) Run(ctx context.Context) error {
	app.mu.Lock()
	scr := app.screen
	app.mu.Unlock()
	if scr == nil {
		return ErrNoScreen
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer func() {
		app.running.Store(false)
		app.shutdown()
	}()

	if err := scr.Init(); err != nil {
		return &InitError{Component: "screen", Err: err}
	}
	defer scr.Fini()
	scr.EnableMouse()
	scr.EnablePaste()
	scr.EnableFocus()
	app.resize(scr.Size())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	batches := make(chan tcellsrc.Batch, 64)
	go app.source.Pump(ctx, scr, batches)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	var (
		updates <-chan *config.Prefs
		errs    <-chan error
	)
	if app.watcher != nil {
		updates, errs = app.watcher.Updates(), app.watcher.Errors()
	}

	app.log.Info("event loop started")
	app.window.RequestRedraw()
	for {
		app.step(app.ctx.Now())
		if app.manager.Quitting() {
			app.log.Info("quit requested")
			return ErrQuit
		}

		select {
		case <-ctx.Done():
			return nil
		case <-app.done:
			return nil
		case b := <-batches:
			app.feed(b)
		case <-ticker.C:
		case p := <-updates:
			app.applyPrefs(p)
		case err := <-errs:
			app.log.Channel(wmlog.ChannelConfig).Warn("preferences: %v", err)
		}
	}
}

// feed hands a translated batch to the window manager.
func (app *Application) feed(b tcellsrc.Batch) {
	if b.Resize != nil {
		app.resize(b.Resize.Width, b.Resize.Height)
	}
	for _, ev := range b.Events {
		app.manager.HandleRaw(app.window.ID(), ev)
	}
}

// step runs one manager step and refreshes the status line when events
// were handled.
func (app *Application) step(now time.Time) {
	n := app.manager.Step(now)
	if ev := app.window.LastHandled(); n > 0 && ev != nil {
		app.status.event(ev)
	}
	if app.hint.refresh(app.window) {
		app.status.setHint(app.hint.String())
	}
	if app.status.dirty {
		app.status.dirty = false
		app.window.RequestRedraw()
	} else if n == 0 {
		return
	}
	// Deliver the redraws the handlers asked for in this same step.
	app.manager.DoNotifiers()
}

// resize sizes the window and the layout to a terminal of cols x rows.
func (app *Application) resize(cols, rows int) {
	w, h := cols*app.source.CellWidth, rows*app.source.CellHeight
	if w <= 0 || h <= 0 {
		return
	}
	app.window.Resize(w, h)
	app.layout.resize(w, h)
	app.window.RequestRedraw()
}

// applyPrefs installs reloaded preferences and the keymaps they list.
func (app *Application) applyPrefs(p *config.Prefs) {
	if err := app.manager.ApplyPrefs(p); err != nil {
		app.log.Channel(wmlog.ChannelConfig).Warn("apply preferences: %v", err)
		return
	}
	kc, err := app.loadKeyConfig(p)
	if err != nil {
		app.log.Channel(wmlog.ChannelKeymap).Warn("reload keymaps: %v", err)
		return
	}
	if err := app.manager.SetKeyConfig(kc); err != nil {
		app.log.Channel(wmlog.ChannelKeymap).Warn("set keymaps: %v", err)
	}
}

// IsQuit reports whether err is the quit sentinel returned by Run.
func IsQuit(err error) bool {
	return errors.Is(err, ErrQuit)
}
