package app

import (
	"fmt"

	"github.com/dshills/wmevent/internal/msgbus"
	"github.com/dshills/wmevent/internal/wm"
	"github.com/dshills/wmevent/internal/wmlog"
)

// Scene struct types whose property changes redraw the window.
var redrawTypes = []string{"View", "Selection", "Text", "Ruler", "Object"}

// subscribe registers the application's bus listeners. Everything the
// application subscribes is owned by app and released in shutdown.
func (app *Application) subscribe() error {
	bus := app.manager.Bus()

	if _, err := bus.SubscribeStatic(wm.TopicWindowDraw, msgbus.Value{
		Owner:  app,
		Tag:    true,
		Info:   "draw",
		Notify: func(msgbus.Message, *msgbus.Value) { app.draw() },
	}); err != nil {
		return err
	}

	// Any property of these types marks the window; the draw itself waits
	// for DoNotifiers.
	for _, typ := range redrawTypes {
		if _, err := bus.Subscribe(msgbus.TypeParams(typ, ""), msgbus.Value{
			Owner:  app,
			Info:   "redraw " + typ,
			Notify: func(msgbus.Message, *msgbus.Value) { app.window.RequestRedraw() },
		}); err != nil {
			return err
		}
	}

	// The selection count of this scene. Persistent, so it follows the
	// scene across reloads.
	sel, err := app.scene.pointer(PathSelection)
	if err != nil {
		return err
	}
	if _, err := bus.Subscribe(msgbus.PropertyParams(sel, "count"), msgbus.Value{
		Owner:      app,
		Persistent: true,
		Info:       "selection count",
		Notify: func(msgbus.Message, *msgbus.Value) {
			n := app.scene.get(PathSelection, "count").Int()
			app.status.setMessage(fmt.Sprintf("%d selected", n))
		},
	}); err != nil {
		return err
	}

	if _, err := bus.SubscribeStatic(wm.TopicPrefsChanged, msgbus.Value{
		Owner: app,
		Info:  "prefs",
		Notify: func(msgbus.Message, *msgbus.Value) {
			applyLogPrefs(app.log, app.ctx.Prefs, app.opts)
			app.window.RequestRedraw()
		},
	}); err != nil {
		return err
	}

	if _, err := bus.SubscribeStatic(wm.TopicKeymapChanged, msgbus.Value{
		Owner: app,
		Info:  "keymaps",
		Notify: func(msgbus.Message, *msgbus.Value) {
			if err := app.installKeymaps(); err != nil {
				app.log.Channel(wmlog.ChannelKeymap).Error("reinstall keymaps: %v", err)
				return
			}
			app.hint.invalidate()
			app.status.setMessage("keymaps reloaded")
		},
	}); err != nil {
		return err
	}

	_, err = bus.SubscribeStatic(wm.TopicFileReadPost, msgbus.Value{
		Owner: app,
		Info:  "scene reloaded",
		Notify: func(msgbus.Message, *msgbus.Value) {
			app.status.setMessage("scene reloaded")
			app.window.RequestRedraw()
		},
	})
	return err
}
