package app

import (
	"strings"

	"github.com/dshills/wmevent/internal/dispatcher"
	"github.com/dshills/wmevent/internal/dispatcher/execctx"
	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/input/keymap"
	"github.com/dshills/wmevent/internal/input/mouse"
	"github.com/dshills/wmevent/internal/screen"
	"github.com/dshills/wmevent/internal/wmlog"
)

// gizmoSize is the width and height of the tool gizmo drawn in the middle
// of the 3D view.
var gizmoSize = mouse.Position{X: 6, Y: 3}

// installAreas creates the 3D view and the text editor and sizes them to
// the window.
func (app *Application) installAreas() {
	view := app.window.AddArea(screen.SpaceView3D, mouse.Rect{})
	view.AddRegion(screen.NewRegion(screen.RegionHeader, mouse.Rect{}))
	view.Tool = &screen.Tool{
		ID:             ToolSelectBox,
		Keymap:         keymap.KeymapToolSelect,
		FallbackKeymap: keymap.KeymapToolTweak,
		Gizmo:          screen.GizmoState{Visible: true},
	}

	text := app.window.AddArea(screen.SpaceText, mouse.Rect{})
	text.AddRegion(screen.NewRegion(screen.RegionHeader, mouse.Rect{}))

	app.layout = layout{view: view, text: text}
	w, h := app.window.Size()
	app.layout.resize(w, h)

	// Handlers that do not depend on the key configuration.
	main := app.window.RegionChain(view.Region(screen.RegionWindow))
	main.AddUI(app.hoverGizmo)
	main.AddDynamicKeymap(nil)

	editor := app.window.RegionChain(text.Region(screen.RegionWindow))
	editor.AddDropbox(
		&dispatcher.Dropbox{
			Name:     "text",
			Operator: "text.insert",
			Poll: func(_ *execctx.Context, drag *event.DragData, _ *event.Event) bool {
				return drag.Kind == event.DragText
			},
			Copy: func(drag *event.DragData, props map[string]any) {
				props["text"] = drag.Text
			},
		},
		&dispatcher.Dropbox{
			Name:     "paths",
			Operator: "text.insert",
			Poll: func(_ *execctx.Context, drag *event.DragData, _ *event.Event) bool {
				return drag.Kind == event.DragPaths && len(drag.Paths) > 0
			},
			Copy: func(drag *event.DragData, props map[string]any) {
				props["text"] = strings.Join(drag.Paths, "\n")
			},
		},
	)
}

// installKeymaps adds the keymap handlers of the current key configuration,
// replacing those added before.
func (app *Application) installKeymaps() error {
	for _, h := range app.keymapHandles {
		app.manager.RemoveHandler(h)
	}
	app.keymapHandles = app.keymapHandles[:0]

	type binding struct {
		chain  *dispatcher.Chain
		name   string
		space  screen.SpaceType
		region screen.RegionType
	}
	view, text := app.layout.view, app.layout.text
	bindings := []binding{
		{app.window.RegionChain(view.Region(screen.RegionWindow)), keymap.KeymapView3D, screen.SpaceView3D, screen.RegionWindow},
		{app.window.RegionChain(text.Region(screen.RegionWindow)), keymap.KeymapText, screen.SpaceText, screen.RegionWindow},
		{app.window.Handlers(), keymap.KeymapScreen, screen.SpaceEmpty, screen.RegionAny},
		{app.window.Handlers(), keymap.KeymapWindow, screen.SpaceEmpty, screen.RegionAny},
	}
	for _, b := range bindings {
		h, err := app.manager.AddKeymapHandlerByName(b.chain, b.name, b.space, b.region)
		if err != nil {
			return err
		}
		app.keymapHandles = append(app.keymapHandles, h)
	}
	return nil
}

// gizmoRect returns the gizmo bounds inside the 3D view.
func (app *Application) gizmoRect() mouse.Rect {
	r := app.layout.view.Rect
	c := mouse.Position{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
	min := c.Sub(mouse.Position{X: gizmoSize.X / 2, Y: gizmoSize.Y / 2})
	return mouse.Rect{Min: min, Max: min.Add(gizmoSize)}
}

// hoverGizmo highlights the gizmo while the cursor is over it, which gives
// the tool's fallback keymap precedence.
func (app *Application) hoverGizmo(ctx *execctx.Context, ev *event.Event) dispatcher.UIAction {
	if !ev.Type.IsMotion() {
		return dispatcher.UIContinue
	}
	tool := app.layout.view.Tool
	over := tool.Gizmo.Visible && app.gizmoRect().Contains(ev.Position)
	if over != tool.Gizmo.Highlighted {
		tool.Gizmo.Highlighted = over
		ctx.Channel(wmlog.ChannelHandlers).Debug("gizmo highlighted: %v", over)
		app.window.RequestRedraw()
	}
	return dispatcher.UIContinue
}
