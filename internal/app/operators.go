package app

import (
	"math"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/wmevent/internal/dispatcher/execctx"
	"github.com/dshills/wmevent/internal/dispatcher/operator"
	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/input/key"
	"github.com/dshills/wmevent/internal/input/keymap"
	"github.com/dshills/wmevent/internal/input/mouse"
	"github.com/dshills/wmevent/internal/screen"
	"github.com/dshills/wmevent/internal/wmlog"
)

// zoomStep is the factor one wheel step zooms by.
const zoomStep = 1.1

// operatorTypes returns the operators the default keymaps bind.
func (app *Application) operatorTypes() []*operator.Type {
	return []*operator.Type{
		{
			ID:   "wm.quit",
			Name: "Quit",
			Exec: func(*execctx.Context, *operator.Operator) operator.Status {
				app.manager.Quit()
				return operator.Finished
			},
		},
		{
			ID:   "wm.echo",
			Name: "Echo",
			Exec: func(ctx *execctx.Context, op *operator.Operator) operator.Status {
				msg := op.String("message")
				ctx.Channel(wmlog.ChannelOperators).Info("echo: %s", msg)
				app.status.setMessage(msg)
				return operator.Finished
			},
		},
		{
			ID:    "wm.search_operator",
			Name:  "Search Operator",
			Flags: operator.FlagInternal,
			Exec: func(*execctx.Context, *operator.Operator) operator.Status {
				app.search.show()
				return operator.Finished
			},
		},
		{
			ID:   "screen.maximize_toggle",
			Name: "Toggle Maximize Area",
			Exec: func(*execctx.Context, *operator.Operator) operator.Status {
				app.layout.toggleMaximize(app.areaUnderCursor())
				app.window.RequestRedraw()
				app.window.RequestMouseMove()
				return operator.Finished
			},
		},
		{
			ID:   "screen.cycle_area",
			Name: "Cycle Area",
			Exec: func(*execctx.Context, *operator.Operator) operator.Status {
				a := app.layout.cycle()
				app.status.setMessage("area " + string(a.Space))
				return operator.Finished
			},
		},
		{
			ID:          "view.pan",
			Name:        "Pan View",
			Invoke:      app.panInvoke,
			Modal:       app.panModal,
			Cancel:      app.panCancel,
			ModalKeymap: keymap.KeymapViewPan,
			Flags:       operator.FlagBlocking,
		},
		{
			ID:       "view.zoom",
			Name:     "Zoom View",
			PollExpr: `ctx.space == "VIEW_3D"`,
			Invoke:   app.zoom,
		},
		{
			ID:     "select.click",
			Name:   "Select",
			Invoke: app.selectClick,
		},
		{
			ID:   "select.linked",
			Name: "Select Linked",
			Exec: func(*execctx.Context, *operator.Operator) operator.Status {
				if err := app.scene.selectAll(true); err != nil {
					return operator.Cancelled
				}
				return operator.Finished
			},
		},
		{
			ID:   "select.all",
			Name: "(De)select All",
			Exec: func(_ *execctx.Context, op *operator.Operator) operator.Status {
				if err := app.scene.selectAll(op.String("action") != "DESELECT"); err != nil {
					return operator.Cancelled
				}
				return operator.Finished
			},
		},
		{
			ID:     "select.box",
			Name:   "Box Select",
			Invoke: app.selectBox,
		},
		{
			ID:     "transform.translate",
			Name:   "Move",
			Invoke: app.dragInvoke,
			Modal:  app.translateModal,
			Cancel: app.translateCancel,
		},
		{
			ID:     "view.ruler",
			Name:   "Measure",
			Invoke: app.dragInvoke,
			Modal:  app.rulerModal,
		},
		{
			ID:       "text.insert",
			Name:     "Insert Text",
			PollExpr: `ctx.space == "TEXT_EDITOR"`,
			Invoke:   app.textInsert,
		},
		{
			ID:       "text.delete",
			Name:     "Delete",
			PollExpr: `ctx.space == "TEXT_EDITOR"`,
			Exec:     app.textDelete,
		},
	}
}

// registerOperators registers the operator types, compiling script polls.
func (app *Application) registerOperators(reg *operator.Registry) error {
	for _, t := range app.operatorTypes() {
		if t.PollExpr != "" {
			poll, err := app.scripts.CompilePoll(t.ID, t.PollExpr)
			if err != nil {
				return err
			}
			t.Poll = poll
		}
		if err := reg.Register(t); err != nil {
			return err
		}
	}
	return nil
}

func (app *Application) areaUnderCursor() *screen.Area {
	return app.window.Screen.AreaAt(app.window.State().Position)
}

// dragStart is the modal state of operators following the cursor.
type dragStart struct {
	from mouse.Position
	x, y float64
}

func (app *Application) panInvoke(_ *execctx.Context, op *operator.Operator, ev *event.Event) operator.Status {
	if op.Bool("trackpad") {
		d := ev.Delta()
		x := app.scene.get(PathView, "pan_x").Float() + float64(d.X)
		y := app.scene.get(PathView, "pan_y").Float() + float64(d.Y)
		if app.scene.set(PathView, "pan_x", x) != nil || app.scene.set(PathView, "pan_y", y) != nil {
			return operator.Cancelled
		}
		return operator.Finished
	}
	op.Data = &dragStart{
		from: ev.Position,
		x:    app.scene.get(PathView, "pan_x").Float(),
		y:    app.scene.get(PathView, "pan_y").Float(),
	}
	app.status.setMessage("pan")
	return operator.RunningModal
}

func (app *Application) panModal(ctx *execctx.Context, op *operator.Operator, ev *event.Event) operator.Status {
	st := op.Data.(*dragStart)
	if v, ok := op.ModalValue(ev); ok {
		switch v {
		case keymap.ModalConfirm:
			app.status.setMessage("")
			return operator.Finished
		case keymap.ModalCancel:
			app.panCancel(ctx, op)
			return operator.Cancelled
		}
	}
	if ev.Type.IsMotion() {
		d := ev.Position.Sub(st.from)
		_ = app.scene.set(PathView, "pan_x", st.x+float64(d.X))
		_ = app.scene.set(PathView, "pan_y", st.y+float64(d.Y))
	}
	return operator.RunningModal
}

func (app *Application) panCancel(_ *execctx.Context, op *operator.Operator) {
	st, ok := op.Data.(*dragStart)
	if !ok {
		return
	}
	_ = app.scene.set(PathView, "pan_x", st.x)
	_ = app.scene.set(PathView, "pan_y", st.y)
	app.status.setMessage("")
}

func (app *Application) zoom(_ *execctx.Context, op *operator.Operator, ev *event.Event) operator.Status {
	delta := float64(op.Int("delta", 0))
	if delta == 0 && ev.Type == key.TrackpadZoom {
		delta = float64(ev.Delta().Y)
	}
	if delta == 0 {
		return operator.Cancelled
	}
	z := app.scene.get(PathView, "zoom").Float() * math.Pow(zoomStep, delta)
	if err := app.scene.set(PathView, "zoom", z); err != nil {
		return operator.Cancelled
	}
	return operator.Finished
}

// selectClick selects the active object. With deselect_all it runs on press
// and passes the event on so a click-drag can still start.
func (app *Application) selectClick(_ *execctx.Context, op *operator.Operator, _ *event.Event) operator.Status {
	if op.Bool("deselect_all") {
		if err := app.scene.selectAll(false); err != nil {
			return operator.Cancelled
		}
		return operator.Finished | operator.PassThrough
	}
	if !op.Bool("extend") {
		if err := app.scene.selectAll(false); err != nil {
			return operator.Cancelled
		}
	}
	if err := app.scene.set(PathActive, "selected", true); err != nil {
		return operator.Cancelled
	}
	n := 0
	for _, k := range app.scene.objects() {
		if app.scene.get("objects."+k, "selected").Bool() {
			n++
		}
	}
	_ = app.scene.set(PathSelection, "last", app.scene.get(PathActive, "name").String())
	if err := app.scene.set(PathSelection, "count", n); err != nil {
		return operator.Cancelled
	}
	return operator.Finished
}

func (app *Application) selectBox(_ *execctx.Context, op *operator.Operator, _ *event.Event) operator.Status {
	mode := op.String("mode")
	if mode == "" {
		mode = "SET"
	}
	if err := app.scene.set(PathSelection, "mode", mode); err != nil {
		return operator.Cancelled
	}
	if err := app.scene.selectAll(true); err != nil {
		return operator.Cancelled
	}
	return operator.Finished
}

// dragInvoke starts a modal that follows the cursor from the press
// position of a click-drag.
func (app *Application) dragInvoke(_ *execctx.Context, op *operator.Operator, ev *event.Event) operator.Status {
	from := ev.PrevPress.Position
	if ev.Value != key.ClickDrag {
		from = ev.Position
	}
	op.Data = &dragStart{
		from: from,
		x:    app.scene.get(PathActive, "x").Float(),
		y:    app.scene.get(PathActive, "y").Float(),
	}
	return operator.RunningModal
}

func (app *Application) translateModal(ctx *execctx.Context, op *operator.Operator, ev *event.Event) operator.Status {
	st := op.Data.(*dragStart)
	switch {
	case ev.Type.IsMotion():
		d := ev.Position.Sub(st.from)
		_ = app.scene.set(PathActive, "x", st.x+float64(d.X))
		_ = app.scene.set(PathActive, "y", st.y+float64(d.Y))
	case ev.Type == key.LeftMouse && ev.Value == key.Release:
		return operator.Finished
	case ev.Type == key.KeyEsc || ev.Type == key.RightMouse:
		if ev.Value == key.Press {
			app.translateCancel(ctx, op)
			return operator.Cancelled
		}
	}
	return operator.RunningModal
}

func (app *Application) translateCancel(_ *execctx.Context, op *operator.Operator) {
	st, ok := op.Data.(*dragStart)
	if !ok {
		return
	}
	_ = app.scene.set(PathActive, "x", st.x)
	_ = app.scene.set(PathActive, "y", st.y)
}

func (app *Application) rulerModal(_ *execctx.Context, op *operator.Operator, ev *event.Event) operator.Status {
	st := op.Data.(*dragStart)
	d := ev.Position.Sub(st.from)
	length := math.Hypot(float64(d.X), float64(d.Y))
	switch {
	case ev.Type.IsMotion():
		_ = app.scene.set(PathRuler, "length", length)
	case ev.Type == key.LeftMouse && ev.Value == key.Release:
		_ = app.scene.set(PathRuler, "length", length)
		return operator.Finished
	case ev.Type == key.KeyEsc && ev.Value == key.Press:
		_ = app.scene.set(PathRuler, "length", 0)
		return operator.Cancelled
	}
	return operator.RunningModal
}

// textInsert appends the typed text, or the dropped text a dropbox copied
// into the properties.
func (app *Application) textInsert(_ *execctx.Context, op *operator.Operator, ev *event.Event) operator.Status {
	text := op.String("text")
	if text == "" && ev != nil {
		text = ev.Text
	}
	if text == "" {
		return operator.PassThrough
	}
	body := app.scene.get(PathText, "body").String()
	if err := app.scene.set(PathText, "body", body+text); err != nil {
		return operator.Cancelled
	}
	return operator.Finished
}

func (app *Application) textDelete(_ *execctx.Context, op *operator.Operator) operator.Status {
	body := app.scene.get(PathText, "body").String()
	if body == "" {
		return operator.Cancelled
	}
	var next string
	switch op.String("type") {
	case "PREVIOUS_WORD":
		next = deleteWord(body)
	default:
		next = deleteGrapheme(body)
	}
	if err := app.scene.set(PathText, "body", next); err != nil {
		return operator.Cancelled
	}
	return operator.Finished
}

// deleteGrapheme removes the last user-perceived character.
func deleteGrapheme(s string) string {
	last := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		from, _ := g.Positions()
		last = from
	}
	return s[:last]
}

// deleteWord removes trailing spaces and the word before them.
func deleteWord(s string) string {
	s = strings.TrimRight(s, " \t\n")
	if i := strings.LastIndexAny(s, " \t\n"); i >= 0 {
		return s[:i+1]
	}
	return ""
}
