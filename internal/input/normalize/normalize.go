// Package normalize turns raw platform events into canonical events.
//
// The Normalizer writes the per-window event state for press and release
// events, coalesces motion, merges trackpad gestures, drops auto-repeat
// presses a slow handler has not caught up with and forwards pointer input
// that left the window to the window under the cursor.
package normalize

import (
	"github.com/google/uuid"

	"github.com/dshills/wmevent/internal/dispatcher/execctx"
	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/input/key"
	"github.com/dshills/wmevent/internal/input/mouse"
	"github.com/dshills/wmevent/internal/input/state"
	"github.com/dshills/wmevent/internal/platform"
	"github.com/dshills/wmevent/internal/wmlog"
)

// maxWheelSteps bounds the events a single wheel report can generate.
const maxWheelSteps = 4

// Window is the part of a window the normalizer needs.
type Window interface {
	ID() uuid.UUID
	Queue() *event.Queue
	State() *state.State
	// Size is the client area size in pixels.
	Size() (width, height int)
	// Origin is the top left corner of the client area on the desktop.
	Origin() mouse.Position
	// HasModalUIOrOperator reports whether the modal chain holds a UI or
	// operator handler, which keeps pointer input in this window.
	HasModalUIOrOperator() bool
	// RequestMouseMove asks for a synthetic move once the current event is
	// handled.
	RequestMouseMove()
}

// Finder returns the window whose client area contains a desktop position,
// or nil.
type Finder func(desktop mouse.Position) Window

// Normalizer converts platform events into queued canonical events.
type Normalizer struct {
	find Finder
}

// New returns a normalizer. A nil finder disables cross-window forwarding.
func New(find Finder) *Normalizer {
	return &Normalizer{find: find}
}

// Add converts raw into canonical events and queues them on win, and for
// pointer input that left win, on the window under the cursor.
func (n *Normalizer) Add(ctx *execctx.Context, win Window, raw platform.Event) {
	st := win.State()
	ev := st.NewEvent()
	ev.Flags = 0
	ev.Time = raw.When()
	if ev.Time.IsZero() {
		ev.Time = ctx.Now()
	}

	switch r := raw.(type) {
	case *platform.CursorMove:
		n.addCursorMove(ctx, win, ev, r)
	case *platform.Trackpad:
		n.addTrackpad(ctx, win, ev, r)
	case *platform.Button:
		n.addButton(ctx, win, ev, r)
	case *platform.Key:
		n.addKey(ctx, win, ev, r)
	case *platform.Wheel:
		n.addWheel(ctx, win, ev, r)
	case *platform.Timer:
		ev.Type = key.Timer
		ev.Value = key.ValueNothing
		data := r.Data
		ev.Payload = &data
		n.push(ctx, win, ev)
	case *platform.NDOFMotion:
		ev.Type = key.NDOFMotion
		ev.Value = key.ValueNothing
		ev.Payload = ndofMotion(ctx, r)
		n.push(ctx, win, ev)
	case *platform.NDOFButton:
		ev.Type = r.Button.Type()
		if ev.Type == key.TypeNone {
			ctx.Channel(wmlog.ChannelEvents).Debug("unmapped ndof button %d", r.Button)
			return
		}
		ev.Value = pressOrRelease(r.Down)
		n.apply(ctx, st, ev)
		n.push(ctx, win, ev)
	case *platform.XRAction:
		ev.Type = key.XRAction
		ev.Value = r.Value
		data := r.Data
		ev.Payload = &data
		n.push(ctx, win, ev)
	case *platform.Drop:
		ev.Type = key.Drop
		ev.Value = key.Release
		ev.Position = r.Position
		st.Position = r.Position
		ev.Payload = r.Data.Clone()
		n.push(ctx, win, ev)
	case *platform.Focus:
		n.focus(ctx, win, r)
	default:
		ctx.Channel(wmlog.ChannelEvents).Debug("unhandled platform event %T", raw)
	}
}

func (n *Normalizer) addCursorMove(ctx *execctx.Context, win Window, ev *event.Event, r *platform.CursorMove) {
	ev.Type = key.MouseMove
	ev.Value = key.ValueNothing
	ev.Position = r.Position
	ev.Tablet = r.Tablet

	added := n.addMouseMove(ctx, win, ev)
	win.State().Position = added.Position
	win.State().Tablet = added.Tablet

	other, pos := n.otherWindow(ctx, win, ev.Position)
	if other == nil {
		return
	}
	oev := n.forwarded(other, ev, pos)
	oev.Type = key.MouseMove
	oev.Value = key.ValueNothing
	oev.Tablet = ev.Tablet
	added = n.addMouseMove(ctx, other, oev)
	other.State().Position = added.Position
	ctx.Metrics.EventForwarded()
}

// addMouseMove demotes a tail move to an in-between move and queues ev with
// its previous position taken from the tail, or the state when the queue is
// empty.
func (n *Normalizer) addMouseMove(ctx *execctx.Context, win Window, ev *event.Event) *event.Event {
	q := win.Queue()
	last := q.Back()
	if last != nil && last.Type == key.MouseMove {
		last.Type = key.InBetweenMouseMove
		last.Flags = 0
		ctx.Metrics.MoveCoalesced()
	}
	if last != nil {
		ev.PrevPosition = last.Position
	} else {
		ev.PrevPosition = win.State().Position
	}
	return n.push(ctx, win, ev)
}

func (n *Normalizer) addTrackpad(ctx *execctx.Context, win Window, ev *event.Event, r *platform.Trackpad) {
	switch r.Subtype {
	case platform.TrackpadMagnify:
		ev.Type = key.TrackpadZoom
	case platform.TrackpadSmartMagnify:
		ev.Type = key.MouseSmartZoom
	case platform.TrackpadRotate:
		ev.Type = key.MouseRotate
	default:
		ev.Type = key.TrackpadPan
	}
	ev.Value = key.ValueNothing
	ev.Position = r.Position
	win.State().Position = r.Position
	if r.Inverted {
		ev.Flags |= event.FlagScrollInvert
	}

	delta := r.Delta
	q := win.Queue()
	if last := q.Back(); last != nil && last.Type == ev.Type {
		delta = delta.Add(last.Delta())
		q.DropBack()
		ctx.Metrics.TrackpadMerged()
	}
	ev.PrevPosition = ev.Position.Sub(delta)
	n.push(ctx, win, ev)
}

func (n *Normalizer) addButton(ctx *execctx.Context, win Window, ev *event.Event, r *platform.Button) {
	ev.Type = r.Button.Type()
	if ev.Type == key.TypeNone {
		ctx.Channel(wmlog.ChannelEvents).Debug("unmapped mouse button %s", r.Button)
		return
	}
	ev.Value = pressOrRelease(r.Down)
	ev.Tablet = r.Tablet

	ctx.Emulator.Apply(ev, ctx.Prefs.Emulation(), false)
	n.apply(ctx, win.State(), ev)

	// A button goes to one window only.
	other, pos := n.otherWindow(ctx, win, ev.Position)
	if other == nil {
		n.push(ctx, win, ev)
		return
	}
	oev := n.forwarded(other, ev, pos)
	oev.Type = ev.Type
	oev.Value = ev.Value
	oev.Tablet = ev.Tablet
	n.push(ctx, other, oev)
	ctx.Metrics.EventForwarded()
}

func (n *Normalizer) addKey(ctx *execctx.Context, win Window, ev *event.Event, r *platform.Key) {
	ev.Type = r.Code.Type()
	if ev.Type == key.TypeNone {
		ctx.Channel(wmlog.ChannelEvents).Debug("unmapped key code %#x", uint16(r.Code))
		return
	}
	ev.Value = pressOrRelease(r.Down)
	if r.Repeat {
		ev.Flags |= event.FlagRepeat
	}
	ev.Text = scrubText(ctx, r.Text, r.Down)

	ctx.Emulator.Apply(ev, ctx.Prefs.Emulation(), false)

	st := win.State()
	st.UpdateModifierKeys(ev)
	n.apply(ctx, st, ev)

	if ev.Type == key.KeyEsc && ev.Value == key.Press && ev.Modifiers.IsEmpty() {
		ctx.RequestBreak()
	}

	if isIgnorableKeyPress(win.Queue(), ev) {
		ctx.Metrics.RepeatDropped()
		ctx.Channel(wmlog.ChannelEvents).Debug("dropped repeat %s", ev)
		return
	}
	n.push(ctx, win, ev)
}

// isIgnorableKeyPress reports whether ev is an auto-repeat press of the key
// the queue tail already presses.
func isIgnorableKeyPress(q *event.Queue, ev *event.Event) bool {
	if q.Empty() || !ev.IsRepeat() {
		return false
	}
	last := q.Back()
	return last.Value == key.Press && ev.Value == key.Press &&
		last.Type == ev.Type && last.Modifiers == ev.Modifiers
}

func (n *Normalizer) addWheel(ctx *execctx.Context, win Window, ev *event.Event, r *platform.Wheel) {
	steps := r.Steps
	switch {
	case steps == 0:
		return
	case r.Axis == platform.WheelHorizontal && steps > 0:
		ev.Type = key.WheelInMouse
	case r.Axis == platform.WheelHorizontal:
		ev.Type = key.WheelOutMouse
		steps = -steps
	case steps > 0:
		ev.Type = key.WheelUpMouse
	default:
		ev.Type = key.WheelDownMouse
		steps = -steps
	}
	ev.Value = key.Press
	steps = min(steps, maxWheelSteps)
	for i := 0; i < steps; i++ {
		n.push(ctx, win, ev.Clone())
	}
}

func (n *Normalizer) focus(ctx *execctx.Context, win Window, r *platform.Focus) {
	st := win.State()
	if !r.In {
		st.ClearModifiers()
		ctx.Emulator.Reset()
		return
	}
	st.SyncModifiers(r.Modifiers)
	st.Position = r.Position
	win.RequestMouseMove()
}

// apply writes a press or release into the window state.
func (n *Normalizer) apply(ctx *execctx.Context, st *state.State, ev *event.Event) {
	if err := st.Check(ev); err != nil {
		ctx.Channel(wmlog.ChannelDebug).Warn("%v", err)
	}
	st.Apply(ev, ctx.Prefs.ClickOptions())
}

// otherWindow returns the window under the cursor when pos is outside win
// and win has no modal UI or operator handler, with pos converted into the
// coordinates of that window.
func (n *Normalizer) otherWindow(ctx *execctx.Context, win Window, pos mouse.Position) (Window, mouse.Position) {
	if n.find == nil {
		return nil, pos
	}
	w, h := win.Size()
	rect := mouse.RectXYWH(0, 0, w+1, h+1)
	if rect.ContainsWithTitleBar(pos, ctx.Prefs.Input.TitleBarTolerance) {
		return nil, pos
	}
	if win.HasModalUIOrOperator() {
		return nil, pos
	}
	desktop := pos.Add(win.Origin())
	other := n.find(desktop)
	if other == nil || other.ID() == win.ID() {
		return nil, pos
	}
	return other, desktop.Sub(other.Origin())
}

// forwarded starts an event for other from its own state, carrying the
// modifiers of the source event.
func (n *Normalizer) forwarded(other Window, ev *event.Event, pos mouse.Position) *event.Event {
	oev := other.State().NewEvent()
	oev.Flags = 0
	oev.Time = ev.Time
	oev.Modifiers = ev.Modifiers
	oev.KeyModifier = ev.KeyModifier
	oev.Position = pos
	return oev
}

func (n *Normalizer) push(ctx *execctx.Context, win Window, ev *event.Event) *event.Event {
	win.Queue().PushBack(ev)
	ctx.Metrics.EventQueued(ev.Type.String())
	if log := ctx.Channel(wmlog.ChannelEvents); log.Enabled(wmlog.LevelDebug) {
		log.Debug("queued %s", ev)
	}
	return ev
}

func pressOrRelease(down bool) key.Value {
	if down {
		return key.Press
	}
	return key.Release
}
