package wm

import (
	"github.com/google/uuid"

	"github.com/dshills/wmevent/internal/dispatcher"
	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/input/key"
	"github.com/dshills/wmevent/internal/input/mouse"
	"github.com/dshills/wmevent/internal/input/normalize"
	"github.com/dshills/wmevent/internal/input/state"
	"github.com/dshills/wmevent/internal/screen"
)

// Window is a top level window: its place on the desktop, its event queue
// and state, and the handler chains of the window, its areas and regions.
type Window struct {
	id     uuid.UUID
	origin mouse.Position
	width  int
	height int

	queue  event.Queue
	state  *state.State
	clicks mouse.ClickTracker

	Screen *screen.Screen

	modal    *dispatcher.Chain
	handlers *dispatcher.Chain
	areas    map[uuid.UUID]*dispatcher.Chain
	regions  map[uuid.UUID]*dispatcher.Chain

	lastHandled  *event.Event
	addMouseMove bool
	needsRedraw  bool
	closed       bool
}

var (
	_ normalize.Window  = (*Window)(nil)
	_ dispatcher.Target = (*Window)(nil)
)

func newWindow(origin mouse.Position, width, height int) *Window {
	return &Window{
		id:       uuid.New(),
		origin:   origin,
		width:    width,
		height:   height,
		state:    state.New(),
		Screen:   &screen.Screen{},
		modal:    dispatcher.NewChain(),
		handlers: dispatcher.NewChain(),
		areas:    make(map[uuid.UUID]*dispatcher.Chain),
		regions:  make(map[uuid.UUID]*dispatcher.Chain),
	}
}

// ID returns the window ID.
func (w *Window) ID() uuid.UUID { return w.id }

// Queue returns the event queue.
func (w *Window) Queue() *event.Queue { return &w.queue }

// State returns the event state.
func (w *Window) State() *state.State { return w.state }

// Size returns the client area size.
func (w *Window) Size() (width, height int) { return w.width, w.height }

// Origin returns the desktop position of the client area.
func (w *Window) Origin() mouse.Position { return w.origin }

// Clicks returns the click and drag tracking.
func (w *Window) Clicks() *mouse.ClickTracker { return &w.clicks }

// ModalChain returns the chain of modal handlers, checked first.
func (w *Window) ModalChain() *dispatcher.Chain { return w.modal }

// Handlers returns the window level chain, checked last.
func (w *Window) Handlers() *dispatcher.Chain { return w.handlers }

// Closed reports whether the window was closed.
func (w *Window) Closed() bool { return w.closed }

// LastHandled returns the last event the window handled, or nil.
func (w *Window) LastHandled() *event.Event { return w.lastHandled }

// HasModalUIOrOperator reports whether the modal chain holds a modal UI or
// operator handler.
func (w *Window) HasModalUIOrOperator() bool {
	return w.modal.HasModal()
}

// RequestMouseMove asks for a synthetic mouse move at the head of the queue
// once the current event is handled, so handlers can refresh hover state.
func (w *Window) RequestMouseMove() {
	w.addMouseMove = true
}

// RequestRedraw marks the window for a draw message in the next
// DoNotifiers.
func (w *Window) RequestRedraw() {
	w.needsRedraw = true
}

// Move sets the desktop origin.
func (w *Window) Move(origin mouse.Position) {
	w.origin = origin
}

// Resize sets the client size.
func (w *Window) Resize(width, height int) {
	w.width, w.height = width, height
}

// ContainsDesktop reports whether a desktop position is over the client
// area.
func (w *Window) ContainsDesktop(p mouse.Position) bool {
	local := p.Sub(w.origin)
	return local.X >= 0 && local.Y >= 0 && local.X < w.width && local.Y < w.height
}

// AddArea adds an area to the screen and returns it.
func (w *Window) AddArea(space screen.SpaceType, rect mouse.Rect) *screen.Area {
	a := screen.NewArea(space, rect)
	w.Screen.AddArea(a)
	return a
}

// AreaChain returns the handler chain of an area, creating it on first
// use.
func (w *Window) AreaChain(a *screen.Area) *dispatcher.Chain {
	c, ok := w.areas[a.ID]
	if !ok {
		c = dispatcher.NewChain()
		w.areas[a.ID] = c
	}
	return c
}

// RegionChain returns the handler chain of a region, creating it on first
// use.
func (w *Window) RegionChain(r *screen.Region) *dispatcher.Chain {
	c, ok := w.regions[r.ID]
	if !ok {
		c = dispatcher.NewChain()
		w.regions[r.ID] = c
	}
	return c
}

// chains returns every chain of the window, modal first.
func (w *Window) chains() []*dispatcher.Chain {
	out := []*dispatcher.Chain{w.modal}
	for _, c := range w.regions {
		out = append(out, c)
	}
	for _, c := range w.areas {
		out = append(out, c)
	}
	return append(out, w.handlers)
}

// RemoveHandler removes a handler from whichever chain of the window holds
// it.
func (w *Window) RemoveHandler(h dispatcher.Handle) bool {
	for _, c := range w.chains() {
		if c.Remove(h) {
			return true
		}
	}
	return false
}

// Simulate queues a canonical event built elsewhere, such as a replayed
// journal entry, and writes it into the event state the way the
// normalizer would have. The event is copied.
func (w *Window) Simulate(ev *event.Event) *event.Event {
	e := ev.Clone()
	st := w.state

	switch {
	case e.Type.IsMotion():
		e.PrevPosition = st.Position
		st.PrevPosition = st.Position
		st.Position = e.Position
	case e.Type.IsKeyboard() || e.Type.IsMouseButton():
		st.Position = e.Position
		// The state only holds press and release. A double click is stored
		// as the press it was promoted from; other values leave it alone.
		value := e.Value
		if value == key.DoubleClick {
			value = key.Press
		}
		if value != key.Press && value != key.Release {
			e.PrevType, e.PrevValue = st.Type, st.Value
			e.PrevPress = st.PrevPress
			break
		}
		e.PrevType, st.PrevType = st.Type, st.Type
		e.PrevValue, st.PrevValue = st.Value, st.Value
		st.Type = e.Type
		st.Value = value
		if e.Type.IsKeyboard() {
			st.Modifiers = e.Modifiers
		}
		if e.Value == key.Press && !e.IsRepeat() {
			st.PrevPress = event.PressInfo{
				Type:        e.Type,
				Time:        e.Time,
				Position:    e.Position,
				Modifiers:   e.Modifiers,
				KeyModifier: e.KeyModifier,
			}
		}
		e.PrevPress = st.PrevPress
	default:
		st.Position = e.Position
	}

	e.Flags |= event.FlagSynthetic
	return w.queue.PushBack(e)
}

// queueMouseMove inserts a move at the queue head, cloned from the last
// handled event so it carries the current position and modifiers.
func (w *Window) queueMouseMove() {
	w.addMouseMove = false
	var mv *event.Event
	if w.lastHandled != nil {
		mv = w.lastHandled.Clone()
	} else {
		mv = w.state.NewEvent()
	}
	mv.Type = key.MouseMove
	mv.Value = key.ValueNothing
	mv.Position = w.state.Position
	mv.PrevPosition = mv.Position
	mv.Text = ""
	mv.Payload = nil
	mv.Flags = event.FlagSynthetic
	w.queue.PushFront(mv)
}
