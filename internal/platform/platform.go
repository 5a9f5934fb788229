// Package platform defines the raw events a windowing system delivers to
// the window manager, before normalization.
//
// Every event type is a variant of the sealed Event interface. Positions are
// in the coordinates of the window the event is delivered to, with the
// origin at the top left corner. Events are passed by pointer.
package platform

import (
	"time"

	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/input/key"
	"github.com/dshills/wmevent/internal/input/mouse"
)

// Event is a raw platform event.
type Event interface {
	// When returns the platform timestamp.
	When() time.Time
	platformEvent()
}

// Header carries the fields common to every raw event.
type Header struct {
	Time time.Time
}

// When returns the platform timestamp.
func (h Header) When() time.Time { return h.Time }

func (Header) platformEvent() {}

// CursorMove reports pointer motion.
type CursorMove struct {
	Header
	Position mouse.Position
	Tablet   event.Tablet
}

// Button reports a mouse button going down or up at the last known cursor
// position.
type Button struct {
	Header
	Button mouse.Button
	Down   bool
	Tablet event.Tablet
}

// Key reports a keyboard key going down or up.
type Key struct {
	Header
	Code   KeyCode
	Down   bool
	Repeat bool
	// Text is the UTF-8 the key produced. It is not validated by the platform.
	Text []byte
}

// WheelAxis is the axis of a wheel event.
type WheelAxis uint8

const (
	WheelVertical WheelAxis = iota
	WheelHorizontal
)

// Wheel reports wheel steps. Positive steps scroll up (or right).
type Wheel struct {
	Header
	Axis  WheelAxis
	Steps int
}

// TrackpadSubtype is the gesture a trackpad event reports.
type TrackpadSubtype uint8

const (
	TrackpadScroll TrackpadSubtype = iota
	TrackpadMagnify
	TrackpadRotate
	TrackpadSmartMagnify
)

// Trackpad reports a gesture step.
type Trackpad struct {
	Header
	Subtype  TrackpadSubtype
	Position mouse.Position
	Delta    mouse.Position
	// Inverted reports the platform already applied "natural" scrolling.
	Inverted bool
}

// Timer reports a timer firing.
type Timer struct {
	Header
	Data event.TimerData
}

// NDOFMotion reports raw, unscaled 3D mouse motion.
type NDOFMotion struct {
	Header
	Translation [3]float32
	Rotation    [3]float32
	Delta       time.Duration
	Progress    event.NDOFProgress
}

// NDOFButton reports a 3D mouse button.
type NDOFButton struct {
	Header
	Button NDOFButtonCode
	Down   bool
}

// XRAction reports an XR controller action.
type XRAction struct {
	Header
	Data  event.XRAction
	Value key.Value
}

// Drop reports data dropped onto the window.
type Drop struct {
	Header
	Position mouse.Position
	Data     event.DragData
}

// Focus reports the window gaining or losing keyboard focus. On gain the
// platform reports the modifiers held at that moment and the cursor position.
type Focus struct {
	Header
	In        bool
	Modifiers key.Modifier
	Position  mouse.Position
}
