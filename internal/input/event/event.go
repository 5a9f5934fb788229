// Package event defines the canonical event record produced by the
// normalizer and the per-window queue that holds it until dispatch.
package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/wmevent/internal/input/key"
	"github.com/dshills/wmevent/internal/input/mouse"
)

// Flag is a bit set of per-event flags.
type Flag uint8

const (
	// FlagRepeat marks a key press generated by keyboard auto-repeat.
	FlagRepeat Flag = 1 << iota
	// FlagScrollInvert marks wheel or trackpad input whose direction the
	// platform already inverted ("natural" scrolling).
	FlagScrollInvert
	// FlagForceDragThreshold makes the drag test use the threshold even for
	// events that would normally start dragging at once.
	FlagForceDragThreshold
	// FlagSynthetic marks events the window manager generated itself.
	FlagSynthetic
)

// TabletTool identifies the active tablet tool.
type TabletTool uint8

const (
	// TabletNone means the event did not come from a tablet.
	TabletNone TabletTool = iota
	// TabletStylus is the pen tip.
	TabletStylus
	// TabletEraser is the pen eraser end.
	TabletEraser
)

// Tablet holds the tablet data of a pointer event.
type Tablet struct {
	Active   TabletTool
	Pressure float32
	TiltX    float32
	TiltY    float32
}

// PressInfo mirrors the press that armed the double click timer.
type PressInfo struct {
	Type        key.Type
	Time        time.Time
	Position    mouse.Position
	Modifiers   key.Modifier
	KeyModifier key.Type
}

// Event is a canonical input event.
//
// Events are owned by the queue they sit in and handed to the dispatcher
// exactly once. The only mutation after queuing is the demotion of a tail
// MouseMove to InBetweenMouseMove when another move arrives.
type Event struct {
	Type  key.Type
	Value key.Value

	// Position is in window coordinates. PrevPosition is the position of the
	// previous motion, or for trackpad events Position minus the delta.
	Position     mouse.Position
	PrevPosition mouse.Position

	Modifiers   key.Modifier
	KeyModifier key.Type

	Time  time.Time
	Flags Flag

	// Text is the UTF-8 text produced by a key press, empty otherwise.
	Text string

	// Mirrors of the window state before this event was applied.
	PrevType  key.Type
	PrevValue key.Value
	PrevPress PressInfo

	Tablet Tablet

	// Payload carries device specific data. It is owned by the event.
	Payload Payload
}

// Has reports whether f is set.
func (e *Event) Has(f Flag) bool {
	return e.Flags&f != 0
}

// IsRepeat reports whether the event is a key auto-repeat.
func (e *Event) IsRepeat() bool {
	return e.Has(FlagRepeat)
}

// Delta returns Position - PrevPosition.
func (e *Event) Delta() mouse.Position {
	return e.Position.Sub(e.PrevPosition)
}

// IsTablet reports whether a tablet tool produced the event.
func (e *Event) IsTablet() bool {
	return e.Tablet.Active != TabletNone
}

// Clone returns a deep copy, payload included.
func (e *Event) Clone() *Event {
	c := *e
	if e.Payload != nil {
		c.Payload = e.Payload.Clone()
	}
	return &c
}

// String returns a compact description for logs.
func (e *Event) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (%d,%d)", e.Type, e.Value, e.Position.X, e.Position.Y)
	if m := e.Modifiers.String(); m != "" {
		b.WriteString(" mods=")
		b.WriteString(m)
	}
	if e.KeyModifier != key.TypeNone {
		b.WriteString(" keymod=")
		b.WriteString(e.KeyModifier.String())
	}
	if e.IsRepeat() {
		b.WriteString(" repeat")
	}
	if e.Text != "" {
		fmt.Fprintf(&b, " text=%q", e.Text)
	}
	return b.String()
}
