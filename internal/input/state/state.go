// Package state tracks the per-window event state: the last definitive
// press or release, the held modifiers, the latched key-modifier and the
// press that arms double click detection.
package state

import (
	"errors"
	"fmt"
	"time"

	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/input/key"
	"github.com/dshills/wmevent/internal/input/mouse"
)

// ErrInconsistent reports a state that does not fit the event applied to it.
var ErrInconsistent = errors.New("event state inconsistency")

// ClickOptions configures double click detection.
type ClickOptions struct {
	DoubleClickTime time.Duration
	Thresholds      mouse.Thresholds
}

// State is the long lived event state of one window.
//
// Only events carrying a press or release value are written into it through
// Apply. Motion updates the cursor position only; timers never touch it.
type State struct {
	Type      key.Type
	Value     key.Value
	PrevType  key.Type
	PrevValue key.Value

	Position     mouse.Position
	PrevPosition mouse.Position

	Modifiers   key.Modifier
	KeyModifier key.Type

	// Flags only ever holds event.FlagRepeat.
	Flags event.Flag

	Tablet event.Tablet

	// PrevPress is the press that armed double click detection.
	PrevPress event.PressInfo
}

// New returns an empty state.
func New() *State {
	return &State{}
}

// NewEvent returns an event initialized from the state, the way every
// platform event starts out before the normalizer fills in its own fields.
// The previous type and value are the state's current ones; Apply corrects
// them for definitive events.
func (s *State) NewEvent() *event.Event {
	return &event.Event{
		Type:         s.Type,
		Value:        s.Value,
		Position:     s.Position,
		PrevPosition: s.PrevPosition,
		Modifiers:    s.Modifiers,
		KeyModifier:  s.KeyModifier,
		Flags:        s.Flags,
		PrevType:     s.Type,
		PrevValue:    s.Value,
		PrevPress:    s.PrevPress,
		Tablet:       s.Tablet,
	}
}

// Check returns an ErrInconsistent error when ev cannot be applied as a
// definitive event: only keyboard keys, mouse buttons and NDOF buttons press
// and release.
func (s *State) Check(ev *event.Event) error {
	if !ev.Value.IsDefinitive() {
		return fmt.Errorf("%w: %s carries value %s", ErrInconsistent, ev.Type, ev.Value)
	}
	if !ev.Type.IsKeyboard() && !ev.Type.IsMouseButton() && !ev.Type.IsNDOFButton() {
		return fmt.Errorf("%w: %s cannot press or release", ErrInconsistent, ev.Type)
	}
	return nil
}

// Apply writes a press or release event into the state and runs double
// click detection.
//
// The previous type and value move into the Prev fields of both the state
// and the event. Modifiers are copied into the state for keyboard events
// only, since button events may have had a modifier consumed by middle mouse
// emulation. A press repeating the previous release of the same type within
// the double click time of the armed press becomes DoubleClick and does not
// re-arm; any other fresh press arms the timer.
func (s *State) Apply(ev *event.Event, opts ClickOptions) {
	ev.PrevType, s.PrevType = s.Type, s.Type
	ev.PrevValue, s.PrevValue = s.Value, s.Value

	s.Type = ev.Type
	s.Value = ev.Value
	if ev.Type.IsKeyboard() {
		s.Modifiers = ev.Modifiers
	}
	s.Flags = ev.Flags & event.FlagRepeat

	switch {
	case s.isDoubleClick(ev, opts):
		ev.Value = key.DoubleClick
	case ev.Value == key.Press && !ev.IsRepeat():
		s.armPress(ev)
	}
}

func (s *State) isDoubleClick(ev *event.Event, opts ClickOptions) bool {
	if ev.Type != ev.PrevType || ev.PrevValue != key.Release || ev.Value != key.Press {
		return false
	}
	if ev.Type.IsMouseButton() {
		threshold := opts.Thresholds.For(ev.Type, ev.IsTablet())
		if mouse.DragExceeded(ev.Position.Sub(ev.PrevPress.Position), threshold) {
			return false
		}
	}
	if ev.PrevPress.Time.IsZero() {
		return false
	}
	elapsed := ev.Time.Sub(ev.PrevPress.Time)
	return elapsed >= 0 && elapsed < opts.DoubleClickTime
}

func (s *State) armPress(ev *event.Event) {
	s.PrevPress = event.PressInfo{
		Type:        ev.Type,
		Time:        ev.Time,
		Position:    ev.Position,
		Modifiers:   ev.Modifiers,
		KeyModifier: ev.KeyModifier,
	}
	ev.PrevPress = s.PrevPress
}

// UpdateModifierKeys applies a keyboard press or release to the modifier
// bits and the key-modifier latch, adjusting ev to match.
//
// Modifier keys set or clear their bit. Any other key latches itself in the
// state on press when nothing is latched; the event that latches does not
// carry the latch itself. Releasing the latched key clears it. A press of the
// latched key (auto-repeat) carries no key-modifier. An unknown key clears
// the latch, since no binding can name it.
func (s *State) UpdateModifierKeys(ev *event.Event) {
	if mod := ev.Type.Modifier(); mod != key.ModNone {
		ev.Modifiers = ev.Modifiers.Set(mod, ev.Value == key.Press)
		return
	}

	switch ev.Value {
	case key.Press:
		if ev.KeyModifier == key.TypeNone {
			s.KeyModifier = ev.Type
		}
	case key.Release:
		if ev.KeyModifier == ev.Type {
			ev.KeyModifier = key.TypeNone
			s.KeyModifier = key.TypeNone
		}
	}

	switch {
	case ev.KeyModifier == ev.Type:
		ev.KeyModifier = key.TypeNone
	case ev.KeyModifier == key.KeyUnknown || ev.Type == key.KeyUnknown:
		ev.KeyModifier = key.TypeNone
		s.KeyModifier = key.TypeNone
	}
}

// SyncModifiers replaces the held modifiers, used when the window regains
// focus and the platform reports the real modifier state.
func (s *State) SyncModifiers(mods key.Modifier) {
	s.Modifiers = mods
}

// ClearModifiers drops held modifiers and the key-modifier latch, used when
// the window loses focus and releases would never arrive.
func (s *State) ClearModifiers() {
	s.Modifiers = key.ModNone
	s.KeyModifier = key.TypeNone
}
