package state

import (
	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/input/key"
)

// EmulationOptions selects the input emulations.
type EmulationOptions struct {
	// TwoButtonMouse turns Modifier+LeftMouse into MiddleMouse.
	TwoButtonMouse bool
	// TwoButtonModifier is ModAlt or ModOS.
	TwoButtonModifier key.Modifier
	// Numpad maps the digit row and a few symbol keys to the numpad.
	Numpad bool
}

// Emulator rewrites events for two-button mice and keyboards without a
// numpad. It remembers an emulated middle button press so the release is
// emulated too even when the modifier was let go first.
type Emulator struct {
	emulating key.Type
}

// Emulating returns the event type currently being emulated, if any.
func (e *Emulator) Emulating() key.Type {
	return e.emulating
}

// Reset forgets an emulated press.
func (e *Emulator) Reset() {
	e.emulating = key.TypeNone
}

// Apply rewrites ev in place. With testOnly the latch is not changed, which
// lets callers ask what an event would become.
func (e *Emulator) Apply(ev *event.Event, opts EmulationOptions, testOnly bool) {
	if opts.TwoButtonMouse && ev.Type == key.LeftMouse {
		mod := opts.TwoButtonModifier
		if mod == key.ModNone {
			mod = key.ModAlt
		}
		switch ev.Value {
		case key.Press:
			if ev.Modifiers.Has(mod) {
				ev.Modifiers = ev.Modifiers.Without(mod)
				ev.Type = key.MiddleMouse
				if !testOnly {
					e.emulating = key.MiddleMouse
				}
			}
		case key.Release:
			if e.emulating == key.MiddleMouse {
				ev.Type = key.MiddleMouse
				ev.Modifiers = ev.Modifiers.Without(mod)
			}
			if !testOnly {
				e.emulating = key.TypeNone
			}
		}
	}

	if opts.Numpad {
		if t, ok := numpadEmulation(ev.Type); ok {
			ev.Type = t
		}
	}
}

func numpadEmulation(t key.Type) (key.Type, bool) {
	switch {
	case t >= key.Key0 && t <= key.Key9:
		return key.KeyPad0 + (t - key.Key0), true
	case t == key.KeyMinus:
		return key.KeyPadMinus, true
	case t == key.KeyEqual:
		return key.KeyPadPlus, true
	case t == key.KeyBackslash:
		return key.KeyPadSlash, true
	}
	return t, false
}
