package keymap

import (
	"fmt"
	"maps"
	"strings"

	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/input/key"
)

// ModState is the requirement an item places on one modifier.
type ModState int8

const (
	// ModAny accepts the modifier held or not.
	ModAny ModState = -1
	// ModOff requires the modifier released.
	ModOff ModState = 0
	// ModOn requires the modifier held.
	ModOn ModState = 1
)

func (m ModState) accepts(held bool) bool {
	switch m {
	case ModAny:
		return true
	case ModOn:
		return held
	default:
		return !held
	}
}

// ItemFlag is a bit set of item flags.
type ItemFlag uint8

const (
	// ItemInactive disables the item without removing it.
	ItemInactive ItemFlag = 1 << iota
	// ItemRepeatIgnore makes the item ignore auto-repeat presses.
	ItemRepeatIgnore
	// ItemUserModified marks items changed by a user keymap file.
	ItemUserModified
)

// Item binds a trigger to an operator, or in a modal keymap to a modal
// value the running operator interprets.
type Item struct {
	// ID is unique within the keymap, assigned by Keymap.Add.
	ID int

	Operator   string
	ModalValue string

	Type  key.Type
	Value key.Value

	Shift ModState
	Ctrl  ModState
	Alt   ModState
	OS    ModState

	// KeyModifier is a key that must be held, for chords like Q+G.
	KeyModifier key.Type

	Flags ItemFlag

	// Properties are passed to the operator when the item fires.
	Properties map[string]any
}

// NewItem parses trigger and returns an item invoking operator.
func NewItem(trigger, operator string) (*Item, error) {
	it, err := ParseTrigger(trigger)
	if err != nil {
		return nil, err
	}
	it.Operator = operator
	return it, nil
}

// MustItem is NewItem that panics on error, for built-in keymaps.
func MustItem(trigger, operator string) *Item {
	it, err := NewItem(trigger, operator)
	if err != nil {
		panic(err)
	}
	return it
}

// WithProperties sets the operator properties and returns the item.
func (it *Item) WithProperties(props map[string]any) *Item {
	it.Properties = props
	return it
}

// WithFlags adds flags and returns the item.
func (it *Item) WithFlags(f ItemFlag) *Item {
	it.Flags |= f
	return it
}

// Active reports whether the item can match.
func (it *Item) Active() bool {
	return it.Flags&ItemInactive == 0
}

// Clone returns a copy with its own property map.
func (it *Item) Clone() *Item {
	c := *it
	c.Properties = maps.Clone(it.Properties)
	return &c
}

// Matches reports whether ev triggers the item.
//
// A modifier key used as the event type itself is not checked against the
// item's requirement for that modifier, so a binding on LEFT_SHIFT matches
// whether or not the event already carries the shift bit.
func (it *Item) Matches(ev *event.Event) bool {
	if it.Flags&ItemInactive != 0 {
		return false
	}
	if ev.IsRepeat() && it.Flags&ItemRepeatIgnore != 0 {
		return false
	}

	if it.Type == key.TextInput && ev.Value == key.Press {
		if ev.Type.IsKeyboard() && ev.Text != "" {
			return true
		}
	}

	switch it.Type {
	case key.TypeAny:
	case key.TabletStylus, key.TabletEraser:
		// Tablet tools also report hover and key presses.
		if ev.Type != key.LeftMouse {
			return false
		}
		if it.Type == key.TabletStylus && ev.Tablet.Active != event.TabletStylus {
			return false
		}
		if it.Type == key.TabletEraser && ev.Tablet.Active != event.TabletEraser {
			return false
		}
	default:
		if ev.Type != it.Type {
			return false
		}
	}

	if it.Value != key.ValueAny && ev.Value != it.Value {
		return false
	}

	if !it.Shift.accepts(ev.Modifiers.HasShift()) && ev.Type.Modifier() != key.ModShift {
		return false
	}
	if !it.Ctrl.accepts(ev.Modifiers.HasCtrl()) && ev.Type.Modifier() != key.ModCtrl {
		return false
	}
	if !it.Alt.accepts(ev.Modifiers.HasAlt()) && ev.Type.Modifier() != key.ModAlt {
		return false
	}
	if !it.OS.accepts(ev.Modifiers.HasOS()) && ev.Type.Modifier() != key.ModOS {
		return false
	}

	if it.KeyModifier != key.TypeNone && ev.KeyModifier != it.KeyModifier {
		return false
	}
	return true
}

// Trigger formats the item trigger in the form ParseTrigger accepts.
func (it *Item) Trigger() string {
	var b strings.Builder
	allAny := it.Shift == ModAny && it.Ctrl == ModAny && it.Alt == ModAny && it.OS == ModAny
	if allAny {
		b.WriteString("any+")
	} else {
		for _, m := range []struct {
			state ModState
			name  string
		}{{it.Ctrl, "ctrl"}, {it.Alt, "alt"}, {it.Shift, "shift"}, {it.OS, "os"}} {
			if m.state == ModOn {
				b.WriteString(m.name)
				b.WriteByte('+')
			}
		}
	}
	if it.KeyModifier != key.TypeNone {
		b.WriteString(it.KeyModifier.String())
		b.WriteByte('+')
	}
	b.WriteString(it.Type.String())
	if it.Value != key.Press {
		b.WriteByte(':')
		b.WriteString(strings.ToLower(it.Value.String()))
	}
	return b.String()
}

// String returns a description for logs.
func (it *Item) String() string {
	target := it.Operator
	if target == "" {
		target = "modal:" + it.ModalValue
	}
	return fmt.Sprintf("%s -> %s", it.Trigger(), target)
}

// ParseTrigger parses a trigger string into an item without an operator.
//
// The form is [any+][modifiers+][keymodifier+]TYPE[:value], for example
// "ctrl+shift+A", "any+LEFTMOUSE:click", "Q+G" or "TEXTINPUT". Modifiers
// that are not listed must be released, unless the trigger starts with
// "any", which accepts every modifier not listed. The value defaults to
// press.
func ParseTrigger(trigger string) (*Item, error) {
	spec := strings.TrimSpace(trigger)
	if spec == "" {
		return nil, fmt.Errorf("%w: empty trigger", ErrInvalidTrigger)
	}

	it := &Item{Value: key.Press}
	if i := strings.LastIndexByte(spec, ':'); i >= 0 {
		v, err := key.ParseValue(spec[i+1:])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidTrigger, trigger, err)
		}
		it.Value = v
		spec = spec[:i]
	}

	def := ModOff
	if lower := strings.ToLower(spec); strings.HasPrefix(lower, "any+") {
		def = ModAny
		spec = spec[len("any+"):]
	}

	combo, err := key.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidTrigger, trigger, err)
	}
	it.Type = combo.Type
	it.KeyModifier = combo.KeyModifier
	it.Shift = modState(combo.Mods, key.ModShift, def)
	it.Ctrl = modState(combo.Mods, key.ModCtrl, def)
	it.Alt = modState(combo.Mods, key.ModAlt, def)
	it.OS = modState(combo.Mods, key.ModOS, def)
	return it, nil
}

func modState(mods, mod key.Modifier, def ModState) ModState {
	if mods.Has(mod) {
		return ModOn
	}
	return def
}
