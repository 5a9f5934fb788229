package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/input/key"
)

func TestEmulateMiddleMouse(t *testing.T) {
	var e Emulator
	o := EmulationOptions{TwoButtonMouse: true, TwoButtonModifier: key.ModAlt}

	press := &event.Event{Type: key.LeftMouse, Value: key.Press, Modifiers: key.ModAlt | key.ModShift}
	e.Apply(press, o, false)
	assert.Equal(t, key.MiddleMouse, press.Type)
	assert.Equal(t, key.ModShift, press.Modifiers)
	assert.Equal(t, key.MiddleMouse, e.Emulating())

	// Alt released before the button: release is still emulated.
	release := &event.Event{Type: key.LeftMouse, Value: key.Release}
	e.Apply(release, o, false)
	assert.Equal(t, key.MiddleMouse, release.Type)
	assert.Equal(t, key.TypeNone, e.Emulating())

	plain := &event.Event{Type: key.LeftMouse, Value: key.Release}
	e.Apply(plain, o, false)
	assert.Equal(t, key.LeftMouse, plain.Type)
}

func TestEmulateMiddleMouseOSKey(t *testing.T) {
	var e Emulator
	o := EmulationOptions{TwoButtonMouse: true, TwoButtonModifier: key.ModOS}

	alt := &event.Event{Type: key.LeftMouse, Value: key.Press, Modifiers: key.ModAlt}
	e.Apply(alt, o, false)
	assert.Equal(t, key.LeftMouse, alt.Type)

	os := &event.Event{Type: key.LeftMouse, Value: key.Press, Modifiers: key.ModOS}
	e.Apply(os, o, false)
	assert.Equal(t, key.MiddleMouse, os.Type)
}

func TestEmulateTestOnlyKeepsLatch(t *testing.T) {
	var e Emulator
	o := EmulationOptions{TwoButtonMouse: true}

	ev := &event.Event{Type: key.LeftMouse, Value: key.Press, Modifiers: key.ModAlt}
	e.Apply(ev, o, true)
	assert.Equal(t, key.MiddleMouse, ev.Type)
	assert.Equal(t, key.TypeNone, e.Emulating())
}

func TestEmulateDisabled(t *testing.T) {
	var e Emulator
	ev := &event.Event{Type: key.LeftMouse, Value: key.Press, Modifiers: key.ModAlt}
	e.Apply(ev, EmulationOptions{}, false)
	assert.Equal(t, key.LeftMouse, ev.Type)
	assert.Equal(t, key.ModAlt, ev.Modifiers)
}

func TestEmulateNumpad(t *testing.T) {
	tests := []struct {
		in, want key.Type
	}{
		{key.Key0, key.KeyPad0},
		{key.Key7, key.KeyPad7},
		{key.KeyMinus, key.KeyPadMinus},
		{key.KeyEqual, key.KeyPadPlus},
		{key.KeyBackslash, key.KeyPadSlash},
		{key.KeyA, key.KeyA},
	}

	var e Emulator
	for _, tt := range tests {
		ev := &event.Event{Type: tt.in, Value: key.Press}
		e.Apply(ev, EmulationOptions{Numpad: true}, false)
		assert.Equal(t, tt.want, ev.Type, "input %s", tt.in)
	}
}
