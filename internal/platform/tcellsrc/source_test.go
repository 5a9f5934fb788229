package tcellsrc

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/input/key"
	"github.com/dshills/wmevent/internal/input/mouse"
	"github.com/dshills/wmevent/internal/platform"
)

// keys returns the (code, down) pairs of the key events in evs.
func keys(t *testing.T, evs []platform.Event) []string {
	t.Helper()
	var out []string
	for _, ev := range evs {
		k, ok := ev.(*platform.Key)
		require.True(t, ok, "unexpected %T", ev)
		dir := "up"
		if k.Down {
			dir = "down"
		}
		out = append(out, k.Code.Type().String()+" "+dir)
	}
	return out
}

func TestRuneKeyPressAndRelease(t *testing.T) {
	s := New()
	b := s.Translate(tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone))

	assert.Equal(t, []string{"G down", "G up"}, keys(t, b.Events))
	press := b.Events[0].(*platform.Key)
	assert.Equal(t, []byte("g"), press.Text)
	assert.Nil(t, b.Events[1].(*platform.Key).Text)
}

func TestUppercaseHoldsShift(t *testing.T) {
	s := New()
	b := s.Translate(tcell.NewEventKey(tcell.KeyRune, 'G', tcell.ModNone))
	assert.Equal(t, []string{"LEFT_SHIFT down", "G down", "G up"}, keys(t, b.Events))

	b = s.Translate(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	assert.Equal(t, []string{"LEFT_SHIFT up", "X down", "X up"}, keys(t, b.Events))
}

func TestControlLetters(t *testing.T) {
	s := New()
	b := s.Translate(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl))
	assert.Equal(t, []string{"LEFT_CTRL down", "S down", "S up"}, keys(t, b.Events))
}

func TestSpecialKeysBeforeControlRange(t *testing.T) {
	cases := []struct {
		k    tcell.Key
		want platform.KeyCode
	}{
		{tcell.KeyTab, platform.CodeTab},
		{tcell.KeyEnter, platform.CodeEnter},
		{tcell.KeyBackspace, platform.CodeBackspace},
		{tcell.KeyEscape, platform.CodeEsc},
		{tcell.KeyUp, platform.CodeUpArrow},
		{tcell.KeyF5, platform.CodeF1 + 4},
	}
	for _, tc := range cases {
		code, text, mods := keyCode(tcell.NewEventKey(tc.k, 0, tcell.ModNone))
		assert.Equal(t, tc.want, code, "key %v", tc.k)
		assert.Nil(t, text)
		assert.Equal(t, tcell.ModNone, mods, "key %v", tc.k)
	}
}

func TestRuneCodes(t *testing.T) {
	cases := []struct {
		r       rune
		want    platform.KeyCode
		shifted bool
	}{
		{'a', platform.CodeA, false},
		{'Z', platform.CodeZ, true},
		{'7', platform.Code0 + 7, false},
		{'&', platform.Code0 + 7, true},
		{'?', platform.CodeSlash, true},
		{' ', platform.CodeSpace, false},
		{'é', platform.CodeUnknown, false},
	}
	for _, tc := range cases {
		code, shifted := runeCode(tc.r)
		assert.Equal(t, tc.want, code, "rune %q", tc.r)
		assert.Equal(t, tc.shifted, shifted, "rune %q", tc.r)
	}
}

func TestUnicodeRuneCarriesText(t *testing.T) {
	s := New()
	b := s.Translate(tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone))
	require.Len(t, b.Events, 2)
	press := b.Events[0].(*platform.Key)
	assert.Equal(t, platform.CodeUnknown, press.Code)
	assert.Equal(t, []byte("é"), press.Text)
}

func TestMouseButtonsFromMaskChanges(t *testing.T) {
	s := &Source{CellWidth: 8, CellHeight: 16}

	b := s.Translate(tcell.NewEventMouse(2, 3, tcell.ButtonPrimary, tcell.ModNone))
	require.Len(t, b.Events, 2)
	mv := b.Events[0].(*platform.CursorMove)
	assert.Equal(t, mouse.Position{X: 16, Y: 48}, mv.Position)
	btn := b.Events[1].(*platform.Button)
	assert.Equal(t, mouse.ButtonLeft, btn.Button)
	assert.True(t, btn.Down)

	// Same position, same mask: nothing new.
	b = s.Translate(tcell.NewEventMouse(2, 3, tcell.ButtonPrimary, tcell.ModNone))
	assert.Empty(t, b.Events)

	b = s.Translate(tcell.NewEventMouse(4, 3, tcell.ButtonNone, tcell.ModNone))
	require.Len(t, b.Events, 2)
	assert.IsType(t, &platform.CursorMove{}, b.Events[0])
	up := b.Events[1].(*platform.Button)
	assert.Equal(t, mouse.ButtonLeft, up.Button)
	assert.False(t, up.Down)
	assert.Equal(t, mouse.Position{X: 32, Y: 48}, s.Position())
}

func TestWheelIsNotHeld(t *testing.T) {
	s := New()
	s.Translate(tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone))

	b := s.Translate(tcell.NewEventMouse(1, 1, tcell.WheelDown, tcell.ModNone))
	require.Len(t, b.Events, 1)
	w := b.Events[0].(*platform.Wheel)
	assert.Equal(t, platform.WheelVertical, w.Axis)
	assert.Equal(t, -1, w.Steps)

	b = s.Translate(tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone))
	assert.Empty(t, b.Events)
}

func TestMouseModifiersBecomeKeys(t *testing.T) {
	s := New()
	b := s.Translate(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModCtrl))
	require.Len(t, b.Events, 2)
	k := b.Events[0].(*platform.Key)
	assert.Equal(t, platform.CodeLeftCtrl, k.Code)
	assert.True(t, k.Down)
	assert.IsType(t, &platform.CursorMove{}, b.Events[1])
}

func TestResize(t *testing.T) {
	s := New()
	b := s.Translate(tcell.NewEventResize(120, 40))
	require.NotNil(t, b.Resize)
	assert.Equal(t, Size{Width: 120, Height: 40}, *b.Resize)
	assert.Empty(t, b.Events)
}

func TestFocus(t *testing.T) {
	s := New()
	s.Translate(tcell.NewEventMouse(3, 4, tcell.ButtonPrimary, tcell.ModShift))

	b := s.Translate(tcell.NewEventFocus(false))
	require.Len(t, b.Events, 1)
	assert.False(t, b.Events[0].(*platform.Focus).In)

	b = s.Translate(tcell.NewEventFocus(true))
	require.Len(t, b.Events, 1)
	in := b.Events[0].(*platform.Focus)
	assert.True(t, in.In)
	assert.Equal(t, key.Modifier(0), in.Modifiers, "focus loss drops held modifiers")
	assert.Equal(t, mouse.Position{X: 3, Y: 4}, in.Position)
}

func TestPasteBecomesDrop(t *testing.T) {
	s := New()
	s.Translate(tcell.NewEventMouse(2, 1, tcell.ButtonNone, tcell.ModNone))

	assert.Empty(t, s.Translate(tcell.NewEventPaste(true)).Events)
	for _, r := range "hi" {
		assert.Empty(t, s.Translate(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)).Events)
	}
	s.Translate(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	b := s.Translate(tcell.NewEventPaste(false))
	require.Len(t, b.Events, 1)
	drop := b.Events[0].(*platform.Drop)
	assert.Equal(t, event.DragText, drop.Data.Kind)
	assert.Equal(t, "hi\n", drop.Data.Text)
	assert.Equal(t, mouse.Position{X: 2, Y: 1}, drop.Position)

	// Keys after the paste are keys again.
	assert.Len(t, s.Translate(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)).Events, 2)
}
