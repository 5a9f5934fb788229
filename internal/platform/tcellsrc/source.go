package tcellsrc

import (
	"context"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/input/key"
	"github.com/dshills/wmevent/internal/input/mouse"
	"github.com/dshills/wmevent/internal/platform"
)

// Size is a terminal size in cells.
type Size struct {
	Width  int
	Height int
}

// Batch is what one tcell event translates to.
type Batch struct {
	Events []platform.Event
	// Resize is set when the terminal changed size.
	Resize *Size
}

// Source translates tcell events. It keeps the modifier and button masks of
// the previous event and is not safe for concurrent use.
type Source struct {
	// CellWidth and CellHeight scale cell positions to pixels.
	CellWidth  int
	CellHeight int

	mods    tcell.ModMask
	buttons tcell.ButtonMask
	pos     mouse.Position
	hasPos  bool

	pasting bool
	paste   strings.Builder
}

// New returns a source mapping one cell to one pixel.
func New() *Source {
	return &Source{CellWidth: 1, CellHeight: 1}
}

// Position returns the last cursor position in pixels.
func (s *Source) Position() mouse.Position {
	return s.pos
}

// Translate converts a tcell event. Events with no platform equivalent
// return an empty batch.
func (s *Source) Translate(ev tcell.Event) Batch {
	var b Batch
	switch e := ev.(type) {
	case *tcell.EventKey:
		b.Events = s.key(e)
	case *tcell.EventMouse:
		b.Events = s.mouse(e)
	case *tcell.EventResize:
		w, h := e.Size()
		b.Resize = &Size{Width: w, Height: h}
	case *tcell.EventFocus:
		b.Events = s.focus(e)
	case *tcell.EventPaste:
		b.Events = s.pasted(e)
	}
	return b
}

// Pump reads events from scr until ctx is done or the screen is finalized
// and sends their translations to out. It runs on its own goroutine; the
// source must not be used elsewhere while it runs.
func (s *Source) Pump(ctx context.Context, scr tcell.Screen, out chan<- Batch) {
	for {
		ev := scr.PollEvent()
		if ev == nil {
			return
		}
		b := s.Translate(ev)
		if len(b.Events) == 0 && b.Resize == nil {
			continue
		}
		select {
		case out <- b:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Source) key(e *tcell.EventKey) []platform.Event {
	if s.pasting {
		switch e.Key() {
		case tcell.KeyRune:
			s.paste.WriteRune(e.Rune())
		case tcell.KeyEnter:
			s.paste.WriteByte('\n')
		case tcell.KeyTab:
			s.paste.WriteByte('\t')
		}
		return nil
	}
	when := e.When()
	code, text, mods := keyCode(e)
	out := s.syncMods(when, mods)
	if code == platform.CodeUnknown && text == nil {
		return out
	}
	h := platform.Header{Time: when}
	return append(out,
		&platform.Key{Header: h, Code: code, Down: true, Text: text},
		&platform.Key{Header: h, Code: code, Down: false},
	)
}

func (s *Source) mouse(e *tcell.EventMouse) []platform.Event {
	when := e.When()
	h := platform.Header{Time: when}
	out := s.syncMods(when, e.Modifiers())

	x, y := e.Position()
	pos := mouse.Position{X: x * s.CellWidth, Y: y * s.CellHeight}
	if !s.hasPos || pos != s.pos {
		s.pos, s.hasPos = pos, true
		out = append(out, &platform.CursorMove{Header: h, Position: pos})
	}

	mask := e.Buttons()
	held := mask &^ wheelMask
	for _, bm := range buttonMap {
		was, is := s.buttons&bm.mask != 0, held&bm.mask != 0
		if was != is {
			out = append(out, &platform.Button{Header: h, Button: bm.button, Down: is})
		}
	}
	s.buttons = held

	for _, w := range wheelMap {
		if mask&w.mask != 0 {
			out = append(out, &platform.Wheel{Header: h, Axis: w.axis, Steps: w.steps})
		}
	}
	return out
}

func (s *Source) focus(e *tcell.EventFocus) []platform.Event {
	h := platform.Header{Time: e.When()}
	if !e.Focused {
		s.mods = tcell.ModNone
		s.buttons = tcell.ButtonNone
		return []platform.Event{&platform.Focus{Header: h}}
	}
	return []platform.Event{&platform.Focus{
		Header:    h,
		In:        true,
		Modifiers: modifiers(s.mods),
		Position:  s.pos,
	}}
}

// pasted collects bracketed paste text and drops it on the window at the
// cursor once the paste ends.
func (s *Source) pasted(e *tcell.EventPaste) []platform.Event {
	if e.Start() {
		s.pasting = true
		s.paste.Reset()
		return nil
	}
	if !s.pasting {
		return nil
	}
	s.pasting = false
	text := s.paste.String()
	s.paste.Reset()
	if text == "" {
		return nil
	}
	return []platform.Event{&platform.Drop{
		Header:   platform.Header{Time: e.When()},
		Position: s.pos,
		Data:     event.DragData{Kind: event.DragText, Text: text},
	}}
}

// syncMods presses and releases modifier keys until the held set matches
// mods. Releases come first.
func (s *Source) syncMods(when time.Time, mods tcell.ModMask) []platform.Event {
	if mods == s.mods {
		return nil
	}
	h := platform.Header{Time: when}
	var out []platform.Event
	for _, m := range modMap {
		if s.mods&m.mask != 0 && mods&m.mask == 0 {
			out = append(out, &platform.Key{Header: h, Code: m.code, Down: false})
		}
	}
	for _, m := range modMap {
		if s.mods&m.mask == 0 && mods&m.mask != 0 {
			out = append(out, &platform.Key{Header: h, Code: m.code, Down: true})
		}
	}
	s.mods = mods
	return out
}

var modMap = []struct {
	mask tcell.ModMask
	code platform.KeyCode
}{
	{tcell.ModShift, platform.CodeLeftShift},
	{tcell.ModCtrl, platform.CodeLeftCtrl},
	{tcell.ModAlt, platform.CodeLeftAlt},
	{tcell.ModMeta, platform.CodeOS},
}

var buttonMap = []struct {
	mask   tcell.ButtonMask
	button mouse.Button
}{
	{tcell.ButtonPrimary, mouse.ButtonLeft},
	{tcell.ButtonMiddle, mouse.ButtonMiddle},
	{tcell.ButtonSecondary, mouse.ButtonRight},
	{tcell.Button4, mouse.ButtonBack},
	{tcell.Button5, mouse.ButtonForward},
	{tcell.Button6, mouse.Button6},
	{tcell.Button7, mouse.Button7},
}

const wheelMask = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

var wheelMap = []struct {
	mask  tcell.ButtonMask
	axis  platform.WheelAxis
	steps int
}{
	{tcell.WheelUp, platform.WheelVertical, 1},
	{tcell.WheelDown, platform.WheelVertical, -1},
	{tcell.WheelLeft, platform.WheelHorizontal, -1},
	{tcell.WheelRight, platform.WheelHorizontal, 1},
}

func modifiers(m tcell.ModMask) key.Modifier {
	var out key.Modifier
	if m&tcell.ModShift != 0 {
		out |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		out |= key.ModOS
	}
	return out
}

// keyCode returns the platform code of a key event, the text it types and
// the modifiers held with it.
func keyCode(e *tcell.EventKey) (platform.KeyCode, []byte, tcell.ModMask) {
	mods := e.Modifiers()
	k := e.Key()

	if k == tcell.KeyRune {
		r := e.Rune()
		code, shifted := runeCode(r)
		if shifted {
			mods |= tcell.ModShift
		}
		var text []byte
		if mods&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) == 0 && unicode.IsPrint(r) {
			text = utf8.AppendRune(nil, r)
		}
		return code, text, mods
	}

	if code, ok := specialKeys[k]; ok {
		if k == tcell.KeyBacktab {
			mods |= tcell.ModShift
		}
		return code, nil, mods
	}
	switch {
	case k >= tcell.KeyF1 && k <= tcell.KeyF24:
		return platform.CodeF1 + platform.KeyCode(k-tcell.KeyF1), nil, mods
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return platform.CodeA + platform.KeyCode(k-tcell.KeyCtrlA), nil, mods | tcell.ModCtrl
	}
	return platform.CodeUnknown, nil, mods
}

// specialKeys is checked before the control range since tab, enter,
// backspace and escape share their codes with control letters.
var specialKeys = map[tcell.Key]platform.KeyCode{
	tcell.KeyTab:        platform.CodeTab,
	tcell.KeyBacktab:    platform.CodeTab,
	tcell.KeyEnter:      platform.CodeEnter,
	tcell.KeyBackspace:  platform.CodeBackspace,
	tcell.KeyBackspace2: platform.CodeBackspace,
	tcell.KeyEscape:     platform.CodeEsc,
	tcell.KeyUp:         platform.CodeUpArrow,
	tcell.KeyDown:       platform.CodeDownArrow,
	tcell.KeyLeft:       platform.CodeLeftArrow,
	tcell.KeyRight:      platform.CodeRightArrow,
	tcell.KeyHome:       platform.CodeHome,
	tcell.KeyEnd:        platform.CodeEnd,
	tcell.KeyPgUp:       platform.CodePageUp,
	tcell.KeyPgDn:       platform.CodePageDown,
	tcell.KeyInsert:     platform.CodeInsert,
	tcell.KeyDelete:     platform.CodeDelete,
	tcell.KeyPause:      platform.CodePause,
	tcell.KeyPrint:      platform.CodePrintScreen,
}

// runeCode maps a typed rune to the key that produces it on a US layout.
// Runes with no key of their own map to CodeUnknown and only carry text.
func runeCode(r rune) (platform.KeyCode, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return platform.CodeA + platform.KeyCode(r-'a'), false
	case r >= 'A' && r <= 'Z':
		return platform.CodeA + platform.KeyCode(r-'A'), true
	case r >= '0' && r <= '9':
		return platform.Code0 + platform.KeyCode(r-'0'), false
	}
	switch r {
	case ' ', '\'', ',', '-', '.', '/', ';', '=', '[', '\\', ']', '`':
		return platform.KeyCode(r), false
	case '+':
		return platform.CodePlus, false
	}
	if c, ok := shiftedRunes[r]; ok {
		return c, true
	}
	return platform.CodeUnknown, false
}

var shiftedRunes = map[rune]platform.KeyCode{
	'!': '1', '@': '2', '#': '3', '$': '4', '%': '5',
	'^': '6', '&': '7', '*': '8', '(': '9', ')': '0',
	'_': platform.CodeMinus, '"': platform.CodeQuote, '<': platform.CodeComma,
	'>': platform.CodePeriod, '?': platform.CodeSlash, ':': platform.CodeSemicolon,
	'{': platform.CodeLeftBracket, '}': platform.CodeRightBracket,
	'|': platform.CodeBackslash, '~': platform.CodeAccentGrave,
}
