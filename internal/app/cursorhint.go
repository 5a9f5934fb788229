package app

import (
	"strings"

	"github.com/dshills/wmevent/internal/input/key"
	"github.com/dshills/wmevent/internal/screen"
	"github.com/dshills/wmevent/internal/wm"
)

// hintButtons are the mouse buttons the cursor hint describes.
var hintButtons = [...]struct {
	typ   key.Type
	label string
}{
	{key.LeftMouse, "LMB"},
	{key.MiddleMouse, "MMB"},
	{key.RightMouse, "RMB"},
}

// Columns of cursorHint.text.
const (
	hintPress = iota
	hintDrag
)

// hintState is what the hint depends on. Keymap lookups only run again
// when it changes.
type hintState struct {
	modifiers key.Modifier
	space     screen.SpaceType
	region    screen.RegionType
	tool      screen.Tool
}

// cursorHint tells, per mouse button, which operator a press or click and
// a drag would run under the cursor.
type cursorHint struct {
	manager *wm.Manager
	state   hintState
	valid   bool
	text    [len(hintButtons)][2]string
	lookups int
}

func newCursorHint(m *wm.Manager) *cursorHint {
	return &cursorHint{manager: m}
}

// invalidate forces the next refresh to look the keymaps up again.
func (h *cursorHint) invalidate() {
	h.valid = false
}

// refresh recomputes the hint when the modifiers, the space, region or the
// tool under the cursor changed, and reports whether it did. The hint is
// left alone while a modal handler runs.
func (h *cursorHint) refresh(w *wm.Window) bool {
	if w.HasModalUIOrOperator() {
		return false
	}
	st := w.State()
	cur := hintState{modifiers: st.Modifiers}
	if a := w.Screen.AreaAt(st.Position); a != nil {
		cur.space = a.Space
		if a.Tool != nil {
			cur.tool = *a.Tool
		}
		if r := a.RegionAt(st.Position); r != nil {
			cur.region = r.Type
		}
	}
	if h.valid && cur == h.state {
		return false
	}
	h.state, h.valid = cur, true
	h.lookups++

	for i, b := range hintButtons {
		h.text[i][hintPress] = h.lookup(w, b.typ, key.Press, key.Click)
		h.text[i][hintDrag] = h.lookup(w, b.typ, key.ClickDrag)
	}
	return true
}

// lookup returns the name of the operator the first of values would run
// for button typ, or "".
func (h *cursorHint) lookup(w *wm.Window, typ key.Type, values ...key.Value) string {
	for _, v := range values {
		ev := w.State().NewEvent()
		ev.Type, ev.Value = typ, v
		ev.Flags = 0
		ev.Text = ""
		ev.Payload = nil
		mt, ok := h.manager.MatchAt(w, ev)
		if !ok {
			continue
		}
		if ot, ok := h.manager.Operators().Get(mt.Item.Operator); ok && ot.Name != "" {
			return ot.Name
		}
		return mt.Item.Operator
	}
	return ""
}

// Text returns the hint of a button for a press or a drag.
func (h *cursorHint) Text(button, column int) string {
	return h.text[button][column]
}

// String renders the hint, for example "LMB Select, drag Box Select  MMB Pan View".
func (h *cursorHint) String() string {
	var parts []string
	for i, b := range hintButtons {
		press, drag := h.text[i][hintPress], h.text[i][hintDrag]
		switch {
		case press != "" && drag != "":
			parts = append(parts, b.label+" "+press+", drag "+drag)
		case press != "":
			parts = append(parts, b.label+" "+press)
		case drag != "":
			parts = append(parts, b.label+" drag "+drag)
		}
	}
	return strings.Join(parts, "  ")
}
