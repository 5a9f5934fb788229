package key

import (
	"fmt"
	"strings"
)

// Value is the state transition an event reports.
type Value int8

const (
	// ValueAny matches every value. Keymap only.
	ValueAny Value = -1
	// ValueNothing is carried by motion, trackpad and timer events.
	ValueNothing Value = 0
	// Press is a key or button going down.
	Press Value = 1
	// Release is a key or button going up.
	Release Value = 2
	// Click is synthesized on release when the press did not turn into a drag.
	Click Value = 3
	// DoubleClick is a press repeating the previous press quickly enough.
	DoubleClick Value = 4
	// ClickDrag is synthesized when the cursor leaves the drag threshold
	// while a button or key is held.
	ClickDrag Value = 5
)

var valueNames = map[Value]string{
	ValueAny:     "ANY",
	ValueNothing: "NOTHING",
	Press:        "PRESS",
	Release:      "RELEASE",
	Click:        "CLICK",
	DoubleClick:  "DOUBLE_CLICK",
	ClickDrag:    "CLICK_DRAG",
}

// String returns the identifier used in keymap files.
func (v Value) String() string {
	if name, ok := valueNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Value(%d)", int8(v))
}

// ParseValue parses a value identifier (case-insensitive).
func ParseValue(s string) (Value, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	switch norm {
	case "DBL_CLICK", "DOUBLECLICK":
		return DoubleClick, nil
	case "DRAG", "CLICKDRAG":
		return ClickDrag, nil
	}
	for v, name := range valueNames {
		if name == norm {
			return v, nil
		}
	}
	return ValueNothing, fmt.Errorf("%w: unknown value %q", ErrInvalidSpec, s)
}

// IsDefinitive returns true for press and release, the values that update
// per-window event state.
func (v Value) IsDefinitive() bool {
	return v == Press || v == Release
}
