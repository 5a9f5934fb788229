package mouse

import "github.com/dshills/wmevent/internal/input/key"

// Thresholds holds the distance, in pixels, the cursor has to travel while a
// button or key is held before the press turns into a drag.
type Thresholds struct {
	Mouse    int
	Tablet   int
	Keyboard int
}

// For returns the threshold that applies to a press of typ. Tablet input
// uses its own threshold since pens jitter more than mice.
func (t Thresholds) For(typ key.Type, tablet bool) int {
	switch {
	case typ.IsMouseButton():
		if tablet {
			return t.Tablet
		}
		return t.Mouse
	case typ.IsKeyboard():
		return t.Keyboard
	default:
		return t.Mouse
	}
}

// DragExceeded reports whether delta moves further than threshold along
// either axis.
func DragExceeded(delta Position, threshold int) bool {
	return abs(delta.X) > threshold || abs(delta.Y) > threshold
}
