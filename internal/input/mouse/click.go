package mouse

import "github.com/dshills/wmevent/internal/input/key"

// ClickTracker holds the per-window flags that turn an unhandled press into
// a later Click or ClickDrag event.
//
// A press that no handler consumed arms both checks. The click check fires on
// the matching release if the cursor stayed within the drag threshold. The
// drag check fires once on the first motion that leaves the threshold.
type ClickTracker struct {
	checkClick bool
	checkDrag  bool
	pressType  key.Type
}

// Arm records an unhandled press of typ.
func (t *ClickTracker) Arm(typ key.Type) {
	t.checkClick = true
	t.checkDrag = true
	t.pressType = typ
}

// Reset clears both checks.
func (t *ClickTracker) Reset() {
	*t = ClickTracker{}
}

// CancelClick disarms the click check only. Motion past the drag threshold
// does this so a release can no longer produce a click.
func (t *ClickTracker) CancelClick() {
	t.checkClick = false
}

// CancelDrag disarms the drag check only.
func (t *ClickTracker) CancelDrag() {
	t.checkDrag = false
}

// ClickArmed reports whether a release of typ should produce a click.
func (t *ClickTracker) ClickArmed(typ key.Type) bool {
	return t.checkClick && t.pressType == typ
}

// DragArmed reports whether motion may still produce a click-drag.
func (t *ClickTracker) DragArmed() bool {
	return t.checkDrag
}

// PressType returns the type of the armed press.
func (t *ClickTracker) PressType() key.Type {
	return t.pressType
}
