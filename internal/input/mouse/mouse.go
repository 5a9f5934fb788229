package mouse

import "github.com/dshills/wmevent/internal/input/key"

// Button represents a physical mouse button as reported by the platform.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonBack is the back navigation button (mouse button 4).
	ButtonBack
	// ButtonForward is the forward navigation button (mouse button 5).
	ButtonForward
	// Button6 is an extra button.
	Button6
	// Button7 is an extra button.
	Button7
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonBack:
		return "back"
	case ButtonForward:
		return "forward"
	case Button6:
		return "button6"
	case Button7:
		return "button7"
	default:
		return "none"
	}
}

// Type returns the event type for the button, or key.TypeNone.
func (b Button) Type() key.Type {
	switch b {
	case ButtonLeft:
		return key.LeftMouse
	case ButtonMiddle:
		return key.MiddleMouse
	case ButtonRight:
		return key.RightMouse
	case ButtonBack:
		return key.Button4Mouse
	case ButtonForward:
		return key.Button5Mouse
	case Button6:
		return key.Button6Mouse
	case Button7:
		return key.Button7Mouse
	default:
		return key.TypeNone
	}
}

// Position represents a window or desktop coordinate.
type Position struct {
	X int
	Y int
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Add returns p translated by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the offset from other to p.
func (p Position) Sub(other Position) Position {
	return Position{X: p.X - other.X, Y: p.Y - other.Y}
}

// Distance returns the Manhattan distance (|dx| + |dy|) between two positions.
func (p Position) Distance(other Position) int {
	d := p.Sub(other)
	return abs(d.X) + abs(d.Y)
}

// Rect is an axis-aligned rectangle. Max is exclusive.
type Rect struct {
	Min Position
	Max Position
}

// RectXYWH builds a rectangle from an origin and a size.
func RectXYWH(x, y, w, h int) Rect {
	return Rect{Min: Position{X: x, Y: y}, Max: Position{X: x + w, Y: y + h}}
}

// Width returns the rectangle width.
func (r Rect) Width() int { return r.Max.X - r.Min.X }

// Height returns the rectangle height.
func (r Rect) Height() int { return r.Max.Y - r.Min.Y }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Position) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// ContainsWithTitleBar reports whether p lies inside r or inside a band of
// tolerance pixels above its top edge, where the window decorations sit.
func (r Rect) ContainsWithTitleBar(p Position, tolerance int) bool {
	grown := r
	grown.Min.Y -= tolerance
	return grown.Contains(p)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
