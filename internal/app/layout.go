package app

import (
	"github.com/dshills/wmevent/internal/input/mouse"
	"github.com/dshills/wmevent/internal/screen"
)

// ToolSelectBox is the tool the 3D view starts with.
const ToolSelectBox = "builtin.select_box"

// layout splits the terminal into a 3D view on the left and a text editor
// on the right, above a one row status line. Sizes are in window pixels.
type layout struct {
	view *screen.Area
	text *screen.Area

	width, height int
	maximized     *screen.Area
	active        int
}

// areas returns the areas in cycle order.
func (l *layout) areas() []*screen.Area {
	return []*screen.Area{l.view, l.text}
}

// Active returns the area keyboard focus cycles to.
func (l *layout) Active() *screen.Area {
	return l.areas()[l.active]
}

func (l *layout) cycle() *screen.Area {
	l.active = (l.active + 1) % len(l.areas())
	return l.Active()
}

// resize lays the areas out for a window of width x height.
func (l *layout) resize(width, height int) {
	l.width, l.height = width, height
	body := height - 1
	if body < 1 {
		body = 1
	}
	if l.maximized != nil {
		for _, a := range l.areas() {
			if a == l.maximized {
				setRect(a, mouse.RectXYWH(0, 0, width, body))
			} else {
				setRect(a, mouse.Rect{})
			}
		}
		return
	}
	split := width / 2
	setRect(l.view, mouse.RectXYWH(0, 0, split, body))
	setRect(l.text, mouse.RectXYWH(split, 0, width-split, body))
}

// toggleMaximize maximizes a or restores the split layout.
func (l *layout) toggleMaximize(a *screen.Area) {
	if l.maximized != nil || a == nil {
		l.maximized = nil
	} else {
		l.maximized = a
	}
	l.resize(l.width, l.height)
}

// setRect moves an area and its regions. The header is the top row, the
// main region everything.
func setRect(a *screen.Area, r mouse.Rect) {
	a.Rect = r
	for _, reg := range a.Regions {
		switch reg.Type {
		case screen.RegionHeader:
			reg.Rect = mouse.Rect{Min: r.Min, Max: mouse.Position{X: r.Max.X, Y: min(r.Min.Y+1, r.Max.Y)}}
		default:
			reg.Rect = r
		}
	}
}
