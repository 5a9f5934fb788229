package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/wmevent/internal/input/mouse"
	"github.com/dshills/wmevent/internal/screen"
)

var (
	styleStatus = tcell.StyleDefault.Reverse(true)
	styleHeader = tcell.StyleDefault.Bold(true).Underline(true)
	styleActive = styleHeader.Foreground(tcell.ColorYellow)
	styleBody   = tcell.StyleDefault
)

// draw paints the areas and the status line. It runs on the loop goroutine
// in answer to window.draw.
func (app *Application) draw() {
	s := app.screen
	if s == nil {
		return
	}
	s.Clear()
	w, h := s.Size()

	for i, a := range app.layout.areas() {
		if a.Rect.Width() <= 0 {
			continue
		}
		style := styleHeader
		if i == app.layout.active {
			style = styleActive
		}
		app.drawText(a.Rect.Min.X, a.Rect.Min.Y, a.Rect.Width(), areaTitle(a), style)
		app.drawBody(a)
	}
	app.drawText(0, h-1, w, app.status.String(), styleStatus)
	app.status.dirty = false
	s.Show()
}

func areaTitle(a *screen.Area) string {
	title := string(a.Space)
	if a.Tool != nil {
		title += " [" + a.Tool.ID + "]"
		if a.Tool.Gizmo.Highlighted {
			title += " *"
		}
	}
	return title
}

func (app *Application) drawBody(a *screen.Area) {
	x, y, width := a.Rect.Min.X, a.Rect.Min.Y+1, a.Rect.Width()
	switch a.Space {
	case screen.SpaceView3D:
		sc := app.scene
		lines := []string{
			fmt.Sprintf("zoom %.2f  pan (%g, %g)", sc.get(PathView, "zoom").Float(), sc.get(PathView, "pan_x").Float(), sc.get(PathView, "pan_y").Float()),
			fmt.Sprintf("selected %d (%s) mode %s", sc.get(PathSelection, "count").Int(), sc.get(PathSelection, "last").String(), sc.get(PathSelection, "mode").String()),
			fmt.Sprintf("cube at (%g, %g)", sc.get(PathActive, "x").Float(), sc.get(PathActive, "y").Float()),
			fmt.Sprintf("ruler %.1f", sc.get(PathRuler, "length").Float()),
		}
		for i, l := range lines {
			if y+i >= a.Rect.Max.Y {
				break
			}
			app.drawText(x, y+i, width, l, styleBody)
		}
	case screen.SpaceText:
		app.drawWrapped(mouse.Rect{Min: mouse.Position{X: x, Y: y}, Max: a.Rect.Max}, app.scene.get(PathText, "body").String())
	}
}

// drawText writes s from (x, y), clipped to width cells. Each grapheme
// cluster takes the cells of its display width.
func (app *Application) drawText(x, y, width int, s string, style tcell.Style) int {
	col := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		runes := g.Runes()
		cw := g.Width()
		if cw == 0 {
			continue
		}
		if col+cw > width {
			break
		}
		app.screen.SetContent(x+col, y, runes[0], runes[1:], style)
		col += cw
	}
	for ; col < width; col++ {
		app.screen.SetContent(x+col, y, ' ', nil, style)
	}
	return col
}

// drawWrapped writes s into r, wrapping at the right edge and at newlines.
func (app *Application) drawWrapped(r mouse.Rect, s string) {
	x, y := r.Min.X, r.Min.Y
	g := uniseg.NewGraphemes(s)
	for g.Next() && y < r.Max.Y {
		runes := g.Runes()
		if runes[0] == '\n' {
			x, y = r.Min.X, y+1
			continue
		}
		cw := g.Width()
		if cw == 0 {
			continue
		}
		if x+cw > r.Max.X {
			x, y = r.Min.X, y+1
			if y >= r.Max.Y {
				break
			}
		}
		app.screen.SetContent(x, y, runes[0], runes[1:], styleBody)
		x += cw
	}
}
