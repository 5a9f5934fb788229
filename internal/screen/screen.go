// Package screen describes the layout a window's events are routed through:
// areas, the regions inside them and the tool active in each area.
package screen

import (
	"github.com/google/uuid"

	"github.com/dshills/wmevent/internal/input/mouse"
)

// SpaceType names the editor shown in an area.
type SpaceType string

// Common space types. Keymaps bound to SpaceEmpty apply to every space.
const (
	SpaceEmpty    SpaceType = ""
	SpaceView3D   SpaceType = "VIEW_3D"
	SpaceImage    SpaceType = "IMAGE_EDITOR"
	SpaceText     SpaceType = "TEXT_EDITOR"
	SpaceOutliner SpaceType = "OUTLINER"
	SpaceConsole  SpaceType = "CONSOLE"
)

// RegionType names a region inside an area.
type RegionType string

// Common region types. Keymaps bound to RegionAny apply to every region.
const (
	RegionAny     RegionType = ""
	RegionWindow  RegionType = "WINDOW"
	RegionHeader  RegionType = "HEADER"
	RegionToolbar RegionType = "TOOLS"
	RegionSidebar RegionType = "UI"
)

// GizmoState reports the tool gizmo group of an area.
type GizmoState struct {
	Visible bool
	// Highlighted is set while the cursor hovers a gizmo of the tool, which
	// makes the gizmo's keymap take precedence.
	Highlighted bool
}

// Tool is the tool active in an area.
type Tool struct {
	ID string
	// Keymap is the keymap of the active tool, empty when it has none.
	Keymap string
	// FallbackKeymap is the keymap of the fallback tool, used for gizmo
	// interaction and tweaks the active tool does not handle.
	FallbackKeymap string
	Gizmo          GizmoState
}

// Region is a rectangle inside an area, in window coordinates.
type Region struct {
	ID   uuid.UUID
	Type RegionType
	Rect mouse.Rect
}

// NewRegion returns a region with a fresh ID.
func NewRegion(typ RegionType, rect mouse.Rect) *Region {
	return &Region{ID: uuid.New(), Type: typ, Rect: rect}
}

// Area is an editor inside a window, in window coordinates.
type Area struct {
	ID      uuid.UUID
	Space   SpaceType
	Rect    mouse.Rect
	Regions []*Region
	// Tool is nil for spaces without tools.
	Tool *Tool
}

// NewArea returns an area with a fresh ID and a single WINDOW region
// covering it.
func NewArea(space SpaceType, rect mouse.Rect) *Area {
	return &Area{
		ID:      uuid.New(),
		Space:   space,
		Rect:    rect,
		Regions: []*Region{NewRegion(RegionWindow, rect)},
	}
}

// AddRegion adds a region. Regions added later sit on top of earlier ones.
func (a *Area) AddRegion(r *Region) {
	a.Regions = append(a.Regions, r)
}

// RegionAt returns the topmost region containing p.
func (a *Area) RegionAt(p mouse.Position) *Region {
	for i := len(a.Regions) - 1; i >= 0; i-- {
		if a.Regions[i].Rect.Contains(p) {
			return a.Regions[i]
		}
	}
	return nil
}

// Region returns the first region of the given type.
func (a *Area) Region(typ RegionType) *Region {
	for _, r := range a.Regions {
		if r.Type == typ {
			return r
		}
	}
	return nil
}

// ToolKeymaps returns the tool keymap names in lookup order: the active
// tool's keymap, then the fallback tool's. A highlighted gizmo swaps them.
func (a *Area) ToolKeymaps() []string {
	if a == nil || a.Tool == nil {
		return nil
	}
	first, second := a.Tool.Keymap, a.Tool.FallbackKeymap
	if a.Tool.Gizmo.Visible && a.Tool.Gizmo.Highlighted {
		first, second = second, first
	}
	names := make([]string, 0, 2)
	for _, n := range []string{first, second} {
		if n != "" {
			names = append(names, n)
		}
	}
	return names
}

// Screen is the set of areas of a window.
type Screen struct {
	Areas []*Area
}

// AddArea adds an area.
func (s *Screen) AddArea(a *Area) {
	s.Areas = append(s.Areas, a)
}

// AreaAt returns the area containing p, or nil.
func (s *Screen) AreaAt(p mouse.Position) *Area {
	for _, a := range s.Areas {
		if a.Rect.Contains(p) {
			return a
		}
	}
	return nil
}

// Find returns the area and region with the given region ID.
func (s *Screen) Find(regionID uuid.UUID) (*Area, *Region) {
	for _, a := range s.Areas {
		for _, r := range a.Regions {
			if r.ID == regionID {
				return a, r
			}
		}
	}
	return nil, nil
}
