package keymap

import "github.com/dshills/wmevent/internal/screen"

// Names of the built-in keymaps.
const (
	KeymapWindow      = "Window"
	KeymapScreen      = "Screen"
	KeymapView3D      = "3D View"
	KeymapViewPan     = "View3D Pan Modal"
	KeymapText        = "Text"
	KeymapToolSelect  = "3D View Tool: Select Box"
	KeymapToolTweak   = "3D View Tool: Tweak"
	KeymapToolMeasure = "3D View Tool: Measure"
)

// Modal values of the view pan modal keymap.
const (
	ModalConfirm = "CONFIRM"
	ModalCancel  = "CANCEL"
)

// DefaultKeyConfig returns the built-in key configuration.
func DefaultKeyConfig() *KeyConfig {
	kc := NewKeyConfig("default")
	for _, km := range []*Keymap{
		DefaultWindowKeymap(),
		DefaultScreenKeymap(),
		DefaultView3DKeymap(),
		DefaultViewPanModalKeymap(),
		DefaultTextKeymap(),
		DefaultToolSelectKeymap(),
		DefaultToolTweakKeymap(),
		DefaultToolMeasureKeymap(),
	} {
		if err := kc.Add(km); err != nil {
			panic(err)
		}
	}
	return kc
}

// DefaultWindowKeymap returns the bindings that work everywhere in a window.
func DefaultWindowKeymap() *Keymap {
	km := NewKeymap(KeymapWindow, screen.SpaceEmpty, screen.RegionAny).WithSource("default")
	km.Add(MustItem("ctrl+Q", "wm.quit"))
	km.Add(MustItem("F3", "wm.search_operator"))
	km.Add(MustItem("ctrl+alt+D", "wm.echo").WithProperties(map[string]any{"message": "debug menu"}))
	return km
}

// DefaultScreenKeymap returns the bindings of screen level operators.
func DefaultScreenKeymap() *Keymap {
	km := NewKeymap(KeymapScreen, screen.SpaceEmpty, screen.RegionAny).WithSource("default")
	km.Add(MustItem("ctrl+SPACE", "screen.maximize_toggle"))
	km.Add(MustItem("ctrl+TAB", "screen.cycle_area").WithFlags(ItemRepeatIgnore))
	return km
}

// DefaultView3DKeymap returns the navigation and selection bindings of
// the 3D view.
func DefaultView3DKeymap() *Keymap {
	km := NewKeymap(KeymapView3D, screen.SpaceView3D, screen.RegionWindow).WithSource("default")
	km.Add(MustItem("MIDDLEMOUSE", "view.pan"))
	km.Add(MustItem("TRACKPADPAN", "view.pan").WithProperties(map[string]any{"trackpad": true}))
	km.Add(MustItem("any+WHEELUPMOUSE", "view.zoom").WithProperties(map[string]any{"delta": 1}))
	km.Add(MustItem("any+WHEELDOWNMOUSE", "view.zoom").WithProperties(map[string]any{"delta": -1}))
	km.Add(MustItem("TRACKPADZOOM", "view.zoom"))
	km.Add(MustItem("LEFTMOUSE:click", "select.click"))
	km.Add(MustItem("shift+LEFTMOUSE:click", "select.click").WithProperties(map[string]any{"extend": true}))
	km.Add(MustItem("LEFTMOUSE:double_click", "select.linked"))
	km.Add(MustItem("A", "select.all").WithProperties(map[string]any{"action": "SELECT"}))
	km.Add(MustItem("alt+A", "select.all").WithProperties(map[string]any{"action": "DESELECT"}))
	km.Add(MustItem("Q+G", "wm.echo").WithProperties(map[string]any{"message": "chord Q G"}))
	return km
}

// DefaultViewPanModalKeymap returns the modal map of the view pan operator.
func DefaultViewPanModalKeymap() *Keymap {
	km := NewKeymap(KeymapViewPan, screen.SpaceEmpty, screen.RegionAny).WithSource("default")
	km.Modal = true
	for _, m := range []struct{ trigger, value string }{
		{"any+ESC", ModalCancel},
		{"any+RIGHTMOUSE", ModalCancel},
		{"any+MIDDLEMOUSE:release", ModalConfirm},
		{"any+RETURN", ModalConfirm},
		{"any+SPACE", ModalConfirm},
	} {
		if _, err := km.AddModal(m.trigger, m.value); err != nil {
			panic(err)
		}
	}
	return km
}

// DefaultTextKeymap returns the bindings of the text editor.
func DefaultTextKeymap() *Keymap {
	km := NewKeymap(KeymapText, screen.SpaceText, screen.RegionWindow).WithSource("default")
	km.Add(MustItem("any+TEXTINPUT", "text.insert"))
	km.Add(MustItem("BACKSPACE", "text.delete").WithProperties(map[string]any{"type": "PREVIOUS_CHARACTER"}))
	km.Add(MustItem("ctrl+BACKSPACE", "text.delete").WithProperties(map[string]any{"type": "PREVIOUS_WORD"}))
	return km
}

// DefaultToolSelectKeymap returns the keymap of the box select tool.
func DefaultToolSelectKeymap() *Keymap {
	km := NewKeymap(KeymapToolSelect, screen.SpaceView3D, screen.RegionWindow).WithSource("default")
	km.Add(MustItem("LEFTMOUSE:click_drag", "select.box"))
	km.Add(MustItem("shift+LEFTMOUSE:click_drag", "select.box").WithProperties(map[string]any{"mode": "ADD"}))
	return km
}

// DefaultToolTweakKeymap returns the keymap of the fallback tweak tool.
func DefaultToolTweakKeymap() *Keymap {
	km := NewKeymap(KeymapToolTweak, screen.SpaceView3D, screen.RegionWindow).WithSource("default")
	km.Add(MustItem("LEFTMOUSE:click_drag", "transform.translate"))
	km.Add(MustItem("LEFTMOUSE:press", "select.click").WithProperties(map[string]any{"deselect_all": true}))
	return km
}

// DefaultToolMeasureKeymap returns the keymap of the measure tool.
func DefaultToolMeasureKeymap() *Keymap {
	km := NewKeymap(KeymapToolMeasure, screen.SpaceView3D, screen.RegionWindow).WithSource("default")
	km.Add(MustItem("LEFTMOUSE:click_drag", "view.ruler"))
	return km
}
