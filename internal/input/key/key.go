package key

import (
	"fmt"
	"strings"
)

// Type identifies the kind of input an event carries: a keyboard key, a
// mouse button, pointer motion, a wheel step, a trackpad gesture or one of
// the device/system types (timers, NDOF, XR, drag and drop).
type Type uint16

const (
	// TypeNone represents no event. Unmapped platform codes convert to it.
	TypeNone Type = iota

	// Mouse buttons
	LeftMouse
	MiddleMouse
	RightMouse
	Button4Mouse
	Button5Mouse
	Button6Mouse
	Button7Mouse

	// Pointer motion
	MouseMove
	// InBetweenMouseMove is a motion event that was followed by another
	// motion event before being handled.
	InBetweenMouseMove

	// Trackpad gestures
	TrackpadPan
	TrackpadZoom
	MouseRotate
	MouseSmartZoom

	// Wheel
	WheelUpMouse
	WheelDownMouse
	WheelInMouse
	WheelOutMouse

	// Tablet tools, used by keymap items to restrict a left-mouse binding.
	TabletStylus
	TabletEraser

	// Letters, contiguous A-Z.
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// Digit row, contiguous 0-9.
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	// Modifier keys
	KeyLeftCtrl
	KeyLeftAlt
	KeyLeftShift
	KeyRightAlt
	KeyRightCtrl
	KeyRightShift
	KeyOS

	// Other keys
	KeyApp
	KeyGrLess
	KeyCapsLock
	KeyEsc
	KeyTab
	KeyReturn
	KeySpace
	KeyLineFeed
	KeyBackspace
	KeyDelete
	KeySemicolon
	KeyPeriod
	KeyComma
	KeyQuote
	KeyAccentGrave
	KeyMinus
	KeyPlus
	KeySlash
	KeyBackslash
	KeyEqual
	KeyLeftBracket
	KeyRightBracket

	// Arrows
	KeyLeftArrow
	KeyDownArrow
	KeyRightArrow
	KeyUpArrow

	// Numpad, digits contiguous.
	KeyPad0
	KeyPad1
	KeyPad2
	KeyPad3
	KeyPad4
	KeyPad5
	KeyPad6
	KeyPad7
	KeyPad8
	KeyPad9
	KeyPadPeriod
	KeyPadSlash
	KeyPadAsterisk
	KeyPadMinus
	KeyPadEnter
	KeyPadPlus

	// Navigation
	KeyPause
	KeyInsert
	KeyHome
	KeyPageUp
	KeyPageDown
	KeyEnd

	// Function keys, contiguous F1-F24.
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24

	// Media
	KeyMediaPlay
	KeyMediaStop
	KeyMediaFirst
	KeyMediaLast

	// KeyUnknown is a keyboard key the platform reported but could not name
	// (dead keys, some external numpads).
	KeyUnknown

	// System and device types
	Timer
	NDOFMotion
	NDOFButtonMenu
	NDOFButtonFit
	NDOFButtonTop
	NDOFButtonBottom
	NDOFButtonLeft
	NDOFButtonRight
	NDOFButtonFront
	NDOFButtonBack
	NDOFButton1
	NDOFButton2
	NDOFButton3
	NDOFButton4
	XRAction
	Drop

	// TextInput matches any keyboard press that produced text. Keymap only.
	TextInput

	typeCount
)

// TypeAny matches every event type. Keymap only.
const TypeAny Type = 0xFFFF

var typeNames = map[Type]string{
	TypeNone:           "NONE",
	LeftMouse:          "LEFTMOUSE",
	MiddleMouse:        "MIDDLEMOUSE",
	RightMouse:         "RIGHTMOUSE",
	Button4Mouse:       "BUTTON4MOUSE",
	Button5Mouse:       "BUTTON5MOUSE",
	Button6Mouse:       "BUTTON6MOUSE",
	Button7Mouse:       "BUTTON7MOUSE",
	MouseMove:          "MOUSEMOVE",
	InBetweenMouseMove: "INBETWEEN_MOUSEMOVE",
	TrackpadPan:        "TRACKPADPAN",
	TrackpadZoom:       "TRACKPADZOOM",
	MouseRotate:        "MOUSEROTATE",
	MouseSmartZoom:     "MOUSESMARTZOOM",
	WheelUpMouse:       "WHEELUPMOUSE",
	WheelDownMouse:     "WHEELDOWNMOUSE",
	WheelInMouse:       "WHEELINMOUSE",
	WheelOutMouse:      "WHEELOUTMOUSE",
	TabletStylus:       "PEN",
	TabletEraser:       "ERASER",
	KeyLeftCtrl:        "LEFT_CTRL",
	KeyLeftAlt:         "LEFT_ALT",
	KeyLeftShift:       "LEFT_SHIFT",
	KeyRightAlt:        "RIGHT_ALT",
	KeyRightCtrl:       "RIGHT_CTRL",
	KeyRightShift:      "RIGHT_SHIFT",
	KeyOS:              "OSKEY",
	KeyApp:             "APP",
	KeyGrLess:          "GRLESS",
	KeyCapsLock:        "CAPSLOCK",
	KeyEsc:             "ESC",
	KeyTab:             "TAB",
	KeyReturn:          "RET",
	KeySpace:           "SPACE",
	KeyLineFeed:        "LINE_FEED",
	KeyBackspace:       "BACK_SPACE",
	KeyDelete:          "DEL",
	KeySemicolon:       "SEMI_COLON",
	KeyPeriod:          "PERIOD",
	KeyComma:           "COMMA",
	KeyQuote:           "QUOTE",
	KeyAccentGrave:     "ACCENT_GRAVE",
	KeyMinus:           "MINUS",
	KeyPlus:            "PLUS",
	KeySlash:           "SLASH",
	KeyBackslash:       "BACK_SLASH",
	KeyEqual:           "EQUAL",
	KeyLeftBracket:     "LEFT_BRACKET",
	KeyRightBracket:    "RIGHT_BRACKET",
	KeyLeftArrow:       "LEFT_ARROW",
	KeyDownArrow:       "DOWN_ARROW",
	KeyRightArrow:      "RIGHT_ARROW",
	KeyUpArrow:         "UP_ARROW",
	KeyPadPeriod:       "NUMPAD_PERIOD",
	KeyPadSlash:        "NUMPAD_SLASH",
	KeyPadAsterisk:     "NUMPAD_ASTERIX",
	KeyPadMinus:        "NUMPAD_MINUS",
	KeyPadEnter:        "NUMPAD_ENTER",
	KeyPadPlus:         "NUMPAD_PLUS",
	KeyPause:           "PAUSE",
	KeyInsert:          "INSERT",
	KeyHome:            "HOME",
	KeyPageUp:          "PAGE_UP",
	KeyPageDown:        "PAGE_DOWN",
	KeyEnd:             "END",
	KeyMediaPlay:       "MEDIA_PLAY",
	KeyMediaStop:       "MEDIA_STOP",
	KeyMediaFirst:      "MEDIA_FIRST",
	KeyMediaLast:       "MEDIA_LAST",
	KeyUnknown:         "UNKNOWN",
	Timer:              "TIMER",
	NDOFMotion:         "NDOF_MOTION",
	NDOFButtonMenu:     "NDOF_BUTTON_MENU",
	NDOFButtonFit:      "NDOF_BUTTON_FIT",
	NDOFButtonTop:      "NDOF_BUTTON_TOP",
	NDOFButtonBottom:   "NDOF_BUTTON_BOTTOM",
	NDOFButtonLeft:     "NDOF_BUTTON_LEFT",
	NDOFButtonRight:    "NDOF_BUTTON_RIGHT",
	NDOFButtonFront:    "NDOF_BUTTON_FRONT",
	NDOFButtonBack:     "NDOF_BUTTON_BACK",
	NDOFButton1:        "NDOF_BUTTON_1",
	NDOFButton2:        "NDOF_BUTTON_2",
	NDOFButton3:        "NDOF_BUTTON_3",
	NDOFButton4:        "NDOF_BUTTON_4",
	XRAction:           "XR_ACTION",
	Drop:               "DROP",
	TextInput:          "TEXTINPUT",
	TypeAny:            "ANY",
}

var digitNames = [10]string{"ZERO", "ONE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN", "EIGHT", "NINE"}

// nameToType is the reverse of typeNames, upper case.
var nameToType map[string]Type

func init() {
	for i := Type(0); i < 26; i++ {
		typeNames[KeyA+i] = string(rune('A' + i))
	}
	for i := Type(0); i < 10; i++ {
		typeNames[Key0+i] = digitNames[i]
		typeNames[KeyPad0+i] = fmt.Sprintf("NUMPAD_%d", i)
	}
	for i := Type(0); i < 24; i++ {
		typeNames[KeyF1+i] = fmt.Sprintf("F%d", i+1)
	}

	nameToType = make(map[string]Type, len(typeNames)+len(typeAliases))
	for t, name := range typeNames {
		nameToType[name] = t
	}
	for alias, t := range typeAliases {
		nameToType[alias] = t
	}
}

// typeAliases are additional accepted spellings, upper case.
var typeAliases = map[string]Type{
	"ESCAPE":    KeyEsc,
	"RETURN":    KeyReturn,
	"ENTER":     KeyReturn,
	"BACKSPACE": KeyBackspace,
	"DELETE":    KeyDelete,
	"LEFT":      KeyLeftArrow,
	"RIGHT":     KeyRightArrow,
	"UP":        KeyUpArrow,
	"DOWN":      KeyDownArrow,
	"PGUP":      KeyPageUp,
	"PGDN":      KeyPageDown,
	"LMB":       LeftMouse,
	"MMB":       MiddleMouse,
	"RMB":       RightMouse,
	"0":         Key0,
	"1":         Key1,
	"2":         Key2,
	"3":         Key3,
	"4":         Key4,
	"5":         Key5,
	"6":         Key6,
	"7":         Key7,
	"8":         Key8,
	"9":         Key9,
}

// String returns the identifier used in keymap files.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", uint16(t))
}

// TypeFromName returns the type for a keymap identifier (case-insensitive).
// Returns TypeNone and false if the name is not recognized.
func TypeFromName(name string) (Type, bool) {
	t, ok := nameToType[strings.ToUpper(strings.TrimSpace(name))]
	return t, ok
}

// IsMouseButton returns true for the physical mouse buttons.
func (t Type) IsMouseButton() bool {
	return t >= LeftMouse && t <= Button7Mouse
}

// IsMotion returns true for cursor motion, including in-between moves.
func (t Type) IsMotion() bool {
	return t == MouseMove || t == InBetweenMouseMove
}

// IsTrackpad returns true for trackpad gesture types.
func (t Type) IsTrackpad() bool {
	return t >= TrackpadPan && t <= MouseSmartZoom
}

// IsWheel returns true for wheel steps.
func (t Type) IsWheel() bool {
	return t >= WheelUpMouse && t <= WheelOutMouse
}

// IsMouse returns true for every pointer type.
func (t Type) IsMouse() bool {
	return t >= LeftMouse && t <= WheelOutMouse
}

// IsKeyboard returns true for keyboard keys, modifiers included.
func (t Type) IsKeyboard() bool {
	return t >= KeyA && t <= KeyUnknown
}

// IsModifierKey returns true for shift, ctrl, alt and the OS key.
func (t Type) IsModifierKey() bool {
	return t >= KeyLeftCtrl && t <= KeyOS
}

// IsNDOF returns true for NDOF (3D mouse) motion and buttons.
func (t Type) IsNDOF() bool {
	return t >= NDOFMotion && t <= NDOFButton4
}

// IsNDOFButton returns true for NDOF buttons.
func (t Type) IsNDOFButton() bool {
	return t >= NDOFButtonMenu && t <= NDOFButton4
}

// IsValid returns true for types an event can carry (excludes keymap-only
// wildcards and TypeNone).
func (t Type) IsValid() bool {
	return t > TypeNone && t < TextInput && t != TabletStylus && t != TabletEraser
}

// Modifier returns the modifier bit a modifier key drives, or ModNone.
func (t Type) Modifier() Modifier {
	switch t {
	case KeyLeftShift, KeyRightShift:
		return ModShift
	case KeyLeftCtrl, KeyRightCtrl:
		return ModCtrl
	case KeyLeftAlt, KeyRightAlt:
		return ModAlt
	case KeyOS:
		return ModOS
	default:
		return ModNone
	}
}
