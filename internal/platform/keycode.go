package platform

import "github.com/dshills/wmevent/internal/input/key"

// KeyCode is a platform key code. Printable keys use their ASCII code,
// other keys live above 0x100.
type KeyCode uint16

const (
	// CodeUnknown is a key the platform could not identify.
	CodeUnknown KeyCode = 0

	CodeBackspace    KeyCode = 0x08
	CodeTab          KeyCode = 0x09
	CodeLineFeed     KeyCode = 0x0A
	CodeEnter        KeyCode = 0x0D
	CodeEsc          KeyCode = 0x1B
	CodeSpace        KeyCode = ' '
	CodeQuote        KeyCode = '\''
	CodePlus         KeyCode = '+'
	CodeComma        KeyCode = ','
	CodeMinus        KeyCode = '-'
	CodePeriod       KeyCode = '.'
	CodeSlash        KeyCode = '/'
	Code0            KeyCode = '0'
	Code9            KeyCode = '9'
	CodeSemicolon    KeyCode = ';'
	CodeEqual        KeyCode = '='
	CodeLeftBracket  KeyCode = '['
	CodeBackslash    KeyCode = '\\'
	CodeRightBracket KeyCode = ']'
	CodeAccentGrave  KeyCode = '`'
)

// Letter keys.
const (
	CodeA KeyCode = 'A' + iota
	CodeB
	CodeC
	CodeD
	CodeE
	CodeF
	CodeG
	CodeH
	CodeI
	CodeJ
	CodeK
	CodeL
	CodeM
	CodeN
	CodeO
	CodeP
	CodeQ
	CodeR
	CodeS
	CodeT
	CodeU
	CodeV
	CodeW
	CodeX
	CodeY
	CodeZ
)

const (
	CodeLeftShift KeyCode = 0x100 + iota
	CodeRightShift
	CodeLeftCtrl
	CodeRightCtrl
	CodeLeftAlt
	CodeRightAlt
	CodeOS
	CodeGrLess
	CodeApp
	CodeCapsLock
	CodeNumLock
	CodeScrollLock
	CodeLeftArrow
	CodeRightArrow
	CodeUpArrow
	CodeDownArrow
	CodePrintScreen
	CodePause
	CodeInsert
	CodeDelete
	CodeHome
	CodeEnd
	CodePageUp
	CodePageDown
	CodeNumpad0
	CodeNumpad9 = CodeNumpad0 + 9
)

const (
	CodeNumpadPeriod KeyCode = CodeNumpad9 + 1 + iota
	CodeNumpadEnter
	CodeNumpadPlus
	CodeNumpadMinus
	CodeNumpadAsterisk
	CodeNumpadSlash
	CodeF1
	CodeF24 = CodeF1 + 23
)

const (
	CodeMediaPlay KeyCode = CodeF24 + 1 + iota
	CodeMediaStop
	CodeMediaFirst
	CodeMediaLast
)

var codeTypes = map[KeyCode]key.Type{
	CodeUnknown:        key.KeyUnknown,
	CodeBackspace:      key.KeyBackspace,
	CodeTab:            key.KeyTab,
	CodeLineFeed:       key.KeyLineFeed,
	CodeEnter:          key.KeyReturn,
	CodeEsc:            key.KeyEsc,
	CodeSpace:          key.KeySpace,
	CodeQuote:          key.KeyQuote,
	CodePlus:           key.KeyPlus,
	CodeComma:          key.KeyComma,
	CodeMinus:          key.KeyMinus,
	CodePeriod:         key.KeyPeriod,
	CodeSlash:          key.KeySlash,
	CodeSemicolon:      key.KeySemicolon,
	CodeEqual:          key.KeyEqual,
	CodeLeftBracket:    key.KeyLeftBracket,
	CodeBackslash:      key.KeyBackslash,
	CodeRightBracket:   key.KeyRightBracket,
	CodeAccentGrave:    key.KeyAccentGrave,
	CodeLeftShift:      key.KeyLeftShift,
	CodeRightShift:     key.KeyRightShift,
	CodeLeftCtrl:       key.KeyLeftCtrl,
	CodeRightCtrl:      key.KeyRightCtrl,
	CodeLeftAlt:        key.KeyLeftAlt,
	CodeRightAlt:       key.KeyRightAlt,
	CodeOS:             key.KeyOS,
	CodeGrLess:         key.KeyGrLess,
	CodeApp:            key.KeyApp,
	CodeCapsLock:       key.KeyCapsLock,
	CodeLeftArrow:      key.KeyLeftArrow,
	CodeRightArrow:     key.KeyRightArrow,
	CodeUpArrow:        key.KeyUpArrow,
	CodeDownArrow:      key.KeyDownArrow,
	CodePause:          key.KeyPause,
	CodeInsert:         key.KeyInsert,
	CodeDelete:         key.KeyDelete,
	CodeHome:           key.KeyHome,
	CodeEnd:            key.KeyEnd,
	CodePageUp:         key.KeyPageUp,
	CodePageDown:       key.KeyPageDown,
	CodeNumpadPeriod:   key.KeyPadPeriod,
	CodeNumpadEnter:    key.KeyPadEnter,
	CodeNumpadPlus:     key.KeyPadPlus,
	CodeNumpadMinus:    key.KeyPadMinus,
	CodeNumpadAsterisk: key.KeyPadAsterisk,
	CodeNumpadSlash:    key.KeyPadSlash,
	CodeMediaPlay:      key.KeyMediaPlay,
	CodeMediaStop:      key.KeyMediaStop,
	CodeMediaFirst:     key.KeyMediaFirst,
	CodeMediaLast:      key.KeyMediaLast,
}

// Type converts a platform key code to an event type. Codes the window
// manager has no type for (num lock, print screen, anything unassigned)
// return key.TypeNone and must not produce an event.
func (c KeyCode) Type() key.Type {
	switch {
	case c >= CodeA && c <= CodeZ:
		return key.KeyA + key.Type(c-CodeA)
	case c >= Code0 && c <= Code9:
		return key.Key0 + key.Type(c-Code0)
	case c >= CodeNumpad0 && c <= CodeNumpad9:
		return key.KeyPad0 + key.Type(c-CodeNumpad0)
	case c >= CodeF1 && c <= CodeF24:
		return key.KeyF1 + key.Type(c-CodeF1)
	}
	if t, ok := codeTypes[c]; ok {
		return t
	}
	return key.TypeNone
}

// NDOFButtonCode is a 3D mouse button number.
type NDOFButtonCode uint8

const (
	NDOFMenu NDOFButtonCode = iota + 1
	NDOFFit
	NDOFTop
	NDOFBottom
	NDOFLeft
	NDOFRight
	NDOFFront
	NDOFBack
	NDOF1
	NDOF2
	NDOF3
	NDOF4
)

// Type converts an NDOF button to an event type, or key.TypeNone.
func (b NDOFButtonCode) Type() key.Type {
	if b < NDOFMenu || b > NDOF4 {
		return key.TypeNone
	}
	return key.NDOFButtonMenu + key.Type(b-NDOFMenu)
}
