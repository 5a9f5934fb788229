package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Combo
	}{
		{"a", Combo{Type: KeyA}},
		{"ESC", Combo{Type: KeyEsc}},
		{"LEFTMOUSE", Combo{Type: LeftMouse}},
		{"Ctrl+S", Combo{Type: KeyS, Mods: ModCtrl}},
		{"ctrl+shift+p", Combo{Type: KeyP, Mods: ModCtrl | ModShift}},
		{"Alt+F4", Combo{Type: KeyF4, Mods: ModAlt}},
		{"cmd+LEFTMOUSE", Combo{Type: LeftMouse, Mods: ModOS}},
		{"Q+G", Combo{Type: KeyG, KeyModifier: KeyQ}},
		{"ctrl+Q+G", Combo{Type: KeyG, Mods: ModCtrl, KeyModifier: KeyQ}},
		{"+", Combo{Type: KeyPlus}},
		{"ctrl++", Combo{Type: KeyPlus, Mods: ModCtrl}},
		{"<C-s>", Combo{Type: KeyS, Mods: ModCtrl}},
		{"<C-S-p>", Combo{Type: KeyP, Mods: ModCtrl | ModShift}},
		{"<O-a>", Combo{Type: KeyA, Mods: ModOS}},
		{"<ESC>", Combo{Type: KeyEsc}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"<C-s", ErrUnmatchedBracket},
		{"C-s>", ErrUnmatchedBracket},
		{"<X-s>", ErrInvalidSpec},
		{"Ctrl+Nope", ErrInvalidSpec},
		{"Q+W+E", ErrInvalidSpec},
		{"G+G", ErrInvalidSpec},
		{"LEFTMOUSE+A", ErrInvalidSpec},
		{"shift+ctrl+", ErrInvalidSpec},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := Parse(tt.spec)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
			}
		})
	}
}

func TestNormalizeSpec(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"shift+ctrl+a", "Ctrl+Shift+A"},
		{"<C-s>", "Ctrl+S"},
		{"q+g", "Q+G"},
		{"alt+lmb", "Alt+LEFTMOUSE"},
	}

	for _, tt := range tests {
		got, err := NormalizeSpec(tt.spec)
		if err != nil {
			t.Errorf("NormalizeSpec(%q) error = %v", tt.spec, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeSpec(%q) = %q, want %q", tt.spec, got, tt.want)
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid spec")
		}
	}()
	MustParse("<C-")
}
