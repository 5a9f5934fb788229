package key

import (
	"testing"
)

func TestModifierHas(t *testing.T) {
	tests := []struct {
		mod    Modifier
		check  Modifier
		expect bool
	}{
		{ModNone, ModCtrl, false},
		{ModCtrl, ModCtrl, true},
		{ModCtrl | ModAlt, ModCtrl, true},
		{ModCtrl | ModAlt, ModAlt, true},
		{ModCtrl | ModAlt, ModShift, false},
		{ModAll, ModOS, true},
	}

	for _, tt := range tests {
		if got := tt.mod.Has(tt.check); got != tt.expect {
			t.Errorf("Modifier(%d).Has(%d) = %v, want %v", tt.mod, tt.check, got, tt.expect)
		}
	}
}

func TestModifierWithWithout(t *testing.T) {
	mod := ModNone.With(ModCtrl).With(ModAlt)
	if !mod.HasCtrl() || !mod.HasAlt() {
		t.Errorf("With should add Ctrl and Alt, got %v", mod)
	}

	mod = mod.Without(ModAlt)
	if mod.HasAlt() || !mod.HasCtrl() {
		t.Errorf("Without(ModAlt) should only remove Alt, got %v", mod)
	}
}

func TestModifierSet(t *testing.T) {
	mod := ModNone.Set(ModShift, true)
	if mod != ModShift {
		t.Errorf("Set(ModShift, true) = %v", mod)
	}
	if mod = mod.Set(ModShift, false); !mod.IsEmpty() {
		t.Errorf("Set(ModShift, false) = %v", mod)
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "Ctrl"},
		{ModShift | ModCtrl, "Ctrl+Shift"},
		{ModAll, "Ctrl+Alt+Shift+OS"},
	}

	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mod, got, tt.want)
		}
	}
}

func TestModifierFromName(t *testing.T) {
	tests := []struct {
		name string
		want Modifier
	}{
		{"ctrl", ModCtrl},
		{"Control", ModCtrl},
		{"ALT", ModAlt},
		{"option", ModAlt},
		{"shift", ModShift},
		{"oskey", ModOS},
		{"cmd", ModOS},
		{"super", ModOS},
		{"hyper", ModNone},
	}

	for _, tt := range tests {
		if got := ModifierFromName(tt.name); got != tt.want {
			t.Errorf("ModifierFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
