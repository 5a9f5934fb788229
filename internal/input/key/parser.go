package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec        = errors.New("empty key specification")
	ErrInvalidSpec      = errors.New("invalid key specification")
	ErrUnmatchedBracket = errors.New("unmatched bracket in key specification")
)

// Combo is a parsed key combination: an event type, the modifiers that must
// be held and an optional key-modifier (the first key of a chord).
type Combo struct {
	Type        Type
	Mods        Modifier
	KeyModifier Type
}

// String formats the combo in the "Ctrl+Shift+A" style accepted by Parse.
func (c Combo) String() string {
	var b strings.Builder
	if s := c.Mods.String(); s != "" {
		b.WriteString(s)
		b.WriteByte('+')
	}
	if c.KeyModifier != TypeNone {
		b.WriteString(c.KeyModifier.String())
		b.WriteByte('+')
	}
	b.WriteString(c.Type.String())
	return b.String()
}

// Parse parses a key combination.
//
// Supported formats:
//   - Single identifier: "A", "ESC", "LEFTMOUSE", "WHEELUPMOUSE"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Ctrl+Shift+P"
//   - Key-modifier chords: "Q+G" (hold Q, press G)
//   - Bracket style: "<C-s>", "<A-F4>", "<C-S-p>", "<O-a>"
func Parse(spec string) (Combo, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Combo{}, ErrEmptySpec
	}

	if strings.HasPrefix(spec, "<") {
		if !strings.HasSuffix(spec, ">") {
			return Combo{}, ErrUnmatchedBracket
		}
		return parseBracketStyle(spec[1 : len(spec)-1])
	}
	if strings.HasSuffix(spec, ">") {
		return Combo{}, ErrUnmatchedBracket
	}

	// "+" alone, or trailing "+", names the plus key.
	if spec == "+" {
		return Combo{Type: KeyPlus}, nil
	}
	if strings.HasSuffix(spec, "++") {
		c, err := parsePlusStyle(spec[:len(spec)-2])
		if err != nil {
			return Combo{}, err
		}
		return finishCombo(c, KeyPlus)
	}

	if strings.Contains(spec, "+") {
		parts := strings.Split(spec, "+")
		c, err := parsePlusStyle(strings.Join(parts[:len(parts)-1], "+"))
		if err != nil {
			return Combo{}, err
		}
		t, err := parseType(parts[len(parts)-1])
		if err != nil {
			return Combo{}, err
		}
		return finishCombo(c, t)
	}

	t, err := parseType(spec)
	if err != nil {
		return Combo{}, err
	}
	return Combo{Type: t}, nil
}

// parsePlusStyle parses the prefix of a "Ctrl+Q+..." combination: any number
// of modifier names and at most one key-modifier.
func parsePlusStyle(prefix string) (Combo, error) {
	var c Combo
	for _, p := range strings.Split(prefix, "+") {
		p = strings.TrimSpace(p)
		if p == "" {
			return Combo{}, fmt.Errorf("%w: empty component", ErrInvalidSpec)
		}
		if mod := ModifierFromName(p); mod != ModNone {
			c.Mods = c.Mods.With(mod)
			continue
		}
		t, err := parseType(p)
		if err != nil {
			return Combo{}, err
		}
		if c.KeyModifier != TypeNone {
			return Combo{}, fmt.Errorf("%w: more than one key-modifier in %q", ErrInvalidSpec, prefix)
		}
		if !t.IsKeyboard() || t.IsModifierKey() {
			return Combo{}, fmt.Errorf("%w: %s cannot be a key-modifier", ErrInvalidSpec, t)
		}
		c.KeyModifier = t
	}
	return c, nil
}

// parseBracketStyle parses bracket notation like "C-s", "A-F4", "ESC".
func parseBracketStyle(inner string) (Combo, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Combo{}, ErrInvalidSpec
	}

	parts := strings.Split(inner, "-")
	var c Combo
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "c":
			c.Mods = c.Mods.With(ModCtrl)
		case "a":
			c.Mods = c.Mods.With(ModAlt)
		case "s":
			c.Mods = c.Mods.With(ModShift)
		case "o", "d", "m":
			c.Mods = c.Mods.With(ModOS)
		default:
			return Combo{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
	}

	t, err := parseType(parts[len(parts)-1])
	if err != nil {
		return Combo{}, err
	}
	return finishCombo(c, t)
}

func finishCombo(c Combo, t Type) (Combo, error) {
	if c.KeyModifier == t {
		return Combo{}, fmt.Errorf("%w: %s used as its own key-modifier", ErrInvalidSpec, t)
	}
	c.Type = t
	return c, nil
}

func parseType(name string) (Type, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return TypeNone, ErrInvalidSpec
	}
	t, ok := TypeFromName(name)
	if !ok {
		return TypeNone, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
	}
	return t, nil
}

// MustParse parses a key combination and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Combo {
	c, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return c
}

// NormalizeSpec parses and re-formats a key combination to its canonical form.
func NormalizeSpec(spec string) (string, error) {
	c, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}
