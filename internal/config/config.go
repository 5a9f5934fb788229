package config

import (
	"fmt"
	"time"

	"github.com/dshills/wmevent/internal/input/key"
	"github.com/dshills/wmevent/internal/input/mouse"
	"github.com/dshills/wmevent/internal/input/state"
	"github.com/dshills/wmevent/internal/wmlog"
)

// Prefs is the preferences store.
type Prefs struct {
	Input  InputPrefs  `toml:"input"`
	NDOF   NDOFPrefs   `toml:"ndof"`
	Log    LogPrefs    `toml:"log"`
	Keymap KeymapPrefs `toml:"keymap"`
}

// InputPrefs configures click detection and input emulation.
type InputPrefs struct {
	DoubleClickTimeMS     int    `toml:"double_click_time_ms"`
	DragThresholdMouse    int    `toml:"drag_threshold_mouse"`
	DragThresholdTablet   int    `toml:"drag_threshold_tablet"`
	DragThresholdKeyboard int    `toml:"drag_threshold_keyboard"`
	TwoButtonMouse        bool   `toml:"two_button_mouse"`
	TwoButtonModifier     string `toml:"two_button_modifier"`
	NumpadEmulation       bool   `toml:"numpad_emulation"`
	// TitleBarTolerance is the height of the band above a window that still
	// counts as inside it when forwarding events between windows.
	TitleBarTolerance int `toml:"title_bar_tolerance"`
}

// NDOFPrefs configures 3D mouse scaling.
type NDOFPrefs struct {
	Sensitivity      float64 `toml:"sensitivity"`
	OrbitSensitivity float64 `toml:"orbit_sensitivity"`
	Deadzone         float64 `toml:"deadzone"`
}

// LogPrefs configures the logger.
type LogPrefs struct {
	Level    string   `toml:"level"`
	Channels []string `toml:"channels"`
}

// KeymapPrefs lists extra keymap files loaded after the built-in keymaps.
type KeymapPrefs struct {
	Files []string `toml:"files"`
}

// Default returns the built-in preferences.
func Default() *Prefs {
	return &Prefs{
		Input: InputPrefs{
			DoubleClickTimeMS:     350,
			DragThresholdMouse:    3,
			DragThresholdTablet:   10,
			DragThresholdKeyboard: 30,
			TwoButtonModifier:     "alt",
			TitleBarTolerance:     30,
		},
		NDOF: NDOFPrefs{
			Sensitivity:      1.0,
			OrbitSensitivity: 1.0,
			Deadzone:         0.0,
		},
		Log: LogPrefs{
			Level: "info",
		},
	}
}

// Clone returns a deep copy.
func (p *Prefs) Clone() *Prefs {
	c := *p
	c.Log.Channels = append([]string(nil), p.Log.Channels...)
	c.Keymap.Files = append([]string(nil), p.Keymap.Files...)
	return &c
}

// Validate checks ranges and enumerations.
func (p *Prefs) Validate() error {
	in := p.Input
	switch {
	case in.DoubleClickTimeMS <= 0 || in.DoubleClickTimeMS > 5000:
		return fmt.Errorf("%w: input.double_click_time_ms must be in (0, 5000], got %d", ErrValidationFailed, in.DoubleClickTimeMS)
	case in.DragThresholdMouse < 0 || in.DragThresholdTablet < 0 || in.DragThresholdKeyboard < 0:
		return fmt.Errorf("%w: drag thresholds must not be negative", ErrValidationFailed)
	case in.TitleBarTolerance < 0:
		return fmt.Errorf("%w: input.title_bar_tolerance must not be negative", ErrValidationFailed)
	}
	if _, err := parseEmulationModifier(in.TwoButtonModifier); err != nil {
		return err
	}
	if p.NDOF.Sensitivity <= 0 || p.NDOF.OrbitSensitivity <= 0 {
		return fmt.Errorf("%w: ndof sensitivities must be positive", ErrValidationFailed)
	}
	if p.NDOF.Deadzone < 0 || p.NDOF.Deadzone >= 1 {
		return fmt.Errorf("%w: ndof.deadzone must be in [0, 1), got %g", ErrValidationFailed, p.NDOF.Deadzone)
	}
	return nil
}

// DoubleClickTime returns the double click window.
func (p *Prefs) DoubleClickTime() time.Duration {
	return time.Duration(p.Input.DoubleClickTimeMS) * time.Millisecond
}

// Thresholds returns the drag thresholds.
func (p *Prefs) Thresholds() mouse.Thresholds {
	return mouse.Thresholds{
		Mouse:    p.Input.DragThresholdMouse,
		Tablet:   p.Input.DragThresholdTablet,
		Keyboard: p.Input.DragThresholdKeyboard,
	}
}

// ClickOptions returns the options of double click detection.
func (p *Prefs) ClickOptions() state.ClickOptions {
	return state.ClickOptions{
		DoubleClickTime: p.DoubleClickTime(),
		Thresholds:      p.Thresholds(),
	}
}

// Emulation returns the input emulation options.
func (p *Prefs) Emulation() state.EmulationOptions {
	mod, err := parseEmulationModifier(p.Input.TwoButtonModifier)
	if err != nil {
		mod = key.ModAlt
	}
	return state.EmulationOptions{
		TwoButtonMouse:    p.Input.TwoButtonMouse,
		TwoButtonModifier: mod,
		Numpad:            p.Input.NumpadEmulation,
	}
}

// LogLevel returns the configured log level.
func (p *Prefs) LogLevel() wmlog.Level {
	return wmlog.ParseLevel(p.Log.Level)
}

func parseEmulationModifier(name string) (key.Modifier, error) {
	if name == "" {
		return key.ModAlt, nil
	}
	switch mod := key.ModifierFromName(name); mod {
	case key.ModAlt, key.ModOS:
		return mod, nil
	default:
		return key.ModNone, fmt.Errorf("%w: input.two_button_modifier must be alt or os, got %q", ErrValidationFailed, name)
	}
}
