// Package tcellsrc turns terminal events read with tcell into platform
// events for the window manager.
//
// Terminals report key presses only. Each key becomes a press followed by a
// release, and modifier keys are pressed and released as the modifier mask
// of incoming events changes, so the window state sees the same key sequence
// a windowing system would report. Mouse buttons are derived from changes of
// the button mask and cell positions are scaled to pixels. Bracketed paste becomes a Drop of
// the pasted text.
package tcellsrc
