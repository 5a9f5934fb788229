// Package config holds the user preferences the event pipeline reads:
// double click time, drag thresholds, input emulation, NDOF sensitivity and
// logging.
//
// Preferences are loaded from a TOML file on top of built-in defaults,
// optionally overridden from the environment, and can be reloaded live
// through a Watcher:
//
//	[input]
//	double_click_time_ms = 350
//	drag_threshold_mouse = 3
//	two_button_mouse = true
//	two_button_modifier = "alt"
//
//	[ndof]
//	sensitivity = 1.0
//
// The core never writes preferences; the window manager swaps in a new
// *Prefs value between steps.
package config
