// Package key defines the vocabulary shared by every stage of the event
// pipeline:
//
//   - Type: what an event is about (a keyboard key, a mouse button, motion,
//     wheel, trackpad gesture, timer, NDOF, XR action, drop)
//   - Value: the transition it reports (press, release, click, double click,
//     click drag)
//   - Modifier: the standard modifier bit set (Shift, Ctrl, Alt, OS)
//   - Combo: a parsed key combination used by keymap triggers
//
// # Key Combinations
//
// Combinations can be written in two formats:
//
//   - Plus style: "A", "Ctrl+S", "Ctrl+Shift+LEFTMOUSE", "Q+G"
//   - Bracket style: "<C-s>", "<A-F4>", "<C-S-p>", "<O-a>"
//
// A non-modifier key before the final one is a key-modifier: "Q+G" fires
// when G is pressed while Q is held.
package key
