// Package journal records dispatched canonical events in SQLite and reads
// them back for replay.
//
// Each run of the window manager records into its own session. Events are
// stored with their window and a per-session sequence number; Replay
// returns them in sequence order so they can be fed back through
// wm.Window.Simulate.
package journal
