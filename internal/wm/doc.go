// Package wm is the window manager: it owns the windows, their event
// queues and handler chains, the dispatcher, the timers and the message bus,
// and runs the main loop step.
//
// A step processes timers, drains every window queue through the handler
// tiers and finally delivers tagged bus messages:
//
//	m.Step(now)  // Timers.Process -> DoHandlers -> DoNotifiers
//
// Each event is offered to the window's modal chain, then to the region
// under the cursor, its area and finally the window handlers. The first
// tier that breaks ends the event.
//
// The manager is owned by one goroutine. Platform adapters feed it through
// HandleRaw from that goroutine.
package wm
