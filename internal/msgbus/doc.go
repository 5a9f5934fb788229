// Package msgbus is the property message bus.
//
// Subscribers register a Value against a key. Property keys (Params) name a
// struct type, the entity owning the data, the data location inside it and
// a property; an empty owner, location or property subscribes to every
// match of the remaining fields. Static keys are topic patterns such as
// "prefs.changed" or "window.*".
//
// Publishing notifies the exact key first, then the broader anonymous keys.
// Values flagged Tag are not called at publish time: they are marked
// pending and delivered by Handle, which the main loop calls once per step.
// TagCount lets a redraw scheduler skip Handle when nothing is pending.
//
// The bus is owned by the main loop and not safe for concurrent use.
// Callbacks may subscribe and unsubscribe; removals made while a value list
// is being walked are deferred until the walk ends.
package msgbus
