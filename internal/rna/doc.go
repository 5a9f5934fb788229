// Package rna holds property documents: JSON objects owned by an entity and
// addressed by gjson paths. A Pointer names a struct inside a document, the
// owner itself when its path is empty. Writes go through sjson and are
// announced to an OnChange callback, which the window manager wires to the
// message bus.
//
// Store implements Resolver, which the message bus uses to relocate
// persistent subscriptions when a document is reloaded under a new ID.
package rna
