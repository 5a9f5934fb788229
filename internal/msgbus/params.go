package msgbus

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"

	"github.com/dshills/wmevent/internal/msgbus/topic"
	"github.com/dshills/wmevent/internal/rna"
	"github.com/dshills/wmevent/internal/tombstone"
)

// Params identifies a property message. The struct is the map key, so two
// Params are the same key when every field is equal.
type Params struct {
	// Type is the struct type name.
	Type string
	// Owner is the entity owning the data. uuid.Nil is anonymous.
	Owner uuid.UUID
	// Data is the location of the struct inside the owner, empty for the
	// owner itself.
	Data string
	// Prop is the property name. Empty matches every property.
	Prop string
}

// PropertyParams returns the params of prop on the struct at p.
func PropertyParams(p rna.Pointer, prop string) Params {
	return Params{Type: p.Type, Owner: p.Owner, Data: p.Path, Prop: prop}
}

// TypeParams returns the params matching every struct of a type.
func TypeParams(typ, prop string) Params {
	return Params{Type: typ, Prop: prop}
}

func (p Params) anonymous() bool {
	return p.Owner == uuid.Nil && p.Data == ""
}

func (p Params) String() string {
	owner := "<none>"
	if p.Owner != uuid.Nil {
		owner = p.Owner.String()
	}
	prop := p.Prop
	if prop == "" {
		prop = "<none>"
	}
	if p.Data != "" {
		return fmt.Sprintf("rna(id=%s, %s[%s].%s)", owner, p.Type, p.Data, prop)
	}
	return fmt.Sprintf("rna(id=%s, %s.%s)", owner, p.Type, prop)
}

// Message describes the key a value is subscribed to.
type Message struct {
	// Params is set for property messages.
	Params Params
	// Topic is the subscribed pattern of static messages.
	Topic topic.Topic
}

// IsStatic reports whether the message is a static message.
func (m Message) IsStatic() bool {
	return m.Topic != ""
}

func (m Message) String() string {
	if m.IsStatic() {
		return "static(" + string(m.Topic) + ")"
	}
	return m.Params.String()
}

// NotifyFunc is called with the message and the subscribed value.
type NotifyFunc func(msg Message, v *Value)

// Value is a subscription on a key.
type Value struct {
	Notify NotifyFunc
	// Owner identifies the subscriber for ClearByOwner and duplicate
	// detection. It must be comparable.
	Owner any
	// UserData is passed back to Notify.
	UserData any
	// Persistent values survive UpdateByID when their key re-resolves.
	Persistent bool
	// Tag defers delivery to Handle.
	Tag bool
	// Info describes the subscriber in Dump output.
	Info string

	pending bool
	key     *key
	elem    *tombstone.Element[*Value]
}

// Pending reports whether a tagged value awaits Handle.
func (v *Value) Pending() bool {
	return v.pending
}

// Subscribed reports whether the value is still on the bus.
func (v *Value) Subscribed() bool {
	return v.key != nil
}

// same reports whether two values are the same subscription. Values without
// an owner are never merged.
func (v *Value) same(o *Value) bool {
	if v.Owner == nil || !equal(v.Owner, o.Owner) || !equal(v.UserData, o.UserData) {
		return false
	}
	return funcID(v.Notify) == funcID(o.Notify)
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

func funcID(fn NotifyFunc) uintptr {
	if fn == nil {
		return 0
	}
	return reflect.ValueOf(fn).Pointer()
}
