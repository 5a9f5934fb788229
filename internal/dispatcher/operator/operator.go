// Package operator defines operator types, the running operator instances
// keymap items invoke and the registry they are looked up in.
package operator

import (
	"fmt"
	"maps"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/wmevent/internal/dispatcher/execctx"
	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/input/keymap"
	"github.com/dshills/wmevent/internal/screen"
)

// Status is the bit set an operator callback returns.
type Status uint8

const (
	// Finished reports that the operator completed.
	Finished Status = 1 << iota
	// Cancelled reports that the operator did nothing.
	Cancelled
	// PassThrough lets the event continue to other handlers.
	PassThrough
	// RunningModal keeps the operator running as a modal handler.
	RunningModal
)

// Has reports whether every bit of b is set.
func (s Status) Has(b Status) bool {
	return s&b == b
}

// Handled reports whether the operator consumed the event.
func (s Status) Handled() bool {
	return s&(Finished|Cancelled|RunningModal) != 0 && s&PassThrough == 0
}

func (s Status) String() string {
	if s == 0 {
		return "NONE"
	}
	var parts []string
	for _, b := range []struct {
		bit  Status
		name string
	}{{Finished, "FINISHED"}, {Cancelled, "CANCELLED"}, {PassThrough, "PASS_THROUGH"}, {RunningModal, "RUNNING_MODAL"}} {
		if s&b.bit != 0 {
			parts = append(parts, b.name)
		}
	}
	return strings.Join(parts, "|")
}

// Flag describes operator type behavior.
type Flag uint8

const (
	// FlagBlocking makes the modal handler of the operator block every
	// event from handlers after it.
	FlagBlocking Flag = 1 << iota
	// FlagInternal hides the operator from listings.
	FlagInternal
)

// PollFunc reports whether an operator can run in the given context.
type PollFunc = func(ctx *execctx.Context) bool

// Type describes an operator.
//
// Invoke runs when an event triggers the operator; operators without Invoke
// fall back to Exec. Modal receives events while the operator runs modal and
// Cancel is called when a modal operator is removed without finishing.
type Type struct {
	ID          string
	Name        string
	Description string

	Poll   PollFunc
	Invoke func(ctx *execctx.Context, op *Operator, ev *event.Event) Status
	Exec   func(ctx *execctx.Context, op *Operator) Status
	Modal  func(ctx *execctx.Context, op *Operator, ev *event.Event) Status
	Cancel func(ctx *execctx.Context, op *Operator)

	// ModalKeymap names the modal keymap attached when the operator
	// starts running modal.
	ModalKeymap string

	// PollExpr is the Lua source of Poll when it was compiled from script.
	PollExpr string

	Flags Flag
}

// Polls runs the type poll. A type without poll always passes.
func (t *Type) Polls(ctx *execctx.Context) bool {
	return t.Poll == nil || t.Poll(ctx)
}

func (t *Type) validate() error {
	switch {
	case t.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidType)
	case t.Invoke == nil && t.Exec == nil:
		return fmt.Errorf("%w: %s has neither invoke nor exec", ErrInvalidType, t.ID)
	}
	return nil
}

// Operator is a running instance of a type.
type Operator struct {
	ID         uuid.UUID
	Type       *Type
	Properties map[string]any

	// ModalKeymap is attached by the dispatcher when the operator goes
	// modal and the type names one.
	ModalKeymap *keymap.Keymap

	// Location the operator was started in. Modal callbacks run with the
	// context restored to it.
	Window uuid.UUID
	Area   *screen.Area
	Region *screen.Region

	// Data is free for the operator callbacks.
	Data any
}

// New creates an instance of t with a copy of props.
func New(t *Type, props map[string]any) *Operator {
	p := maps.Clone(props)
	if p == nil {
		p = make(map[string]any)
	}
	return &Operator{ID: uuid.New(), Type: t, Properties: p}
}

// Run calls Invoke, or Exec for types without Invoke, after recording the
// context location.
func (op *Operator) Run(ctx *execctx.Context, ev *event.Event) Status {
	op.Window, op.Area, op.Region = ctx.Window, ctx.Area, ctx.Region
	switch {
	case op.Type.Invoke != nil:
		return op.Type.Invoke(ctx, op, ev)
	case op.Type.Exec != nil:
		return op.Type.Exec(ctx, op)
	}
	return Cancelled
}

// ModalValue returns the modal keymap value ev maps to.
func (op *Operator) ModalValue(ev *event.Event) (string, bool) {
	if op.ModalKeymap == nil {
		return "", false
	}
	return op.ModalKeymap.ModalValue(ev)
}

// String returns a typed property as a string, "" if missing.
func (op *Operator) String(name string) string {
	s, _ := op.Properties[name].(string)
	return s
}

// Int returns an integer property, def if missing or not a number.
func (op *Operator) Int(name string, def int) int {
	switch v := op.Properties[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// Bool returns a boolean property, false if missing.
func (op *Operator) Bool(name string) bool {
	b, _ := op.Properties[name].(bool)
	return b
}
