package dispatcher

import (
	"github.com/google/uuid"

	"github.com/dshills/wmevent/internal/dispatcher/execctx"
	"github.com/dshills/wmevent/internal/dispatcher/operator"
	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/input/keymap"
)

// Handle identifies a handler. Handles stay valid after the handler is
// removed; lookups then fail.
type Handle uuid.UUID

// String returns the handle as a UUID string.
func (h Handle) String() string {
	return uuid.UUID(h).String()
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool {
	return uuid.UUID(h) == uuid.Nil
}

// Kind is the handler variant.
type Kind uint8

const (
	KindNone Kind = iota
	KindKeymap
	KindDynamicKeymap
	KindUI
	KindOperator
	KindDropbox
)

var kindNames = [...]string{
	KindNone:          "none",
	KindKeymap:        "keymap",
	KindDynamicKeymap: "dynamic_keymap",
	KindUI:            "ui",
	KindOperator:      "operator",
	KindDropbox:       "dropbox",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Flag is a bit set of handler flags.
type Flag uint8

const (
	// FlagBlocking stops every event at this handler, handled or not.
	FlagBlocking Flag = 1 << iota
)

// PollFunc restricts a handler to some events, typically those inside a
// region.
type PollFunc func(ctx *execctx.Context, ev *event.Event) bool

// Handler is an entry of a chain. The variants are KeymapHandler,
// DynamicKeymapHandler, UIHandler, OperatorHandler and DropboxHandler.
type Handler interface {
	ID() Handle
	Kind() Kind
	base() *Base
}

// Base holds the fields every handler shares.
type Base struct {
	id    Handle
	Flags Flag
	Poll  PollFunc
}

// ID returns the handler handle.
func (b *Base) ID() Handle { return b.id }

func (b *Base) base() *Base { return b }

func (b *Base) polls(ctx *execctx.Context, ev *event.Event) bool {
	return b.Poll == nil || b.Poll(ctx, ev)
}

// KeymapHandler runs the items of a fixed keymap.
type KeymapHandler struct {
	Base
	Keymap *keymap.Keymap
}

// Kind implements Handler.
func (*KeymapHandler) Kind() Kind { return KindKeymap }

// KeymapsFunc resolves keymap names when the event is handled.
type KeymapsFunc func(ctx *execctx.Context) []string

// DynamicKeymapHandler resolves its keymaps per event, by default from the
// tool of the area being handled.
type DynamicKeymapHandler struct {
	Base
	Keymaps KeymapsFunc
}

// Kind implements Handler.
func (*DynamicKeymapHandler) Kind() Kind { return KindDynamicKeymap }

func (h *DynamicKeymapHandler) names(ctx *execctx.Context) []string {
	if h.Keymaps != nil {
		return h.Keymaps(ctx)
	}
	if ctx.Area == nil {
		return nil
	}
	return ctx.Area.ToolKeymaps()
}

// UIAction is the result of a UI handler.
type UIAction uint8

const (
	UIContinue UIAction = iota
	UIBreak
)

// UIFunc handles an event for a UI element.
type UIFunc func(ctx *execctx.Context, ev *event.Event) UIAction

// UIHandler passes events to interface code such as menus and buttons.
type UIHandler struct {
	Base
	Fn UIFunc
	// Modal marks handlers of open menus and popups. They stop events
	// from leaving the window.
	Modal bool
}

// Kind implements Handler.
func (*UIHandler) Kind() Kind { return KindUI }

// OperatorHandler feeds events to a modal operator.
type OperatorHandler struct {
	Base
	Op *operator.Operator
}

// Kind implements Handler.
func (*OperatorHandler) Kind() Kind { return KindOperator }

// Dropbox runs an operator for dropped data it accepts.
type Dropbox struct {
	Name     string
	Poll     func(ctx *execctx.Context, drag *event.DragData, ev *event.Event) bool
	Operator string
	// Copy fills the operator properties from the drag data.
	Copy func(drag *event.DragData, props map[string]any)
}

// DropboxHandler offers Drop events to its dropboxes in order.
type DropboxHandler struct {
	Base
	Dropboxes []*Dropbox
}

// Kind implements Handler.
func (*DropboxHandler) Kind() Kind { return KindDropbox }
