package dispatcher

import (
	"github.com/google/uuid"

	"github.com/dshills/wmevent/internal/dispatcher/execctx"
	"github.com/dshills/wmevent/internal/dispatcher/operator"
	"github.com/dshills/wmevent/internal/input/keymap"
	"github.com/dshills/wmevent/internal/tombstone"
)

// Chain is an ordered list of handlers. Handlers removed while the chain
// is being dispatched stay linked until the pass ends.
type Chain struct {
	list  tombstone.List[Handler]
	index map[Handle]*tombstone.Element[Handler]
}

// NewChain creates an empty chain.
func NewChain() *Chain {
	return &Chain{index: make(map[Handle]*tombstone.Element[Handler])}
}

func (c *Chain) add(h Handler, front bool) {
	b := h.base()
	if b.id.IsZero() {
		b.id = Handle(uuid.New())
	}
	var e *tombstone.Element[Handler]
	if front {
		e = c.list.PushFront(h)
	} else {
		e = c.list.PushBack(h)
	}
	c.index[b.id] = e
}

// Add appends h and returns its handle.
func (c *Chain) Add(h Handler) Handle {
	c.add(h, false)
	return h.ID()
}

// Prepend inserts h at the head and returns its handle.
func (c *Chain) Prepend(h Handler) Handle {
	c.add(h, true)
	return h.ID()
}

// AddKeymap appends a handler for km.
func (c *Chain) AddKeymap(km *keymap.Keymap) *KeymapHandler {
	h := &KeymapHandler{Keymap: km}
	c.add(h, false)
	return h
}

// AddDynamicKeymap appends a handler resolving its keymaps with fn, or from
// the area tool when fn is nil.
func (c *Chain) AddDynamicKeymap(fn KeymapsFunc) *DynamicKeymapHandler {
	h := &DynamicKeymapHandler{Keymaps: fn}
	c.add(h, false)
	return h
}

// AddUI appends a UI handler.
func (c *Chain) AddUI(fn UIFunc) *UIHandler {
	h := &UIHandler{Fn: fn}
	c.add(h, false)
	return h
}

// PushUI inserts a modal UI handler at the head, the way menus open.
func (c *Chain) PushUI(fn UIFunc) *UIHandler {
	h := &UIHandler{Fn: fn, Modal: true}
	c.add(h, true)
	return h
}

// AddDropbox appends a dropbox handler.
func (c *Chain) AddDropbox(boxes ...*Dropbox) *DropboxHandler {
	h := &DropboxHandler{Dropboxes: boxes}
	c.add(h, false)
	return h
}

// PushOperator inserts a modal operator handler at the head.
func (c *Chain) PushOperator(op *operator.Operator) *OperatorHandler {
	h := &OperatorHandler{Op: op}
	if op.Type.Flags&operator.FlagBlocking != 0 {
		h.Flags |= FlagBlocking
	}
	c.add(h, true)
	return h
}

// Get returns the live handler for h, nil once removed.
func (c *Chain) Get(h Handle) Handler {
	if e, ok := c.index[h]; ok {
		return e.Value
	}
	return nil
}

// Remove removes the handler. During a dispatch pass it becomes pending
// removal and is freed when the pass ends.
func (c *Chain) Remove(h Handle) bool {
	e, ok := c.index[h]
	if !ok {
		return false
	}
	delete(c.index, h)
	return c.list.Remove(e)
}

// Len returns the number of live handlers.
func (c *Chain) Len() int {
	return c.list.Len()
}

// Pending returns the number of removed handlers awaiting the end of the
// current pass.
func (c *Chain) Pending() int {
	return c.list.Tombstones()
}

// Handlers returns the live handlers in order.
func (c *Chain) Handlers() []Handler {
	return c.list.Values()
}

// Each calls fn for every live handler until fn returns false.
func (c *Chain) Each(fn func(Handler) bool) {
	c.list.Each(func(e *tombstone.Element[Handler]) bool {
		return fn(e.Value)
	})
}

// HasModal reports whether a modal UI or operator handler is live.
func (c *Chain) HasModal() bool {
	modal := false
	c.Each(func(h Handler) bool {
		switch h := h.(type) {
		case *OperatorHandler:
			modal = true
		case *UIHandler:
			modal = h.Modal
		}
		return !modal
	})
	return modal
}

// Clear removes every handler. Modal operators are cancelled.
func (c *Chain) Clear(ctx *execctx.Context) {
	for _, h := range c.Handlers() {
		if oh, ok := h.(*OperatorHandler); ok && oh.Op.Type.Cancel != nil {
			oh.Op.Type.Cancel(ctx, oh.Op)
		}
		c.Remove(h.ID())
	}
}
