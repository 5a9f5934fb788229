package wm

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/wmevent/internal/dispatcher"
	"github.com/dshills/wmevent/internal/dispatcher/operator"
	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/input/keymap"
	"github.com/dshills/wmevent/internal/screen"
	"github.com/dshills/wmevent/internal/wmlog"
)

// AddKeymapHandler appends a keymap handler to chain. Adding the same
// keymap twice returns the existing handler.
func (m *Manager) AddKeymapHandler(chain *dispatcher.Chain, km *keymap.Keymap) dispatcher.Handle {
	var found dispatcher.Handle
	chain.Each(func(h dispatcher.Handler) bool {
		if kh, ok := h.(*dispatcher.KeymapHandler); ok && kh.Keymap == km {
			found = kh.ID()
			return false
		}
		return true
	})
	if !found.IsZero() {
		return found
	}
	return chain.AddKeymap(km).ID()
}

// AddKeymapHandlerByName resolves a keymap in the key configuration and
// appends a handler for it.
func (m *Manager) AddKeymapHandlerByName(chain *dispatcher.Chain, name string, space screen.SpaceType, region screen.RegionType) (dispatcher.Handle, error) {
	km := m.KeyConfig().Lookup(name, space, region)
	if km == nil {
		return dispatcher.Handle{}, fmt.Errorf("%w: %s", ErrKeymapNotFound, name)
	}
	return m.AddKeymapHandler(chain, km), nil
}

// AddModalOperator starts an operator modal in a window without an event,
// the way a script or another operator would.
func (m *Manager) AddModalOperator(window uuid.UUID, id string, props map[string]any) (*operator.Operator, error) {
	w, ok := m.Window(window)
	if !ok {
		return nil, fmt.Errorf("start %s: %w", id, ErrWindowNotFound)
	}
	t, ok := m.Operators().Get(id)
	if !ok {
		return nil, fmt.Errorf("start %s: %w", id, operator.ErrNotFound)
	}
	if t.Modal == nil {
		return nil, fmt.Errorf("start %s: %w", id, ErrNotModal)
	}

	op := operator.New(t, props)
	op.Window = w.id
	if name := t.ModalKeymap; name != "" {
		op.ModalKeymap = m.KeyConfig().LookupName(name)
		if op.ModalKeymap == nil {
			m.ctx.Channel(wmlog.ChannelKeymap).Warn("modal keymap %q of %s not found", name, id)
		}
	}
	w.modal.PushOperator(op)
	m.ctx.Channel(wmlog.ChannelOperators).Debug("%s running modal in %s", id, w.id)
	return op, nil
}

// CallOperator runs operator id in a window by name, located in the area
// and region under the cursor, the way a menu entry or a script calls an
// operator. ev may be nil.
func (m *Manager) CallOperator(window uuid.UUID, id string, props map[string]any, ev *event.Event) (operator.Status, error) {
	w, ok := m.Window(window)
	if !ok {
		return operator.Cancelled, fmt.Errorf("call %s: %w", id, ErrWindowNotFound)
	}

	ctx := m.ctx
	win, area, region := ctx.Window, ctx.Area, ctx.Region
	defer ctx.SetLocation(win, area, region)

	ctx.SetLocation(w.id, nil, nil)
	if a := w.Screen.AreaAt(w.state.Position); a != nil {
		ctx.SetLocation(w.id, a, a.RegionAt(w.state.Position))
	}
	return m.dispatcher.Call(ctx, w, id, props, ev)
}

// MatchAt returns the keymap item ev would run in w without running it.
// The region, area and window chains are searched in handler pass order;
// the modal chain is not.
func (m *Manager) MatchAt(w *Window, ev *event.Event) (dispatcher.Match, bool) {
	ctx := m.ctx
	d := m.dispatcher
	win, area, region := ctx.Window, ctx.Area, ctx.Region
	defer ctx.SetLocation(win, area, region)

	if a := w.Screen.AreaAt(ev.Position); a != nil {
		if r := a.RegionAt(ev.Position); r != nil {
			if c, ok := w.regions[r.ID]; ok {
				ctx.SetLocation(w.id, a, r)
				if mt, ok := d.Match(ctx, c, ev); ok {
					return mt, true
				}
			}
		}
		if c, ok := w.areas[a.ID]; ok {
			ctx.SetLocation(w.id, a, nil)
			if mt, ok := d.Match(ctx, c, ev); ok {
				return mt, true
			}
		}
	}
	ctx.SetLocation(w.id, nil, nil)
	return d.Match(ctx, w.handlers, ev)
}

// RemoveHandler removes a handler from whichever window holds it.
func (m *Manager) RemoveHandler(h dispatcher.Handle) bool {
	for _, w := range m.windows {
		if w.RemoveHandler(h) {
			return true
		}
	}
	return false
}
