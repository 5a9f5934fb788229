package dispatcher

import (
	"github.com/dshills/wmevent/internal/dispatcher/execctx"
	"github.com/dshills/wmevent/internal/input/event"
)

// PostDispatchHook is called after the dispatcher ran an operator, from a
// keymap item, a dropbox or a modal handler.
type PostDispatchHook interface {
	PostDispatch(ctx *execctx.Context, ev *event.Event, res Result)
}

// PostDispatchFunc is a function adapter for PostDispatchHook.
type PostDispatchFunc func(ctx *execctx.Context, ev *event.Event, res Result)

// PostDispatch implements PostDispatchHook.
func (f PostDispatchFunc) PostDispatch(ctx *execctx.Context, ev *event.Event, res Result) {
	f(ctx, ev, res)
}

// AddPostHook registers a hook.
func (d *Dispatcher) AddPostHook(h PostDispatchHook) {
	d.postHooks = append(d.postHooks, h)
}

func (d *Dispatcher) runPostHooks(ctx *execctx.Context, ev *event.Event, res Result) {
	for _, h := range d.postHooks {
		h.PostDispatch(ctx, ev, res)
	}
}
