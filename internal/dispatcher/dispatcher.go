package dispatcher

import (
	"fmt"

	"github.com/dshills/wmevent/internal/dispatcher/execctx"
	"github.com/dshills/wmevent/internal/dispatcher/operator"
	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/input/key"
	"github.com/dshills/wmevent/internal/input/keymap"
	"github.com/dshills/wmevent/internal/input/mouse"
)

// Action is the bit set a dispatch pass reports.
type Action uint8

const (
	// ActionContinue means no handler consumed the event.
	ActionContinue Action = 0
	// ActionBreak stops the event from reaching later handlers.
	ActionBreak Action = 1 << (iota - 1)
	// ActionHandled means an operator ran and passed the event through.
	ActionHandled
	// ActionModal marks a break by a modal operator that did not use the
	// event.
	ActionModal
)

// Handled reports whether a handler consumed the event. A modal operator
// passing the event through still breaks, but does not count as handled.
func (a Action) Handled() bool {
	return a != ActionContinue && a != ActionBreak|ActionModal
}

// Result reports a dispatch pass. The handler fields describe the last
// handler that ran an operator or broke the pass.
type Result struct {
	Action Action

	Handler Handle
	Kind    Kind

	Keymap   string
	Item     *keymap.Item
	Operator string
	Status   operator.Status
}

// Matched reports whether a handler ran.
func (r Result) Matched() bool {
	return r.Kind != KindNone
}

func (r *Result) merge(other Result) {
	r.Action |= other.Action
	if other.Matched() {
		a := r.Action
		*r = other
		r.Action = a
	}
}

// Target is the window a chain belongs to: its click tracking and the
// modal chain operators going modal are pushed to.
type Target interface {
	Clicks() *mouse.ClickTracker
	ModalChain() *Chain
}

// Dispatcher runs events through handler chains.
//
// A Dispatcher is owned by the event loop and not safe for concurrent use.
type Dispatcher struct {
	keyconfig *keymap.KeyConfig
	operators *operator.Registry
	config    Config
	postHooks []PostDispatchHook
}

// New creates a dispatcher resolving keymaps in kc and operators in ops.
func New(kc *keymap.KeyConfig, ops *operator.Registry, config Config) (*Dispatcher, error) {
	if kc == nil {
		return nil, ErrNilKeyConfig
	}
	if ops == nil {
		return nil, ErrNilOperators
	}
	return &Dispatcher{keyconfig: kc, operators: ops, config: config}, nil
}

// KeyConfig returns the key configuration.
func (d *Dispatcher) KeyConfig() *keymap.KeyConfig {
	return d.keyconfig
}

// SetKeyConfig replaces the key configuration.
func (d *Dispatcher) SetKeyConfig(kc *keymap.KeyConfig) error {
	if kc == nil {
		return ErrNilKeyConfig
	}
	d.keyconfig = kc
	return nil
}

// Operators returns the operator registry.
func (d *Dispatcher) Operators() *operator.Registry {
	return d.operators
}

// Dispatch runs ev through chain, then synthesizes click, click-drag and
// press events from what the chain did not handle.
//
// An unhandled press arms the click and drag checks of target. An
// unhandled release of the armed type becomes a Click at the press
// position unless the cursor moved past the drag threshold. Motion past
// the threshold while the drag check is armed becomes a ClickDrag of the
// pressed type. An unhandled DoubleClick is retried as a Press.
func (d *Dispatcher) Dispatch(ctx *execctx.Context, target Target, chain *Chain, ev *event.Event) Result {
	res := d.handle(ctx, target, chain, ev)
	clicks := target.Clicks()

	switch {
	case ev.Type.IsMotion():
		if res.Action&ActionBreak != 0 && res.Action.Handled() {
			clicks.CancelDrag()
			break
		}
		if !clicks.DragArmed() || ev.PrevPress.Type == ev.Type || !isButtonOrKey(ev.PrevPress.Type) || !dragged(ctx, ev) {
			break
		}
		drag := *ev
		drag.Type = ev.PrevPress.Type
		drag.Value = key.ClickDrag
		drag.Modifiers = ev.PrevPress.Modifiers
		drag.KeyModifier = ev.PrevPress.KeyModifier
		ctx.Channel("wm.handlers").Debug("click drag %s", drag.Type)
		sub := d.handle(ctx, target, chain, &drag)
		res.merge(sub)
		clicks.CancelClick()
		if sub.Action&ActionBreak != 0 && sub.Action.Handled() {
			clicks.CancelDrag()
		}

	case isButtonOrKey(ev.Type):
		if res.Action.Handled() {
			clicks.CancelClick()
			break
		}
		switch ev.Value {
		case key.Press:
			if !ev.IsRepeat() {
				clicks.Arm(ev.Type)
			}
		case key.Release:
			clicks.CancelDrag()
		}
		if ev.PrevPress.Type != ev.Type {
			break
		}
		switch {
		case ev.Value == key.Release && ev.PrevValue == key.Press && clicks.ClickArmed(ev.Type):
			if dragged(ctx, ev) {
				clicks.CancelClick()
				break
			}
			click := *ev
			click.Value = key.Click
			click.Position = ev.PrevPress.Position
			ctx.Channel("wm.handlers").Debug("click %s", click.Type)
			res.merge(d.handle(ctx, target, chain, &click))
		case ev.Value == key.DoubleClick:
			press := *ev
			press.Value = key.Press
			res.merge(d.handle(ctx, target, chain, &press))
		}
	}
	return res
}

func isButtonOrKey(t key.Type) bool {
	return t.IsMouseButton() || t.IsKeyboard()
}

// dragged reports whether the cursor left the drag threshold of the armed
// press.
func dragged(ctx *execctx.Context, ev *event.Event) bool {
	threshold := ctx.Prefs.Thresholds().For(ev.PrevPress.Type, ev.IsTablet())
	return mouse.DragExceeded(ev.Position.Sub(ev.PrevPress.Position), threshold)
}

// handle runs one pass over chain.
func (d *Dispatcher) handle(ctx *execctx.Context, target Target, chain *Chain, ev *event.Event) Result {
	var res Result
	log := ctx.Channel("wm.handlers")

	chain.Each(func(h Handler) bool {
		b := h.base()
		if !b.polls(ctx, ev) {
			return true
		}

		var r Result
		switch h := h.(type) {
		case *KeymapHandler:
			r = d.handleKeymaps(ctx, target, []*keymap.Keymap{h.Keymap}, ev)
		case *DynamicKeymapHandler:
			r = d.handleKeymaps(ctx, target, d.resolve(ctx, h), ev)
		case *UIHandler:
			if h.Fn != nil && h.Fn(ctx, ev) == UIBreak {
				r = Result{Action: ActionBreak, Kind: KindUI}
			}
		case *OperatorHandler:
			r = d.handleModal(ctx, chain, h, ev)
		case *DropboxHandler:
			r = d.handleDrop(ctx, target, h, ev)
		}
		if r.Matched() {
			r.Handler = h.ID()
			if r.Kind == KindNone || r.Kind == KindKeymap {
				r.Kind = h.Kind()
			}
			log.Debug("%s handled by %s %s", ev.Type, r.Kind, r.Operator)
		}
		if b.Flags&FlagBlocking != 0 {
			r.Action |= ActionBreak
		}
		res.merge(r)
		return res.Action&ActionBreak == 0
	})

	ctx.Metrics.Dispatched(res.Kind.String(), res.Matched())
	return res
}

// resolve looks up the keymaps of a dynamic handler. Names missing from
// the key configuration are logged and skipped.
func (d *Dispatcher) resolve(ctx *execctx.Context, h *DynamicKeymapHandler) []*keymap.Keymap {
	names := h.names(ctx)
	kms := make([]*keymap.Keymap, 0, len(names))
	for _, name := range names {
		km := d.keyconfig.Lookup(name, ctx.SpaceType(), ctx.RegionType())
		if km == nil {
			ctx.Channel("wm.keymap").Warn("keymap %q not found for %s/%s", name, ctx.SpaceType(), ctx.RegionType())
			continue
		}
		kms = append(kms, km)
	}
	return kms
}

func (d *Dispatcher) handleKeymaps(ctx *execctx.Context, target Target, kms []*keymap.Keymap, ev *event.Event) Result {
	var res Result
	for _, km := range kms {
		if km == nil || !km.Polls(ctx) {
			continue
		}
		for _, it := range km.Items {
			if !it.Matches(ev) {
				continue
			}
			r, ok := d.callItem(ctx, target, it, ev)
			if !ok {
				continue
			}
			r.Keymap = km.Name
			res.merge(r)
			if res.Action&ActionBreak != 0 {
				return res
			}
		}
	}
	return res
}

// callItem runs the operator of a matching keymap item. It returns false
// when the operator is unknown or its poll fails, so the search goes on.
func (d *Dispatcher) callItem(ctx *execctx.Context, target Target, it *keymap.Item, ev *event.Event) (Result, bool) {
	ot, ok := d.operators.Get(it.Operator)
	if !ok {
		ctx.Channel("wm.handlers").Warn("keymap item %s: unknown operator %q", it.Trigger(), it.Operator)
		return Result{}, false
	}
	if !ot.Polls(ctx) {
		ctx.Channel("wm.handlers").Debug("%s poll failed", ot.ID)
		return Result{}, false
	}

	op := operator.New(ot, it.Properties)
	st := d.call(ctx, op, func() operator.Status { return op.Run(ctx, ev) })
	if st&operator.RunningModal != 0 {
		d.startModal(ctx, target, op)
	}

	res := Result{
		Action:   actionFor(st),
		Kind:     KindKeymap,
		Item:     it,
		Operator: ot.ID,
		Status:   st,
	}
	d.runPostHooks(ctx, ev, res)
	return res, true
}

// startModal pushes op to the head of the modal chain.
func (d *Dispatcher) startModal(ctx *execctx.Context, target Target, op *operator.Operator) {
	if op.Type.Modal == nil {
		ctx.Channel("wm.debug").Warn("%s returned %s without a modal callback", op.Type.ID, operator.RunningModal)
		return
	}
	if name := op.Type.ModalKeymap; name != "" {
		op.ModalKeymap = d.keyconfig.LookupName(name)
		if op.ModalKeymap == nil {
			ctx.Channel("wm.keymap").Warn("modal keymap %q of %s not found", name, op.Type.ID)
		}
	}
	target.ModalChain().PushOperator(op)
}

// handleModal feeds ev to a modal operator with the context restored to
// where the operator started. The handler is removed once the operator
// stops running modal.
func (d *Dispatcher) handleModal(ctx *execctx.Context, chain *Chain, h *OperatorHandler, ev *event.Event) Result {
	op := h.Op
	win, area, region := ctx.Window, ctx.Area, ctx.Region
	ctx.SetLocation(op.Window, op.Area, op.Region)
	st := d.call(ctx, op, func() operator.Status { return op.Type.Modal(ctx, op, ev) })
	ctx.SetLocation(win, area, region)

	if st&operator.RunningModal == 0 {
		chain.Remove(h.ID())
	}
	res := Result{Action: actionFor(st), Kind: KindOperator, Operator: op.Type.ID, Status: st}
	d.runPostHooks(ctx, ev, res)
	return res
}

// handleDrop offers a Drop event to the dropboxes. The first dropbox that
// accepts the data runs its operator.
func (d *Dispatcher) handleDrop(ctx *execctx.Context, target Target, h *DropboxHandler, ev *event.Event) Result {
	if ev.Type != key.Drop {
		return Result{}
	}
	drag, ok := ev.Payload.(*event.DragData)
	if !ok {
		return Result{}
	}
	for _, box := range h.Dropboxes {
		if box.Poll != nil && !box.Poll(ctx, drag, ev) {
			continue
		}
		ot, ok := d.operators.Get(box.Operator)
		if !ok {
			ctx.Channel("wm.handlers").Warn("dropbox %s: unknown operator %q", box.Name, box.Operator)
			continue
		}
		if !ot.Polls(ctx) {
			continue
		}
		props := make(map[string]any)
		if box.Copy != nil {
			box.Copy(drag, props)
		}
		op := operator.New(ot, props)
		st := d.call(ctx, op, func() operator.Status { return op.Run(ctx, ev) })
		if st&operator.RunningModal != 0 {
			d.startModal(ctx, target, op)
		}
		res := Result{Action: ActionBreak, Kind: KindDropbox, Operator: ot.ID, Status: st}
		d.runPostHooks(ctx, ev, res)
		return res
	}
	return Result{}
}

// call runs an operator callback, recovering panics when configured.
func (d *Dispatcher) call(ctx *execctx.Context, op *operator.Operator, fn func() operator.Status) (st operator.Status) {
	if d.config.RecoverFromPanic {
		defer func() {
			if r := recover(); r != nil {
				ctx.Channel("wm.handlers").Error("%v", fmt.Errorf("%w: %s: %v", ErrPanic, op.Type.ID, r))
				st = operator.Cancelled
			}
		}()
	}
	return fn()
}

// actionFor maps an operator status to a handler action.
func actionFor(st operator.Status) Action {
	switch {
	case st == operator.Finished|operator.PassThrough:
		return ActionHandled
	case st == operator.RunningModal|operator.PassThrough:
		return ActionBreak | ActionModal
	case st&operator.PassThrough != 0:
		return ActionContinue
	}
	return ActionBreak
}

// Match is the first keymap item Match found.
type Match struct {
	Handler Handler
	Keymap  *keymap.Keymap
	Item    *keymap.Item
}

// Match returns the keymap item that would run for ev without running it:
// the first item of a polling keymap handler whose trigger matches and
// whose operator polls.
func (d *Dispatcher) Match(ctx *execctx.Context, chain *Chain, ev *event.Event) (Match, bool) {
	var m Match
	found := false
	chain.Each(func(h Handler) bool {
		if !h.base().polls(ctx, ev) {
			return true
		}
		var kms []*keymap.Keymap
		switch h := h.(type) {
		case *KeymapHandler:
			kms = []*keymap.Keymap{h.Keymap}
		case *DynamicKeymapHandler:
			kms = d.resolve(ctx, h)
		default:
			return true
		}
		for _, km := range kms {
			if km == nil || !km.Polls(ctx) {
				continue
			}
			for _, it := range km.Items {
				if !it.Matches(ev) {
					continue
				}
				if ot, ok := d.operators.Get(it.Operator); ok && ot.Polls(ctx) {
					m = Match{Handler: h, Keymap: km, Item: it}
					found = true
					return false
				}
			}
		}
		return true
	})
	return m, found
}
