package dispatcher

import (
	"fmt"

	"github.com/dshills/wmevent/internal/dispatcher/execctx"
	"github.com/dshills/wmevent/internal/dispatcher/operator"
	"github.com/dshills/wmevent/internal/input/event"
)

// Call runs operator id by name, the way a keymap item would but without
// one: poll, invoke or exec, then a modal start on target when the operator
// asks for it. ev may be nil; post hooks only see calls with an event.
func (d *Dispatcher) Call(ctx *execctx.Context, target Target, id string, props map[string]any, ev *event.Event) (operator.Status, error) {
	ot, ok := d.operators.Get(id)
	if !ok {
		return operator.Cancelled, fmt.Errorf("call %s: %w", id, operator.ErrNotFound)
	}
	if !ot.Polls(ctx) {
		return operator.Cancelled, fmt.Errorf("call %s: %w", id, ErrPollFailed)
	}

	op := operator.New(ot, props)
	st := d.call(ctx, op, func() operator.Status { return op.Run(ctx, ev) })
	if st&operator.RunningModal != 0 {
		d.startModal(ctx, target, op)
	}
	if ev != nil {
		d.runPostHooks(ctx, ev, Result{Action: actionFor(st), Operator: ot.ID, Status: st})
	}
	return st, nil
}
