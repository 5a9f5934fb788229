package dispatcher_test

import (
	"errors"
	"testing"

	"github.com/dshills/wmevent/internal/dispatcher"
	"github.com/dshills/wmevent/internal/dispatcher/execctx"
	"github.com/dshills/wmevent/internal/dispatcher/operator"
	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/input/key"
)

func TestCall(t *testing.T) {
	r := newRecorder()
	r.add("op.a", operator.Finished)
	d := newDispatcher(t, nil, r)
	stats := dispatcher.NewStats(4)
	d.AddPostHook(stats)

	st, err := d.Call(execctx.New(), newTarget(), "op.a", map[string]any{"n": 1}, nil)
	if err != nil || st != operator.Finished {
		t.Fatalf("Call() = %v, %v", st, err)
	}
	if len(r.calls) != 1 || r.props[0]["n"] != 1 {
		t.Errorf("calls = %v props = %v", r.calls, r.props)
	}
	if stats.Total() != 0 {
		t.Error("a call without an event should not reach post hooks")
	}

	if _, err := d.Call(execctx.New(), newTarget(), "op.a", nil, press(key.KeyA)); err != nil {
		t.Fatal(err)
	}
	if stats.Count("op.a") != 1 {
		t.Errorf("Count(op.a) = %d, want 1", stats.Count("op.a"))
	}
}

func TestCallErrors(t *testing.T) {
	r := newRecorder()
	r.add("op.a", operator.Finished).Poll = func(*execctx.Context) bool { return false }
	d := newDispatcher(t, nil, r)

	if _, err := d.Call(execctx.New(), newTarget(), "op.missing", nil, nil); !errors.Is(err, operator.ErrNotFound) {
		t.Errorf("unknown operator error = %v", err)
	}
	if _, err := d.Call(execctx.New(), newTarget(), "op.a", nil, nil); !errors.Is(err, dispatcher.ErrPollFailed) {
		t.Errorf("poll failure error = %v", err)
	}
	if len(r.calls) != 0 {
		t.Errorf("calls = %v", r.calls)
	}
}

func TestCallStartsModal(t *testing.T) {
	ops := operator.NewRegistry()
	ops.MustRegister(&operator.Type{
		ID: "op.modal",
		Invoke: func(*execctx.Context, *operator.Operator, *event.Event) operator.Status {
			return operator.RunningModal
		},
		Modal: func(*execctx.Context, *operator.Operator, *event.Event) operator.Status {
			return operator.Finished
		},
	})
	d := newDispatcher(t, nil, &recorder{ops: ops})

	target := newTarget()
	st, err := d.Call(execctx.New(), target, "op.modal", nil, nil)
	if err != nil || st != operator.RunningModal {
		t.Fatalf("Call() = %v, %v", st, err)
	}
	if target.modal.Len() != 1 {
		t.Errorf("modal chain len = %d, want 1", target.modal.Len())
	}
}
