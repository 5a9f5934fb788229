package operator

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/dshills/wmevent/internal/dispatcher/execctx"
	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/input/key"
	"github.com/dshills/wmevent/internal/input/keymap"
	"github.com/dshills/wmevent/internal/input/mouse"
	"github.com/dshills/wmevent/internal/screen"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		s       Status
		handled bool
		str     string
	}{
		{Finished, true, "FINISHED"},
		{Cancelled, true, "CANCELLED"},
		{RunningModal, true, "RUNNING_MODAL"},
		{PassThrough, false, "PASS_THROUGH"},
		{Finished | PassThrough, false, "FINISHED|PASS_THROUGH"},
		{0, false, "NONE"},
	}
	for _, tt := range tests {
		if got := tt.s.Handled(); got != tt.handled {
			t.Errorf("%s.Handled() = %v", tt.s, got)
		}
		if got := tt.s.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
	}
	if !(Finished | PassThrough).Has(PassThrough) {
		t.Error("Has(PassThrough) = false")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	exec := func(*execctx.Context, *Operator) Status { return Finished }

	if err := r.Register(&Type{ID: "wm.quit", Exec: exec}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&Type{ID: "wm.quit", Exec: exec}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate error = %v", err)
	}
	if err := r.Register(&Type{ID: "wm.nothing"}); !errors.Is(err, ErrInvalidType) {
		t.Errorf("invalid error = %v", err)
	}
	if err := r.Register(nil); !errors.Is(err, ErrInvalidType) {
		t.Errorf("nil error = %v", err)
	}
	r.MustRegister(&Type{ID: "wm.hidden", Exec: exec, Flags: FlagInternal})
	r.MustRegister(&Type{ID: "view.pan", Exec: exec})

	ids := r.IDs()
	if len(ids) != 2 || ids[0] != "view.pan" || ids[1] != "wm.quit" {
		t.Errorf("IDs() = %v", ids)
	}
	if _, ok := r.Get("wm.hidden"); !ok {
		t.Error("internal operators are still registered")
	}
	if !r.Unregister("wm.quit") || r.Unregister("wm.quit") {
		t.Error("Unregister should succeed once")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d", r.Len())
	}
}

func TestRunPrefersInvoke(t *testing.T) {
	var called string
	typ := &Type{
		ID: "test",
		Invoke: func(*execctx.Context, *Operator, *event.Event) Status {
			called = "invoke"
			return Finished
		},
		Exec: func(*execctx.Context, *Operator) Status {
			called = "exec"
			return Finished
		},
	}

	ctx := execctx.New()
	area := screen.NewArea(screen.SpaceView3D, mouse.RectXYWH(0, 0, 10, 10))
	win := uuid.New()
	ctx.SetLocation(win, area, area.Regions[0])

	op := New(typ, nil)
	if st := op.Run(ctx, &event.Event{}); st != Finished || called != "invoke" {
		t.Errorf("Run() = %s via %s", st, called)
	}
	if op.Window != win || op.Area != area || op.Region != area.Regions[0] {
		t.Error("Run should record the location")
	}

	typ.Invoke = nil
	if New(typ, nil).Run(ctx, nil); called != "exec" {
		t.Errorf("Run() without invoke called %s", called)
	}
}

func TestProperties(t *testing.T) {
	props := map[string]any{"message": "hi", "delta": -1, "scale": 2.0, "extend": true}
	op := New(&Type{ID: "x"}, props)
	props["message"] = "changed"

	if op.String("message") != "hi" {
		t.Error("New should copy properties")
	}
	if op.Int("delta", 0) != -1 || op.Int("scale", 0) != 2 || op.Int("missing", 7) != 7 {
		t.Error("Int() wrong")
	}
	if !op.Bool("extend") || op.Bool("missing") {
		t.Error("Bool() wrong")
	}
}

func TestModalValue(t *testing.T) {
	op := New(&Type{ID: "view.pan"}, nil)
	ev := &event.Event{Type: key.KeyEsc, Value: key.Press}
	if _, ok := op.ModalValue(ev); ok {
		t.Error("no modal keymap attached yet")
	}
	op.ModalKeymap = keymap.DefaultViewPanModalKeymap()
	if v, ok := op.ModalValue(ev); !ok || v != keymap.ModalCancel {
		t.Errorf("ModalValue() = %q, %v", v, ok)
	}
}
