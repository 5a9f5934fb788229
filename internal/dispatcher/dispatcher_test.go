package dispatcher_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/dshills/wmevent/internal/dispatcher"
	"github.com/dshills/wmevent/internal/dispatcher/execctx"
	"github.com/dshills/wmevent/internal/dispatcher/operator"
	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/input/key"
	"github.com/dshills/wmevent/internal/input/keymap"
	"github.com/dshills/wmevent/internal/input/mouse"
	"github.com/dshills/wmevent/internal/metrics"
	"github.com/dshills/wmevent/internal/screen"
)

type fakeTarget struct {
	clicks mouse.ClickTracker
	modal  *dispatcher.Chain
}

func newTarget() *fakeTarget {
	return &fakeTarget{modal: dispatcher.NewChain()}
}

func (t *fakeTarget) Clicks() *mouse.ClickTracker   { return &t.clicks }
func (t *fakeTarget) ModalChain() *dispatcher.Chain { return t.modal }

// recorder registers operators that log their calls.
type recorder struct {
	ops   *operator.Registry
	calls []string
	props []map[string]any
	evs   []event.Event
}

func newRecorder() *recorder {
	return &recorder{ops: operator.NewRegistry()}
}

func (r *recorder) add(id string, st operator.Status) *operator.Type {
	t := &operator.Type{
		ID: id,
		Invoke: func(_ *execctx.Context, op *operator.Operator, ev *event.Event) operator.Status {
			r.calls = append(r.calls, id)
			r.props = append(r.props, op.Properties)
			if ev != nil {
				r.evs = append(r.evs, *ev)
			}
			return st
		},
	}
	r.ops.MustRegister(t)
	return t
}

func newDispatcher(t *testing.T, kc *keymap.KeyConfig, r *recorder) *dispatcher.Dispatcher {
	t.Helper()
	if kc == nil {
		kc = keymap.NewKeyConfig("test")
	}
	d, err := dispatcher.New(kc, r.ops, dispatcher.DefaultConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return d
}

func keymapOf(triggers ...string) *keymap.Keymap {
	km := keymap.NewKeymap("test", screen.SpaceEmpty, screen.RegionAny)
	for i := 0; i+1 < len(triggers); i += 2 {
		km.Add(keymap.MustItem(triggers[i], triggers[i+1]))
	}
	return km
}

func press(t key.Type) *event.Event {
	return &event.Event{Type: t, Value: key.Press}
}

func TestNewRequiresKeyConfigAndOperators(t *testing.T) {
	if _, err := dispatcher.New(nil, operator.NewRegistry(), dispatcher.DefaultConfig()); err != dispatcher.ErrNilKeyConfig {
		t.Errorf("New(nil kc) error = %v", err)
	}
	if _, err := dispatcher.New(keymap.NewKeyConfig("x"), nil, dispatcher.DefaultConfig()); err != dispatcher.ErrNilOperators {
		t.Errorf("New(nil ops) error = %v", err)
	}
}

func TestFirstMatchWins(t *testing.T) {
	r := newRecorder()
	r.add("op.first", operator.Finished)
	r.add("op.second", operator.Finished)
	d := newDispatcher(t, nil, r)

	chain := dispatcher.NewChain()
	h := chain.AddKeymap(keymapOf("A", "op.first", "any+A", "op.second"))
	chain.AddKeymap(keymapOf("A", "op.second"))

	res := d.Dispatch(execctx.New(), newTarget(), chain, press(key.KeyA))

	if len(r.calls) != 1 || r.calls[0] != "op.first" {
		t.Fatalf("calls = %v, want [op.first]", r.calls)
	}
	if res.Action&dispatcher.ActionBreak == 0 || !res.Action.Handled() {
		t.Errorf("Action = %d, want break", res.Action)
	}
	if res.Operator != "op.first" || res.Handler != h.ID() || res.Kind != dispatcher.KindKeymap {
		t.Errorf("Result = %+v", res)
	}
	if res.Item == nil || res.Item.Operator != "op.first" || res.Keymap != "test" {
		t.Errorf("Result item = %v in %q", res.Item, res.Keymap)
	}
}

func TestNoMatchContinues(t *testing.T) {
	r := newRecorder()
	r.add("op", operator.Finished)
	d := newDispatcher(t, nil, r)

	chain := dispatcher.NewChain()
	chain.AddKeymap(keymapOf("B", "op"))

	res := d.Dispatch(execctx.New(), newTarget(), chain, press(key.KeyA))
	if res.Action != dispatcher.ActionContinue || res.Matched() {
		t.Errorf("Result = %+v, want continue", res)
	}
}

func TestPollFailureKeepsSearching(t *testing.T) {
	r := newRecorder()
	blocked := r.add("op.blocked", operator.Finished)
	blocked.Poll = func(*execctx.Context) bool { return false }
	r.add("op.next", operator.Finished)
	d := newDispatcher(t, nil, r)

	chain := dispatcher.NewChain()
	chain.AddKeymap(keymapOf("A", "op.blocked", "A", "op.next"))

	d.Dispatch(execctx.New(), newTarget(), chain, press(key.KeyA))
	if len(r.calls) != 1 || r.calls[0] != "op.next" {
		t.Errorf("calls = %v, want [op.next]", r.calls)
	}
}

func TestUnknownOperatorSkipped(t *testing.T) {
	r := newRecorder()
	r.add("op.known", operator.Finished)
	d := newDispatcher(t, nil, r)

	chain := dispatcher.NewChain()
	chain.AddKeymap(keymapOf("A", "op.missing", "A", "op.known"))

	d.Dispatch(execctx.New(), newTarget(), chain, press(key.KeyA))
	if len(r.calls) != 1 || r.calls[0] != "op.known" {
		t.Errorf("calls = %v", r.calls)
	}
}

func TestPassThrough(t *testing.T) {
	r := newRecorder()
	r.add("op.pass", operator.PassThrough)
	r.add("op.handled", operator.Finished|operator.PassThrough)
	r.add("op.last", operator.Finished)
	d := newDispatcher(t, nil, r)

	chain := dispatcher.NewChain()
	chain.AddKeymap(keymapOf("A", "op.pass", "A", "op.handled"))
	chain.AddKeymap(keymapOf("A", "op.last"))

	res := d.Dispatch(execctx.New(), newTarget(), chain, press(key.KeyA))
	want := []string{"op.pass", "op.handled", "op.last"}
	if len(r.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", r.calls, want)
	}
	for i := range want {
		if r.calls[i] != want[i] {
			t.Errorf("calls[%d] = %s, want %s", i, r.calls[i], want[i])
		}
	}
	if res.Action != dispatcher.ActionBreak|dispatcher.ActionHandled {
		t.Errorf("Action = %d", res.Action)
	}
}

func TestHandlerPoll(t *testing.T) {
	r := newRecorder()
	r.add("op", operator.Finished)
	d := newDispatcher(t, nil, r)

	chain := dispatcher.NewChain()
	h := chain.AddKeymap(keymapOf("A", "op"))
	h.Poll = func(_ *execctx.Context, ev *event.Event) bool { return ev.Position.X < 10 }

	ev := press(key.KeyA)
	ev.Position = mouse.Pos(50, 0)
	d.Dispatch(execctx.New(), newTarget(), chain, ev)
	if len(r.calls) != 0 {
		t.Errorf("handler outside its poll ran: %v", r.calls)
	}
}

func TestBlockingHandler(t *testing.T) {
	r := newRecorder()
	r.add("op", operator.Finished)
	d := newDispatcher(t, nil, r)

	chain := dispatcher.NewChain()
	ui := chain.AddUI(func(*execctx.Context, *event.Event) dispatcher.UIAction { return dispatcher.UIContinue })
	ui.Flags |= dispatcher.FlagBlocking
	chain.AddKeymap(keymapOf("A", "op"))

	res := d.Dispatch(execctx.New(), newTarget(), chain, press(key.KeyA))
	if len(r.calls) != 0 {
		t.Error("handler after a blocking handler ran")
	}
	if res.Action&dispatcher.ActionBreak == 0 {
		t.Error("blocking handler should break")
	}
}

func toolConfig() *keymap.KeyConfig {
	kc := keymap.NewKeyConfig("tools")
	for _, tk := range []struct{ name, op string }{{"Tool: Select", "op.select"}, {"Tool: Tweak", "op.tweak"}} {
		km := keymap.NewKeymap(tk.name, screen.SpaceView3D, screen.RegionWindow)
		km.Add(keymap.MustItem("LEFTMOUSE", tk.op))
		if err := kc.Add(km); err != nil {
			panic(err)
		}
	}
	return kc
}

func TestToolKeymapPrecedence(t *testing.T) {
	tests := []struct {
		name string
		tool screen.Tool
		want string
	}{
		{"active tool first", screen.Tool{Keymap: "Tool: Select", FallbackKeymap: "Tool: Tweak"}, "op.select"},
		{
			"highlighted gizmo swaps",
			screen.Tool{Keymap: "Tool: Select", FallbackKeymap: "Tool: Tweak", Gizmo: screen.GizmoState{Visible: true, Highlighted: true}},
			"op.tweak",
		},
		{
			"hidden gizmo keeps order",
			screen.Tool{Keymap: "Tool: Select", FallbackKeymap: "Tool: Tweak", Gizmo: screen.GizmoState{Highlighted: true}},
			"op.select",
		},
		{"unknown keymap skipped", screen.Tool{Keymap: "Tool: Missing", FallbackKeymap: "Tool: Tweak"}, "op.tweak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRecorder()
			r.add("op.select", operator.Finished)
			r.add("op.tweak", operator.Finished)
			d := newDispatcher(t, toolConfig(), r)

			area := screen.NewArea(screen.SpaceView3D, mouse.RectXYWH(0, 0, 100, 100))
			tool := tt.tool
			area.Tool = &tool
			ctx := execctx.New()
			ctx.SetLocation(uuid.New(), area, area.Region(screen.RegionWindow))

			chain := dispatcher.NewChain()
			chain.AddDynamicKeymap(nil)

			res := d.Dispatch(ctx, newTarget(), chain, press(key.LeftMouse))
			if len(r.calls) != 1 || r.calls[0] != tt.want {
				t.Errorf("calls = %v, want [%s]", r.calls, tt.want)
			}
			if res.Kind != dispatcher.KindDynamicKeymap {
				t.Errorf("Kind = %s", res.Kind)
			}
		})
	}
}

func TestDynamicKeymapWithoutArea(t *testing.T) {
	r := newRecorder()
	d := newDispatcher(t, toolConfig(), r)

	chain := dispatcher.NewChain()
	chain.AddDynamicKeymap(nil)
	res := d.Dispatch(execctx.New(), newTarget(), chain, press(key.LeftMouse))
	if res.Matched() {
		t.Error("no area means no tool keymaps")
	}
}

func TestDeferredRemoval(t *testing.T) {
	r := newRecorder()
	d := newDispatcher(t, nil, r)
	chain := dispatcher.NewChain()

	var second *dispatcher.UIHandler
	var visited []string
	var pendingDuringPass int

	first := chain.AddUI(func(*execctx.Context, *event.Event) dispatcher.UIAction {
		visited = append(visited, "first")
		chain.Remove(second.ID())
		pendingDuringPass = chain.Pending()
		return dispatcher.UIContinue
	})
	second = chain.AddUI(func(*execctx.Context, *event.Event) dispatcher.UIAction {
		visited = append(visited, "second")
		return dispatcher.UIContinue
	})
	chain.AddUI(func(*execctx.Context, *event.Event) dispatcher.UIAction {
		visited = append(visited, "third")
		chain.Remove(first.ID())
		return dispatcher.UIContinue
	})

	d.Dispatch(execctx.New(), newTarget(), chain, press(key.KeyA))

	if len(visited) != 2 || visited[0] != "first" || visited[1] != "third" {
		t.Errorf("visited = %v, want [first third]", visited)
	}
	if pendingDuringPass != 1 {
		t.Errorf("Pending() during pass = %d, want 1", pendingDuringPass)
	}
	if chain.Pending() != 0 {
		t.Errorf("Pending() after pass = %d, want 0", chain.Pending())
	}
	if chain.Len() != 1 {
		t.Errorf("Len() = %d, want 1", chain.Len())
	}
	if chain.Get(second.ID()) != nil || chain.Remove(second.ID()) {
		t.Error("removed handler still reachable")
	}
}

func TestUIBreak(t *testing.T) {
	r := newRecorder()
	r.add("op", operator.Finished)
	d := newDispatcher(t, nil, r)

	chain := dispatcher.NewChain()
	chain.AddUI(func(*execctx.Context, *event.Event) dispatcher.UIAction { return dispatcher.UIBreak })
	chain.AddKeymap(keymapOf("A", "op"))

	res := d.Dispatch(execctx.New(), newTarget(), chain, press(key.KeyA))
	if res.Kind != dispatcher.KindUI || len(r.calls) != 0 {
		t.Errorf("Result = %+v calls = %v", res, r.calls)
	}
}

func TestModalOperator(t *testing.T) {
	kc := keymap.NewKeyConfig("test")
	if err := kc.Add(keymap.DefaultViewPanModalKeymap()); err != nil {
		t.Fatal(err)
	}

	ops := operator.NewRegistry()
	var modalValues []string
	var modalArea *screen.Area
	ops.MustRegister(&operator.Type{
		ID:          "view.pan",
		ModalKeymap: keymap.KeymapViewPan,
		Invoke: func(*execctx.Context, *operator.Operator, *event.Event) operator.Status {
			return operator.RunningModal
		},
		Modal: func(ctx *execctx.Context, op *operator.Operator, ev *event.Event) operator.Status {
			modalArea = ctx.Area
			if v, ok := op.ModalValue(ev); ok {
				modalValues = append(modalValues, v)
				if v == keymap.ModalCancel {
					return operator.Cancelled
				}
			}
			return operator.RunningModal
		},
	})
	d, err := dispatcher.New(kc, ops, dispatcher.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	ctx := execctx.New()
	area := screen.NewArea(screen.SpaceView3D, mouse.RectXYWH(0, 0, 100, 100))
	ctx.SetLocation(uuid.New(), area, area.Regions[0])

	target := newTarget()
	chain := dispatcher.NewChain()
	chain.AddKeymap(keymapOf("MIDDLEMOUSE", "view.pan"))

	res := d.Dispatch(ctx, target, chain, press(key.MiddleMouse))
	if res.Status != operator.RunningModal || target.modal.Len() != 1 {
		t.Fatalf("operator should be running modal: %+v, modal len %d", res, target.modal.Len())
	}
	if !target.modal.HasModal() {
		t.Error("HasModal() = false")
	}

	ctx.ClearLocation()
	move := &event.Event{Type: key.MouseMove}
	res = d.Dispatch(ctx, target, target.modal, move)
	if res.Kind != dispatcher.KindOperator || res.Action&dispatcher.ActionBreak == 0 {
		t.Errorf("modal Result = %+v", res)
	}
	if modalArea != area {
		t.Error("modal callback should run in the area the operator started in")
	}
	if ctx.Area != nil {
		t.Error("location should be restored after the modal callback")
	}

	d.Dispatch(ctx, target, target.modal, press(key.KeyEsc))
	if len(modalValues) != 1 || modalValues[0] != keymap.ModalCancel {
		t.Errorf("modal values = %v", modalValues)
	}
	if target.modal.Len() != 0 || target.modal.HasModal() {
		t.Error("cancelled operator should leave the modal chain")
	}
}

func TestModalWithoutCallback(t *testing.T) {
	r := newRecorder()
	r.add("op.broken", operator.RunningModal)
	d := newDispatcher(t, nil, r)

	target := newTarget()
	chain := dispatcher.NewChain()
	chain.AddKeymap(keymapOf("A", "op.broken"))
	d.Dispatch(execctx.New(), target, chain, press(key.KeyA))
	if target.modal.Len() != 0 {
		t.Error("operator without modal callback must not be pushed")
	}
}

func clickEvents() (pressEv, releaseEv *event.Event) {
	info := event.PressInfo{Type: key.LeftMouse, Position: mouse.Pos(10, 10)}
	pressEv = &event.Event{Type: key.LeftMouse, Value: key.Press, Position: mouse.Pos(10, 10), PrevPress: info}
	releaseEv = &event.Event{
		Type:      key.LeftMouse,
		Value:     key.Release,
		Position:  mouse.Pos(11, 10),
		PrevType:  key.LeftMouse,
		PrevValue: key.Press,
		PrevPress: info,
	}
	return pressEv, releaseEv
}

func TestClickSynthesis(t *testing.T) {
	r := newRecorder()
	r.add("select.click", operator.Finished)
	d := newDispatcher(t, nil, r)
	ctx := execctx.New()
	target := newTarget()
	chain := dispatcher.NewChain()
	chain.AddKeymap(keymapOf("LEFTMOUSE:click", "select.click"))

	p, rel := clickEvents()
	d.Dispatch(ctx, target, chain, p)
	if !target.clicks.ClickArmed(key.LeftMouse) {
		t.Fatal("unhandled press should arm the click")
	}

	res := d.Dispatch(ctx, target, chain, rel)
	if len(r.calls) != 1 {
		t.Fatalf("calls = %v, want a click", r.calls)
	}
	if got := r.evs[0]; got.Value != key.Click || got.Position != mouse.Pos(10, 10) {
		t.Errorf("click event = %s at %v", got.Value, got.Position)
	}
	if res.Operator != "select.click" {
		t.Errorf("Result = %+v", res)
	}
	if rel.Value != key.Release || rel.Position != mouse.Pos(11, 10) {
		t.Error("the dispatched release must not be modified")
	}
}

func TestClickCancelledByDrag(t *testing.T) {
	r := newRecorder()
	r.add("select.click", operator.Finished)
	d := newDispatcher(t, nil, r)
	ctx := execctx.New()
	target := newTarget()
	chain := dispatcher.NewChain()
	chain.AddKeymap(keymapOf("LEFTMOUSE:click", "select.click"))

	p, rel := clickEvents()
	rel.Position = mouse.Pos(30, 10)
	d.Dispatch(ctx, target, chain, p)
	d.Dispatch(ctx, target, chain, rel)
	if len(r.calls) != 0 {
		t.Errorf("release beyond the drag threshold clicked: %v", r.calls)
	}
}

func TestHandledPressDoesNotClick(t *testing.T) {
	r := newRecorder()
	r.add("op.press", operator.Finished)
	r.add("select.click", operator.Finished)
	d := newDispatcher(t, nil, r)
	ctx := execctx.New()
	target := newTarget()
	chain := dispatcher.NewChain()
	chain.AddKeymap(keymapOf("LEFTMOUSE", "op.press", "LEFTMOUSE:click", "select.click"))

	p, rel := clickEvents()
	d.Dispatch(ctx, target, chain, p)
	d.Dispatch(ctx, target, chain, rel)
	if len(r.calls) != 1 || r.calls[0] != "op.press" {
		t.Errorf("calls = %v, want [op.press]", r.calls)
	}
}

func TestClickDrag(t *testing.T) {
	r := newRecorder()
	r.add("select.box", operator.Finished)
	d := newDispatcher(t, nil, r)
	ctx := execctx.New()
	target := newTarget()
	chain := dispatcher.NewChain()
	chain.AddKeymap(keymapOf("shift+LEFTMOUSE:click_drag", "select.box"))

	p, _ := clickEvents()
	p.Modifiers = key.ModShift
	p.PrevPress.Modifiers = key.ModShift
	d.Dispatch(ctx, target, chain, p)

	small := &event.Event{Type: key.MouseMove, Position: mouse.Pos(12, 10), PrevPress: p.PrevPress}
	d.Dispatch(ctx, target, chain, small)
	if len(r.calls) != 0 {
		t.Fatal("motion within the threshold must not drag")
	}

	// The drag uses the modifiers of the press, not of the motion.
	far := &event.Event{Type: key.MouseMove, Position: mouse.Pos(20, 10), PrevPress: p.PrevPress}
	d.Dispatch(ctx, target, chain, far)
	if len(r.calls) != 1 {
		t.Fatalf("calls = %v, want one drag", r.calls)
	}
	if got := r.evs[0]; got.Type != key.LeftMouse || got.Value != key.ClickDrag || got.Position != mouse.Pos(20, 10) {
		t.Errorf("drag event = %s %s at %v", got.Type, got.Value, got.Position)
	}

	farther := &event.Event{Type: key.MouseMove, Position: mouse.Pos(30, 10), PrevPress: p.PrevPress}
	d.Dispatch(ctx, target, chain, farther)
	if len(r.calls) != 1 {
		t.Error("a handled drag fires once")
	}
	if target.clicks.ClickArmed(key.LeftMouse) {
		t.Error("a drag disarms the click")
	}
}

func TestDoubleClickFallsBackToPress(t *testing.T) {
	r := newRecorder()
	r.add("op.press", operator.Finished)
	d := newDispatcher(t, nil, r)
	chain := dispatcher.NewChain()
	chain.AddKeymap(keymapOf("LEFTMOUSE", "op.press"))

	ev := &event.Event{
		Type:      key.LeftMouse,
		Value:     key.DoubleClick,
		PrevPress: event.PressInfo{Type: key.LeftMouse},
	}
	res := d.Dispatch(execctx.New(), newTarget(), chain, ev)
	if len(r.calls) != 1 || r.evs[0].Value != key.Press {
		t.Errorf("calls = %v", r.calls)
	}
	if res.Operator != "op.press" || ev.Value != key.DoubleClick {
		t.Errorf("Result = %+v, event value %s", res, ev.Value)
	}
}

func TestDoubleClickItemWins(t *testing.T) {
	r := newRecorder()
	r.add("op.press", operator.Finished)
	r.add("select.linked", operator.Finished)
	d := newDispatcher(t, nil, r)
	chain := dispatcher.NewChain()
	chain.AddKeymap(keymapOf("LEFTMOUSE:double_click", "select.linked", "LEFTMOUSE", "op.press"))

	ev := &event.Event{Type: key.LeftMouse, Value: key.DoubleClick, PrevPress: event.PressInfo{Type: key.LeftMouse}}
	d.Dispatch(execctx.New(), newTarget(), chain, ev)
	if len(r.calls) != 1 || r.calls[0] != "select.linked" {
		t.Errorf("calls = %v", r.calls)
	}
}

func TestDropbox(t *testing.T) {
	r := newRecorder()
	r.add("file.open", operator.Finished)
	d := newDispatcher(t, nil, r)

	chain := dispatcher.NewChain()
	chain.AddDropbox(
		&dispatcher.Dropbox{
			Name:     "text",
			Operator: "file.open",
			Poll: func(_ *execctx.Context, drag *event.DragData, _ *event.Event) bool {
				return drag.Kind == event.DragText
			},
		},
		&dispatcher.Dropbox{
			Name:     "paths",
			Operator: "file.open",
			Poll: func(_ *execctx.Context, drag *event.DragData, _ *event.Event) bool {
				return drag.Kind == event.DragPaths
			},
			Copy: func(drag *event.DragData, props map[string]any) {
				props["filepath"] = drag.Paths[0]
			},
		},
	)

	ev := &event.Event{
		Type:    key.Drop,
		Value:   key.Release,
		Payload: &event.DragData{Kind: event.DragPaths, Paths: []string{"/tmp/a.blend"}},
	}
	res := d.Dispatch(execctx.New(), newTarget(), chain, ev)
	if len(r.calls) != 1 || r.props[0]["filepath"] != "/tmp/a.blend" {
		t.Errorf("calls = %v props = %v", r.calls, r.props)
	}
	if res.Kind != dispatcher.KindDropbox || res.Action&dispatcher.ActionBreak == 0 {
		t.Errorf("Result = %+v", res)
	}

	// Other events pass dropbox handlers.
	if res := d.Dispatch(execctx.New(), newTarget(), chain, press(key.KeyA)); res.Matched() {
		t.Error("dropbox handled a key press")
	}
}

func TestPanicRecovery(t *testing.T) {
	ops := operator.NewRegistry()
	ops.MustRegister(&operator.Type{
		ID:   "op.panic",
		Exec: func(*execctx.Context, *operator.Operator) operator.Status { panic("boom") },
	})
	d, err := dispatcher.New(keymap.NewKeyConfig("t"), ops, dispatcher.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	chain := dispatcher.NewChain()
	chain.AddKeymap(keymapOf("A", "op.panic"))

	res := d.Dispatch(execctx.New(), newTarget(), chain, press(key.KeyA))
	if res.Status != operator.Cancelled {
		t.Errorf("Status = %s, want CANCELLED", res.Status)
	}
}

func TestMatch(t *testing.T) {
	r := newRecorder()
	blocked := r.add("op.blocked", operator.Finished)
	blocked.Poll = func(*execctx.Context) bool { return false }
	r.add("op.ok", operator.Finished)
	d := newDispatcher(t, nil, r)

	chain := dispatcher.NewChain()
	chain.AddUI(func(*execctx.Context, *event.Event) dispatcher.UIAction { return dispatcher.UIBreak })
	chain.AddKeymap(keymapOf("A", "op.blocked"))
	h := chain.AddKeymap(keymapOf("B", "op.ok", "A", "op.ok"))

	m, ok := d.Match(execctx.New(), chain, press(key.KeyA))
	if !ok {
		t.Fatal("Match() found nothing")
	}
	if m.Handler != h || m.Item.Operator != "op.ok" || m.Item.Type != key.KeyA {
		t.Errorf("Match() = %+v", m)
	}
	if len(r.calls) != 0 {
		t.Error("Match must not run operators")
	}
	if _, ok := d.Match(execctx.New(), chain, press(key.KeyC)); ok {
		t.Error("Match(C) should fail")
	}
}

func TestStatsHook(t *testing.T) {
	r := newRecorder()
	r.add("op.a", operator.Finished)
	r.add("op.b", operator.Finished)
	d := newDispatcher(t, nil, r)
	stats := dispatcher.NewStats(2)
	d.AddPostHook(stats)

	chain := dispatcher.NewChain()
	chain.AddKeymap(keymapOf("A", "op.a", "B", "op.b"))

	ctx := execctx.New()
	for _, k := range []key.Type{key.KeyA, key.KeyB, key.KeyA} {
		d.Dispatch(ctx, newTarget(), chain, press(k))
	}

	if stats.Total() != 3 || stats.Count("op.a") != 2 {
		t.Errorf("Total() = %d Count(op.a) = %d", stats.Total(), stats.Count("op.a"))
	}
	recent := stats.Recent()
	if len(recent) != 2 || recent[0].Operator != "op.a" || recent[1].Operator != "op.b" {
		t.Errorf("Recent() = %+v", recent)
	}
	stats.Reset()
	if stats.Total() != 0 || len(stats.Recent()) != 0 {
		t.Error("Reset() left records")
	}
}

func TestDispatchMetrics(t *testing.T) {
	r := newRecorder()
	r.add("op", operator.Finished)
	d := newDispatcher(t, nil, r)
	m := metrics.Noop()
	ctx := execctx.New(execctx.WithMetrics(m))

	chain := dispatcher.NewChain()
	chain.AddKeymap(keymapOf("A", "op"))
	d.Dispatch(ctx, newTarget(), chain, press(key.KeyA))
	d.Dispatch(ctx, newTarget(), chain, press(key.KeyB))

	snap := m.Snapshot()
	if snap.Matched != 1 || snap.Unmatched != 1 {
		t.Errorf("Snapshot() = %+v", snap)
	}
}
