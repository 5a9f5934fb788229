package script

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/wmevent/internal/dispatcher/execctx"
	"github.com/dshills/wmevent/internal/input/keymap"
	"github.com/dshills/wmevent/internal/input/mouse"
	"github.com/dshills/wmevent/internal/screen"
)

func view3DContext() *execctx.Context {
	ctx := execctx.New()
	area := screen.NewArea(screen.SpaceView3D, mouse.RectXYWH(0, 0, 100, 100))
	area.Tool = &screen.Tool{ID: "builtin.select_box"}
	ctx.SetLocation(uuid.New(), area, area.Region(screen.RegionWindow))
	return ctx
}

func TestCompilePoll(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	tests := []struct {
		expr string
		want bool
	}{
		{`ctx.space == "VIEW_3D"`, true},
		{`ctx.space == "TEXT_EDITOR"`, false},
		{`ctx.region == "WINDOW" and ctx.area ~= nil`, true},
		{`ctx.tool == "builtin.select_box"`, true},
		{`string.len(ctx.window) == 36`, true},
		{`ctx.data.mode == "edit"`, true},
		{`ctx.data.count > 2`, true},
		{`nil`, false},
		{`0`, true},
	}

	ctx := view3DContext()
	ctx.SetData("mode", "edit")
	ctx.SetData("count", 3)

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			poll, err := e.CompilePoll("test", tt.expr)
			if err != nil {
				t.Fatalf("CompilePoll() error = %v", err)
			}
			if got := poll(ctx); got != tt.want {
				t.Errorf("poll() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompilePollOutsideArea(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	poll, err := e.CompilePoll("test", `ctx.area == nil and ctx.space == ""`)
	if err != nil {
		t.Fatal(err)
	}
	if !poll(execctx.New()) {
		t.Error("poll outside an area should see no area")
	}
}

func TestCompileErrors(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	if _, err := e.CompilePoll("empty", "  "); !errors.Is(err, ErrEmptyExpression) {
		t.Errorf("empty expression error = %v", err)
	}
	if _, err := e.CompilePoll("broken", "ctx.space =="); !errors.Is(err, ErrCompile) {
		t.Errorf("syntax error = %v", err)
	}
}

func TestPollRuntimeErrorIsFalse(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	poll, err := e.CompilePoll("bad", `ctx.missing.field == 1`)
	if err != nil {
		t.Fatal(err)
	}
	if poll(view3DContext()) {
		t.Error("failing poll should evaluate to false")
	}
}

func TestPollTimeout(t *testing.T) {
	e := NewEngine(WithTimeout(20 * time.Millisecond))
	defer e.Close()

	_, err := e.Eval(execctx.New(), `(function() while true do end end)()`)
	if err == nil {
		t.Fatal("endless loop should time out")
	}

	// The state stays usable after a timeout.
	v, err := e.Eval(execctx.New(), `1 + 1`)
	if err != nil {
		t.Fatalf("Eval() after timeout error = %v", err)
	}
	if v != lua.LNumber(2) {
		t.Errorf("Eval() = %v, want 2", v)
	}
}

func TestSandbox(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	for _, expr := range []string{`io == nil`, `os == nil`, `require == nil`, `load == nil`, `dofile == nil`} {
		v, err := e.Eval(execctx.New(), expr)
		if err != nil {
			t.Fatalf("Eval(%q) error = %v", expr, err)
		}
		if v != lua.LTrue {
			t.Errorf("Eval(%q) = %v, want true", expr, v)
		}
	}
}

func TestClosedEngine(t *testing.T) {
	e := NewEngine()
	poll, err := e.CompilePoll("test", `true`)
	if err != nil {
		t.Fatal(err)
	}
	e.Close()
	if poll(execctx.New()) {
		t.Error("poll on a closed engine should be false")
	}
}

func TestEngineAsLoaderCompiler(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	src := "keymaps:\n  - name: Text\n    space: TEXT_EDITOR\n    poll: ctx.region == 'WINDOW'\n    items:\n      - trigger: TEXTINPUT\n        operator: text.insert\n"
	kc, err := keymap.NewLoader(keymap.WithPollCompiler(e)).Parse("text.yaml", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	km := kc.LookupName("Text")
	if km.Polls(view3DContext()) != true {
		t.Error("region poll should pass in a WINDOW region")
	}

	ctx := execctx.New()
	area := screen.NewArea(screen.SpaceText, mouse.RectXYWH(0, 0, 10, 10))
	header := screen.NewRegion(screen.RegionHeader, mouse.RectXYWH(0, 0, 10, 1))
	area.AddRegion(header)
	ctx.SetLocation(uuid.New(), area, header)
	if km.Polls(ctx) {
		t.Error("region poll should fail in the header")
	}
}
