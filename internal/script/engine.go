package script

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/dshills/wmevent/internal/dispatcher/execctx"
	"github.com/dshills/wmevent/internal/input/keymap"
)

// Engine compiles and evaluates poll expressions. It implements
// keymap.PollCompiler.
type Engine struct {
	state *State
}

var _ keymap.PollCompiler = (*Engine)(nil)

// NewEngine creates an engine with its own sandboxed state.
func NewEngine(opts ...StateOption) *Engine {
	return &Engine{state: NewState(opts...)}
}

// Close releases the Lua state. Compiled polls evaluate to false afterwards.
func (e *Engine) Close() error {
	return e.state.Close()
}

// Compile parses expr into a function prototype. name is used in error
// messages and Lua stack traces.
func Compile(name, expr string) (*lua.FunctionProto, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyExpression, name)
	}
	chunk, err := parse.Parse(strings.NewReader("return "+expr), name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCompile, name, err)
	}
	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCompile, name, err)
	}
	return proto, nil
}

// CompilePoll compiles expr into a poll function.
func (e *Engine) CompilePoll(name, expr string) (keymap.PollFunc, error) {
	proto, err := Compile(name, expr)
	if err != nil {
		return nil, err
	}
	return func(ctx *execctx.Context) bool {
		v, err := e.eval(ctx, proto)
		if err != nil {
			ctx.Channel("wm.script").Warn("poll %s: %v", name, err)
			return false
		}
		return lua.LVAsBool(v)
	}, nil
}

// Eval compiles and evaluates expr once.
func (e *Engine) Eval(ctx *execctx.Context, expr string) (lua.LValue, error) {
	proto, err := Compile("eval", expr)
	if err != nil {
		return lua.LNil, err
	}
	return e.eval(ctx, proto)
}

func (e *Engine) eval(ctx *execctx.Context, proto *lua.FunctionProto) (lua.LValue, error) {
	if e.state.IsClosed() {
		return lua.LNil, ErrStateClosed
	}
	L := e.state.L
	e.state.SetGlobal("ctx", contextTable(L, ctx))
	defer e.state.SetGlobal("ctx", lua.LNil)
	return e.state.Call(L.NewFunctionFromProto(proto))
}

// contextTable exposes the handler location to Lua.
func contextTable(L *lua.LState, ctx *execctx.Context) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("space", lua.LString(ctx.SpaceType()))
	t.RawSetString("region", lua.LString(ctx.RegionType()))
	t.RawSetString("window", lua.LString(ctx.Window.String()))
	if ctx.Area != nil {
		t.RawSetString("area", lua.LString(ctx.Area.ID.String()))
		if ctx.Area.Tool != nil {
			t.RawSetString("tool", lua.LString(ctx.Area.Tool.ID))
		}
	}

	data := L.NewTable()
	for k, v := range ctx.Data {
		if lv, ok := toLua(v); ok {
			data.RawSetString(k, lv)
		}
	}
	t.RawSetString("data", data)
	return t
}

func toLua(v any) (lua.LValue, bool) {
	switch v := v.(type) {
	case string:
		return lua.LString(v), true
	case bool:
		return lua.LBool(v), true
	case int:
		return lua.LNumber(v), true
	case int64:
		return lua.LNumber(v), true
	case float64:
		return lua.LNumber(v), true
	case fmt.Stringer:
		return lua.LString(v.String()), true
	}
	return lua.LNil, false
}
