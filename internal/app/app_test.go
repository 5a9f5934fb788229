package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/input/keymap"
	"github.com/dshills/wmevent/internal/input/mouse"
	"github.com/dshills/wmevent/internal/platform"
	"github.com/dshills/wmevent/internal/screen"
)

// driver feeds platform events with increasing timestamps and steps the
// manager after each one.
type driver struct {
	t   *testing.T
	app *Application
	now time.Time
}

func newDriver(t *testing.T, opts Options) *driver {
	t.Helper()
	app, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(app.Shutdown)
	return &driver{t: t, app: app, now: time.Unix(1_700_000_000, 0)}
}

func (d *driver) header() platform.Header {
	d.now = d.now.Add(20 * time.Millisecond)
	return platform.Header{Time: d.now}
}

func (d *driver) send(ev platform.Event) {
	d.app.manager.HandleRaw(d.app.window.ID(), ev)
	d.app.step(d.now)
}

func (d *driver) move(x, y int) {
	d.send(&platform.CursorMove{Header: d.header(), Position: mouse.Position{X: x, Y: y}})
}

func (d *driver) tap(code platform.KeyCode, text string) {
	var b []byte
	if text != "" {
		b = []byte(text)
	}
	d.send(&platform.Key{Header: d.header(), Code: code, Down: true, Text: b})
	d.send(&platform.Key{Header: d.header(), Code: code})
}

func (d *driver) body() string {
	return d.app.scene.get(PathText, "body").String()
}

func TestNewDefaults(t *testing.T) {
	d := newDriver(t, Options{})
	app := d.app

	require.NotNil(t, app.Manager())
	require.NotNil(t, app.Window())
	assert.Nil(t, app.Journal())
	assert.False(t, app.IsRunning())

	w, h := app.Window().Size()
	assert.Equal(t, defaultWidth, w)
	assert.Equal(t, defaultHeight, h)

	assert.Equal(t, mouse.RectXYWH(0, 0, 40, 23), app.layout.view.Rect)
	assert.Equal(t, mouse.RectXYWH(40, 0, 40, 23), app.layout.text.Rect)
	assert.Equal(t, mouse.RectXYWH(0, 0, 40, 1), app.layout.view.Region(screen.RegionHeader).Rect)

	assert.NotNil(t, app.Manager().KeyConfig().LookupName(keymap.KeymapView3D))
	assert.Len(t, app.keymapHandles, 4)
	assert.Equal(t, SceneType, app.Scene().Type)
}

func TestTypingInsertsText(t *testing.T) {
	d := newDriver(t, Options{})
	d.move(50, 5)

	d.tap(platform.CodeH, "h")
	d.tap(platform.CodeI, "i")
	assert.Equal(t, "hi", d.body())

	d.tap(platform.CodeBackspace, "")
	assert.Equal(t, "h", d.body())
}

func TestTypingOutsideTextIsIgnored(t *testing.T) {
	d := newDriver(t, Options{})
	d.move(5, 5)

	d.tap(platform.CodeH, "h")
	assert.Empty(t, d.body())
}

func TestSelectAllUpdatesStatus(t *testing.T) {
	d := newDriver(t, Options{})
	d.move(5, 5)

	d.tap(platform.CodeA, "a")
	assert.EqualValues(t, 2, d.app.scene.get(PathSelection, "count").Int())
	assert.Equal(t, "2 selected", d.app.status.message)

	d.send(&platform.Key{Header: d.header(), Code: platform.CodeLeftAlt, Down: true})
	d.tap(platform.CodeA, "")
	assert.EqualValues(t, 0, d.app.scene.get(PathSelection, "count").Int())
}

func TestWheelZooms(t *testing.T) {
	d := newDriver(t, Options{})
	d.move(5, 5)

	d.send(&platform.Wheel{Header: d.header(), Axis: platform.WheelVertical, Steps: 1})
	assert.InDelta(t, zoomStep, d.app.scene.get(PathView, "zoom").Float(), 1e-9)
}

func TestDropInsertsText(t *testing.T) {
	d := newDriver(t, Options{})

	d.send(&platform.Drop{
		Header:   d.header(),
		Position: mouse.Position{X: 60, Y: 10},
		Data:     event.DragData{Kind: event.DragText, Text: "pasted"},
	})
	assert.Equal(t, "pasted", d.body())

	d.send(&platform.Drop{
		Header:   d.header(),
		Position: mouse.Position{X: 60, Y: 10},
		Data:     event.DragData{Kind: event.DragPaths, Paths: []string{"/a", "/b"}},
	})
	assert.Equal(t, "pasted/a\n/b", d.body())
}

func TestGizmoHoverSwapsToolKeymap(t *testing.T) {
	d := newDriver(t, Options{})
	tool := d.app.layout.view.Tool

	d.move(5, 5)
	assert.False(t, tool.Gizmo.Highlighted)
	assert.Equal(t, []string{keymap.KeymapToolSelect, keymap.KeymapToolTweak}, d.app.layout.view.ToolKeymaps())

	g := d.app.gizmoRect()
	d.move(g.Min.X, g.Min.Y)
	assert.True(t, tool.Gizmo.Highlighted)
	assert.Equal(t, []string{keymap.KeymapToolTweak, keymap.KeymapToolSelect}, d.app.layout.view.ToolKeymaps())
}

func TestReloadSceneKeepsPersistentSubscriptions(t *testing.T) {
	d := newDriver(t, Options{})
	app := d.app
	old := app.Scene().ID

	raw := []byte(`{
  "view": {"_type": "View", "zoom": 2, "pan_x": 0, "pan_y": 0},
  "selection": {"_type": "Selection", "count": 0, "mode": "SET", "last": ""},
  "text": {"_type": "Text", "body": "loaded"},
  "ruler": {"_type": "Ruler", "length": 0},
  "objects": {
    "cube": {"_type": "Object", "name": "Cube", "x": 1, "y": 1, "selected": false}
  }
}`)
	require.NoError(t, app.ReloadScene(raw))
	assert.NotEqual(t, old, app.Scene().ID)
	assert.Equal(t, "scene reloaded", app.status.message)
	assert.Equal(t, "loaded", d.body())

	require.NoError(t, app.scene.selectAll(true))
	assert.Equal(t, "1 selected", app.status.message)
}

func TestKeymapChangeReinstallsHandlers(t *testing.T) {
	d := newDriver(t, Options{})
	app := d.app
	before := app.keymapHandles[0]

	require.NoError(t, app.manager.SetKeyConfig(keymap.DefaultKeyConfig()))
	assert.Len(t, app.keymapHandles, 4)
	assert.NotEqual(t, before, app.keymapHandles[0])
	assert.Equal(t, "keymaps reloaded", app.status.message)

	// Still exactly one keymap handler per binding.
	d.move(50, 5)
	d.tap(platform.CodeX, "x")
	assert.Equal(t, "x", d.body())
}

func TestJournalReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	rec := newDriver(t, Options{JournalPath: path, Session: "typing"})
	rec.move(50, 5)
	rec.tap(platform.CodeO, "o")
	rec.tap(platform.CodeK, "k")
	require.Equal(t, "ok", rec.body())
	session := rec.app.Recorder().Session()
	assert.Positive(t, rec.app.Recorder().Count())
	rec.app.Shutdown()

	play := newDriver(t, Options{JournalPath: path, Session: "replay"})
	sessions, err := play.app.Sessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "typing", sessions[0].Name)

	n, err := play.app.Replay(context.Background(), session)
	require.NoError(t, err)
	assert.Positive(t, n)
	assert.Equal(t, "ok", play.body())
}

func TestReplayIsTraced(t *testing.T) {
	spans := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	path := filepath.Join(t.TempDir(), "journal.db")
	rec := newDriver(t, Options{JournalPath: path})
	rec.move(50, 5)
	rec.tap(platform.CodeX, "x")
	session := rec.app.Recorder().Session()
	rec.app.Shutdown()

	play := newDriver(t, Options{JournalPath: path})
	n, err := play.app.Replay(context.Background(), session)
	require.NoError(t, err)

	ended := spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "wm.replay", ended[0].Name())
	assert.Contains(t, ended[0].Attributes(), attribute.Int("replay.events", n))
	assert.Contains(t, ended[0].Attributes(), attribute.String("session.id", session.String()))
}

func TestReplayWithoutJournal(t *testing.T) {
	d := newDriver(t, Options{})
	_, err := d.app.Replay(context.Background(), d.app.Window().ID())
	assert.ErrorIs(t, err, ErrNoJournal)
	_, err = d.app.Sessions(context.Background())
	assert.ErrorIs(t, err, ErrNoJournal)
}

func TestCounters(t *testing.T) {
	d := newDriver(t, Options{})
	d.move(50, 5)
	d.tap(platform.CodeZ, "z")

	n, err := d.app.Counter(context.Background(), "wm.events.queued")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(3))
}

func TestRunRequiresScreen(t *testing.T) {
	d := newDriver(t, Options{})
	assert.ErrorIs(t, d.app.Run(context.Background()), ErrNoScreen)
}

func TestRunStopsOnShutdown(t *testing.T) {
	d := newDriver(t, Options{})
	scr := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, d.app.SetScreen(scr))

	errc := make(chan error, 1)
	go func() { errc <- d.app.Run(context.Background()) }()
	require.Eventually(t, d.app.IsRunning, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, d.app.SetScreen(scr), ErrAlreadyRunning)

	d.app.Shutdown()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
	assert.False(t, d.app.IsRunning())
}

func TestRunStopsOnContext(t *testing.T) {
	d := newDriver(t, Options{})
	require.NoError(t, d.app.SetScreen(tcell.NewSimulationScreen("UTF-8")))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.NoError(t, d.app.Run(ctx))
}

func TestLayout(t *testing.T) {
	view := screen.NewArea(screen.SpaceView3D, mouse.Rect{})
	view.AddRegion(screen.NewRegion(screen.RegionHeader, mouse.Rect{}))
	text := screen.NewArea(screen.SpaceText, mouse.Rect{})
	l := layout{view: view, text: text}

	l.resize(100, 31)
	assert.Equal(t, mouse.RectXYWH(0, 0, 50, 30), view.Rect)
	assert.Equal(t, mouse.RectXYWH(50, 0, 50, 30), text.Rect)
	assert.Equal(t, text.Rect, text.Region(screen.RegionWindow).Rect)

	l.toggleMaximize(text)
	assert.Equal(t, mouse.RectXYWH(0, 0, 100, 30), text.Rect)
	assert.Equal(t, 0, view.Rect.Width())

	l.toggleMaximize(text)
	assert.Equal(t, mouse.RectXYWH(0, 0, 50, 30), view.Rect)

	assert.Same(t, view, l.Active())
	assert.Same(t, text, l.cycle())
	assert.Same(t, view, l.cycle())
}

func TestDeleteGrapheme(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"abc", "ab"},
		{"a", ""},
		{"", ""},
		{"é", ""},
		{"x🇫🇷", "x"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, deleteGrapheme(tt.in), "deleteGrapheme(%q)", tt.in)
	}
}

func TestDeleteWord(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello world", "hello "},
		{"hello world  ", "hello "},
		{"word", ""},
		{"a\nb", "a\n"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, deleteWord(tt.in), "deleteWord(%q)", tt.in)
	}
}

func TestIsQuit(t *testing.T) {
	assert.True(t, IsQuit(ErrQuit))
	assert.False(t, IsQuit(ErrNoScreen))
}

func TestSearchRunsBestMatch(t *testing.T) {
	d := newDriver(t, Options{})
	app := d.app
	d.move(5, 5)

	d.tap(platform.CodeF1+2, "")
	require.True(t, app.search.open)
	assert.Equal(t, 1, app.window.ModalChain().Len())

	for _, r := range "sel all" {
		code := platform.CodeSpace
		if r != ' ' {
			code = platform.CodeA + platform.KeyCode(r-'a')
		}
		d.tap(code, string(r))
	}
	assert.EqualValues(t, 0, app.scene.get(PathSelection, "count").Int(), "typed keys stay in the menu")
	require.NotEmpty(t, app.search.results)
	assert.Equal(t, "select.all", app.search.results[0].Key)

	d.tap(platform.CodeEnter, "")
	assert.False(t, app.search.open)
	assert.Zero(t, app.window.ModalChain().Len())
	assert.EqualValues(t, 2, app.scene.get(PathSelection, "count").Int())
	assert.Equal(t, []string{"select.all"}, app.search.recent)
}

func TestSearchEscapeCloses(t *testing.T) {
	d := newDriver(t, Options{})
	d.move(5, 5)

	d.tap(platform.CodeF1+2, "")
	d.tap(platform.CodeX, "x")
	assert.Equal(t, "x", d.app.search.query)
	d.tap(platform.CodeBackspace, "")
	assert.Empty(t, d.app.search.query)

	d.tap(platform.CodeEsc, "")
	assert.False(t, d.app.search.open)
	assert.Zero(t, d.app.window.ModalChain().Len())
	assert.Empty(t, d.app.status.message)
}

func TestSearchCandidatesPutRecentFirst(t *testing.T) {
	d := newDriver(t, Options{})
	s := d.app.search
	s.remember("view.zoom")
	s.remember("text.insert")
	s.remember("view.zoom")

	cands := s.candidates()
	require.GreaterOrEqual(t, len(cands), 2)
	assert.Equal(t, "view.zoom", cands[0].Key)
	assert.Equal(t, "text.insert", cands[1].Key)
	for _, c := range cands {
		assert.NotEqual(t, "wm.search_operator", c.Key)
	}
}

func TestCursorHint(t *testing.T) {
	d := newDriver(t, Options{})
	hint := d.app.hint

	d.move(5, 18)
	assert.Equal(t, "Select", hint.Text(0, hintPress))
	assert.Equal(t, "Box Select", hint.Text(0, hintDrag))
	assert.Equal(t, "Pan View", hint.Text(1, hintPress))
	assert.Empty(t, hint.Text(2, hintPress))
	assert.Contains(t, d.app.status.String(), "LMB Select, drag Box Select  MMB Pan View")
	lookups := hint.lookups

	d.move(6, 19)
	assert.Equal(t, lookups, hint.lookups, "same space, region, tool and modifiers")

	d.send(&platform.Key{Header: d.header(), Code: platform.CodeLeftShift, Down: true})
	assert.Equal(t, lookups+1, hint.lookups, "modifier change")
	d.send(&platform.Key{Header: d.header(), Code: platform.CodeLeftShift})
	assert.Equal(t, lookups+2, hint.lookups)

	g := d.app.gizmoRect()
	d.move(g.Min.X, g.Min.Y)
	assert.Equal(t, "Move", hint.Text(0, hintDrag), "highlighted gizmo puts the tweak keymap first")

	d.move(50, 5)
	assert.Empty(t, hint.String())
	assert.NotContains(t, d.app.status.String(), "LMB")
}

func TestCursorHintRefreshesOnKeymapChange(t *testing.T) {
	d := newDriver(t, Options{})
	d.move(5, 18)
	lookups := d.app.hint.lookups

	require.NoError(t, d.app.manager.SetKeyConfig(keymap.DefaultKeyConfig()))
	d.app.step(d.now)
	assert.Equal(t, lookups+1, d.app.hint.lookups)
	assert.Equal(t, "Box Select", d.app.hint.Text(0, hintDrag))
}
