package execctx_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/wmevent/internal/config"
	"github.com/dshills/wmevent/internal/dispatcher/execctx"
	"github.com/dshills/wmevent/internal/input/mouse"
	"github.com/dshills/wmevent/internal/screen"
)

func TestNew(t *testing.T) {
	ctx := execctx.New()

	if err := ctx.Validate(); err != nil {
		t.Fatalf("default context invalid: %v", err)
	}
	if ctx.Prefs.Input.DoubleClickTimeMS != 350 {
		t.Errorf("expected default double click time 350, got %d", ctx.Prefs.Input.DoubleClickTimeMS)
	}
	if ctx.Data == nil {
		t.Error("expected Data to be initialized")
	}
}

func TestClock(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	ctx := execctx.New(execctx.WithClock(func() time.Time { return fixed }))

	if got := ctx.Now(); !got.Equal(fixed) {
		t.Errorf("expected %v, got %v", fixed, got)
	}
}

func TestBreak(t *testing.T) {
	ctx := execctx.New()

	if ctx.TestBreak() {
		t.Fatal("break requested on a fresh context")
	}
	ctx.RequestBreak()
	if !ctx.TestBreak() {
		t.Error("expected break after RequestBreak")
	}
	// Testing does not consume the request.
	if !ctx.TestBreak() {
		t.Error("expected break to persist until cleared")
	}
	ctx.ClearBreak()
	if ctx.TestBreak() {
		t.Error("expected no break after ClearBreak")
	}
}

func TestLocation(t *testing.T) {
	ctx := execctx.New()
	if ctx.SpaceType() != screen.SpaceEmpty || ctx.RegionType() != screen.RegionAny {
		t.Error("expected empty location on a fresh context")
	}

	win := uuid.New()
	area := screen.NewArea(screen.SpaceView3D, mouse.RectXYWH(0, 0, 10, 10))
	ctx.SetLocation(win, area, area.Regions[0])

	if ctx.Window != win {
		t.Error("window not set")
	}
	if ctx.SpaceType() != screen.SpaceView3D {
		t.Errorf("expected VIEW_3D, got %q", ctx.SpaceType())
	}
	if ctx.RegionType() != screen.RegionWindow {
		t.Errorf("expected WINDOW, got %q", ctx.RegionType())
	}

	ctx.ClearLocation()
	if ctx.Area != nil || ctx.Region != nil {
		t.Error("expected area and region cleared")
	}
	if ctx.Window != win {
		t.Error("expected window kept")
	}
}

func TestSetPrefs(t *testing.T) {
	ctx := execctx.New()

	if err := ctx.SetPrefs(nil); !errors.Is(err, execctx.ErrMissingPrefs) {
		t.Errorf("expected ErrMissingPrefs, got %v", err)
	}

	bad := config.Default()
	bad.Input.DoubleClickTimeMS = -1
	if err := ctx.SetPrefs(bad); err == nil {
		t.Error("expected invalid prefs to be rejected")
	}

	good := config.Default()
	good.Input.DoubleClickTimeMS = 500
	if err := ctx.SetPrefs(good); err != nil {
		t.Fatalf("SetPrefs: %v", err)
	}
	if ctx.Prefs != good {
		t.Error("prefs not swapped")
	}
}

func TestData(t *testing.T) {
	ctx := execctx.New()
	ctx.Data = nil

	ctx.SetData("name", "grab")
	ctx.SetData("count", 3)

	if got := ctx.GetDataString("name"); got != "grab" {
		t.Errorf("expected 'grab', got %q", got)
	}
	if got := ctx.GetDataString("count"); got != "" {
		t.Errorf("expected empty string for non-string value, got %q", got)
	}
	if _, ok := ctx.GetData("missing"); ok {
		t.Error("expected missing key")
	}
}

func TestValidate(t *testing.T) {
	ctx := execctx.New()
	ctx.Log = nil
	if err := ctx.Validate(); !errors.Is(err, execctx.ErrMissingLogger) {
		t.Errorf("expected ErrMissingLogger, got %v", err)
	}
	ctx = execctx.New()
	ctx.Metrics = nil
	if err := ctx.Validate(); !errors.Is(err, execctx.ErrMissingMetrics) {
		t.Errorf("expected ErrMissingMetrics, got %v", err)
	}
}
