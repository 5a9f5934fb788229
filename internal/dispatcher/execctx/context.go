// Package execctx provides the context threaded through event handling:
// preferences, clock, logging and metrics, and the state that would
// otherwise be process wide (the break request and the middle mouse
// emulation latch).
package execctx

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/wmevent/internal/config"
	"github.com/dshills/wmevent/internal/input/state"
	"github.com/dshills/wmevent/internal/metrics"
	"github.com/dshills/wmevent/internal/screen"
	"github.com/dshills/wmevent/internal/wmlog"
)

// Context is the execution context of the event pipeline. It is owned by
// the main loop and not safe for concurrent use.
type Context struct {
	// Prefs is read only to the pipeline. Swap it with SetPrefs.
	Prefs *config.Prefs

	Log     *wmlog.Logger
	Metrics *metrics.Metrics

	// Emulator holds the two-button mouse latch shared by all windows.
	Emulator state.Emulator

	// Window, Area and Region locate the handler being run.
	Window uuid.UUID
	Area   *screen.Area
	Region *screen.Region

	clock          func() time.Time
	breakRequested bool

	// Data holds handler-specific context data.
	Data map[string]any
}

// Option configures a Context.
type Option func(*Context)

// WithPrefs sets the preferences.
func WithPrefs(p *config.Prefs) Option {
	return func(c *Context) { c.Prefs = p }
}

// WithLogger sets the logger.
func WithLogger(l *wmlog.Logger) Option {
	return func(c *Context) { c.Log = l }
}

// WithMetrics sets the metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Context) { c.Metrics = m }
}

// WithClock replaces time.Now, used by tests and replay.
func WithClock(now func() time.Time) Option {
	return func(c *Context) { c.clock = now }
}

// New creates a context with default preferences, a null logger and noop
// metrics unless options say otherwise.
func New(opts ...Option) *Context {
	c := &Context{
		Prefs:   config.Default(),
		Log:     wmlog.Null(),
		Metrics: metrics.Noop(),
		clock:   time.Now,
		Data:    make(map[string]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Now returns the current time from the context clock.
func (c *Context) Now() time.Time {
	return c.clock()
}

// SetPrefs swaps in new preferences.
func (c *Context) SetPrefs(p *config.Prefs) error {
	if p == nil {
		return ErrMissingPrefs
	}
	if err := p.Validate(); err != nil {
		return err
	}
	c.Prefs = p
	return nil
}

// Channel returns the logger of a channel.
func (c *Context) Channel(name string) *wmlog.Logger {
	return c.Log.Channel(name)
}

// RequestBreak asks long running loops to stop.
func (c *Context) RequestBreak() {
	c.breakRequested = true
}

// TestBreak reports whether a break was requested.
func (c *Context) TestBreak() bool {
	return c.breakRequested
}

// ClearBreak resets the break request.
func (c *Context) ClearBreak() {
	c.breakRequested = false
}

// SetLocation sets the window, area and region handlers run in.
func (c *Context) SetLocation(win uuid.UUID, area *screen.Area, region *screen.Region) {
	c.Window = win
	c.Area = area
	c.Region = region
}

// ClearLocation forgets the area and region, keeping the window.
func (c *Context) ClearLocation() {
	c.Area = nil
	c.Region = nil
}

// SpaceType returns the space type of the current area.
func (c *Context) SpaceType() screen.SpaceType {
	if c.Area == nil {
		return screen.SpaceEmpty
	}
	return c.Area.Space
}

// RegionType returns the type of the current region.
func (c *Context) RegionType() screen.RegionType {
	if c.Region == nil {
		return screen.RegionAny
	}
	return c.Region.Type
}

// SetData sets a context data value.
func (c *Context) SetData(key string, value any) {
	if c.Data == nil {
		c.Data = make(map[string]any)
	}
	c.Data[key] = value
}

// GetData retrieves a context data value.
func (c *Context) GetData(key string) (any, bool) {
	if c.Data == nil {
		return nil, false
	}
	v, ok := c.Data[key]
	return v, ok
}

// GetDataString retrieves a string value from context data.
func (c *Context) GetDataString(key string) string {
	if v, ok := c.GetData(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Validate checks that the context has what the pipeline needs.
func (c *Context) Validate() error {
	if c.Prefs == nil {
		return ErrMissingPrefs
	}
	if c.Log == nil {
		return ErrMissingLogger
	}
	if c.Metrics == nil {
		return ErrMissingMetrics
	}
	return nil
}
