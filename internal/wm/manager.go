package wm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/wmevent/internal/config"
	"github.com/dshills/wmevent/internal/dispatcher"
	"github.com/dshills/wmevent/internal/dispatcher/execctx"
	"github.com/dshills/wmevent/internal/dispatcher/operator"
	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/input/keymap"
	"github.com/dshills/wmevent/internal/input/mouse"
	"github.com/dshills/wmevent/internal/input/normalize"
	"github.com/dshills/wmevent/internal/msgbus"
	"github.com/dshills/wmevent/internal/platform"
	"github.com/dshills/wmevent/internal/rna"
	"github.com/dshills/wmevent/internal/wmlog"
)

// Recorder receives every event after it was handled.
type Recorder interface {
	Record(ctx context.Context, window uuid.UUID, ev *event.Event) error
}

// Manager owns the windows and runs the main loop step.
type Manager struct {
	ctx        *execctx.Context
	dispatcher *dispatcher.Dispatcher
	normalizer *normalize.Normalizer
	bus        *msgbus.Bus
	store      *rna.Store
	timers     Timers

	windows []*Window
	active  *Window

	recorder  Recorder
	recordCtx context.Context
	quit      bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithRecorder records every handled event.
func WithRecorder(ctx context.Context, r Recorder) Option {
	return func(m *Manager) {
		m.recorder = r
		m.recordCtx = ctx
	}
}

// WithDispatcherConfig replaces the dispatcher configuration.
func WithDispatcherConfig(cfg dispatcher.Config) Option {
	return func(m *Manager) {
		d, err := dispatcher.New(m.dispatcher.KeyConfig(), m.dispatcher.Operators(), cfg)
		if err == nil {
			m.dispatcher = d
		}
	}
}

// New creates a manager resolving keymaps in kc and operators in ops.
func New(ctx *execctx.Context, kc *keymap.KeyConfig, ops *operator.Registry, opts ...Option) (*Manager, error) {
	if ctx == nil {
		ctx = execctx.New()
	}
	d, err := dispatcher.New(kc, ops, dispatcher.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("create dispatcher: %w", err)
	}

	m := &Manager{
		ctx:        ctx,
		dispatcher: d,
		store:      rna.NewStore(),
		recordCtx:  context.Background(),
	}
	m.bus = msgbus.New(
		msgbus.WithResolver(m.store),
		msgbus.WithLogger(ctx.Log),
		msgbus.WithMetrics(ctx.Metrics),
	)
	m.store.OnChange(m.bus.PublishProperty)
	m.normalizer = normalize.New(m.findWindow)

	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Context returns the execution context.
func (m *Manager) Context() *execctx.Context { return m.ctx }

// Dispatcher returns the dispatcher.
func (m *Manager) Dispatcher() *dispatcher.Dispatcher { return m.dispatcher }

// Bus returns the message bus.
func (m *Manager) Bus() *msgbus.Bus { return m.bus }

// Store returns the property documents.
func (m *Manager) Store() *rna.Store { return m.store }

// Timers returns the window timers.
func (m *Manager) Timers() *Timers { return &m.timers }

// KeyConfig returns the key configuration.
func (m *Manager) KeyConfig() *keymap.KeyConfig { return m.dispatcher.KeyConfig() }

// Operators returns the operator registry.
func (m *Manager) Operators() *operator.Registry { return m.dispatcher.Operators() }

// Quit asks the main loop to stop after the current event.
func (m *Manager) Quit() { m.quit = true }

// Quitting reports whether Quit was called.
func (m *Manager) Quitting() bool { return m.quit }

// OpenWindow adds a window with its client area at origin on the desktop.
func (m *Manager) OpenWindow(origin mouse.Position, width, height int) (*Window, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	w := newWindow(origin, width, height)
	m.windows = append(m.windows, w)
	if m.active == nil {
		m.active = w
	}
	m.ctx.Channel(wmlog.ChannelEvents).Debug("window %s opened at (%d,%d) %dx%d", w.id, origin.X, origin.Y, width, height)
	m.bus.PublishStatic(TopicWindowOpen)
	return w, nil
}

// Window returns a window by ID.
func (m *Manager) Window(id uuid.UUID) (*Window, bool) {
	for _, w := range m.windows {
		if w.id == id {
			return w, true
		}
	}
	return nil, false
}

// Windows returns the open windows in creation order.
func (m *Manager) Windows() []*Window {
	return append([]*Window(nil), m.windows...)
}

// Active returns the window that last received input, or the first window.
func (m *Manager) Active() *Window { return m.active }

// CloseWindow cancels the modal operators of a window, drops its handlers,
// timers and bus subscriptions, and removes it.
func (m *Manager) CloseWindow(id uuid.UUID) error {
	idx := -1
	for i, w := range m.windows {
		if w.id == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("close %s: %w", id, ErrWindowNotFound)
	}
	w := m.windows[idx]
	m.bus.PublishStatic(TopicWindowClose)

	m.ctx.SetLocation(w.id, nil, nil)
	for _, c := range w.chains() {
		c.Clear(m.ctx)
	}
	m.ctx.ClearLocation()
	m.timers.RemoveWindow(w.id)
	m.bus.ClearByOwner(w.id)
	w.queue.Clear()
	w.closed = true

	m.windows = append(m.windows[:idx], m.windows[idx+1:]...)
	if m.active == w {
		m.active = nil
		if len(m.windows) > 0 {
			m.active = m.windows[0]
		}
	}
	return nil
}

// findWindow returns the window under a desktop position. Later windows
// are on top.
func (m *Manager) findWindow(p mouse.Position) normalize.Window {
	for i := len(m.windows) - 1; i >= 0; i-- {
		if m.windows[i].ContainsDesktop(p) {
			return m.windows[i]
		}
	}
	return nil
}

// HandleRaw normalizes a platform event for a window into its queue.
// Events for unknown windows are dropped.
func (m *Manager) HandleRaw(window uuid.UUID, raw platform.Event) {
	w, ok := m.Window(window)
	if !ok {
		m.ctx.Channel(wmlog.ChannelEvents).Debug("dropping %T for unknown window %s", raw, window)
		return
	}
	m.active = w
	m.normalizer.Add(m.ctx, w, raw)
}

// AddTimer starts a timer firing into a window.
func (m *Manager) AddTimer(window uuid.UUID, step time.Duration) (*Timer, error) {
	if _, ok := m.Window(window); !ok {
		return nil, fmt.Errorf("add timer: %w", ErrWindowNotFound)
	}
	return m.timers.Add(window, step, m.ctx.Now()), nil
}

// RemoveTimer stops a timer.
func (m *Manager) RemoveTimer(t *Timer) bool {
	return m.timers.Remove(t)
}

// Step runs one iteration of the main loop: timers, handlers, notifiers.
// It returns the number of events handled.
func (m *Manager) Step(now time.Time) int {
	m.ProcessTimers(now)
	n := m.DoHandlers()
	m.DoNotifiers()
	return n
}

// ProcessTimers queues a Timer event for every timer due at now.
func (m *Manager) ProcessTimers(now time.Time) {
	m.timers.Process(now, func(t *Timer, data event.TimerData) {
		w, ok := m.Window(t.Window)
		if !ok {
			m.timers.Remove(t)
			return
		}
		m.normalizer.Add(m.ctx, w, &platform.Timer{
			Header: platform.Header{Time: now},
			Data:   data,
		})
	})
}

// DoHandlers drains every window queue through the handler tiers and
// returns the number of events handled.
func (m *Manager) DoHandlers() int {
	n := 0
	for _, w := range m.Windows() {
		if w.addMouseMove && !w.closed {
			w.queueMouseMove()
		}
		for !w.closed && !m.quit {
			ev := w.queue.PopFront()
			if ev == nil {
				break
			}
			m.handleEvent(w, ev)
			n++
			w.lastHandled = ev
			m.record(w, ev)
			if w.addMouseMove {
				w.queueMouseMove()
			}
		}
		if m.quit {
			break
		}
	}
	return n
}

// handleEvent offers ev to the modal chain, the region under the cursor,
// its area and the window chain, stopping at the first tier that breaks.
func (m *Manager) handleEvent(w *Window, ev *event.Event) dispatcher.Result {
	ctx := m.ctx
	d := m.dispatcher
	defer ctx.ClearLocation()

	ctx.SetLocation(w.id, nil, nil)
	res := d.Dispatch(ctx, w, w.modal, ev)
	if res.Action&dispatcher.ActionBreak != 0 {
		return res
	}

	if area := w.Screen.AreaAt(ev.Position); area != nil {
		if region := area.RegionAt(ev.Position); region != nil {
			if c, ok := w.regions[region.ID]; ok {
				ctx.SetLocation(w.id, area, region)
				res = d.Dispatch(ctx, w, c, ev)
				if res.Action&dispatcher.ActionBreak != 0 {
					return res
				}
			}
		}
		if c, ok := w.areas[area.ID]; ok {
			ctx.SetLocation(w.id, area, nil)
			res = d.Dispatch(ctx, w, c, ev)
			if res.Action&dispatcher.ActionBreak != 0 {
				return res
			}
		}
	}

	ctx.SetLocation(w.id, nil, nil)
	return d.Dispatch(ctx, w, w.handlers, ev)
}

func (m *Manager) record(w *Window, ev *event.Event) {
	if m.recorder == nil {
		return
	}
	if err := m.recorder.Record(m.recordCtx, w.id, ev); err != nil {
		m.ctx.Channel(wmlog.ChannelJournal).Warn("record %s: %v", ev.Type, err)
	}
}

// DoNotifiers publishes a draw message for windows that asked for a redraw
// and delivers the tagged bus messages.
func (m *Manager) DoNotifiers() int {
	for _, w := range m.windows {
		if w.needsRedraw {
			w.needsRedraw = false
			m.bus.PublishStatic(TopicWindowDraw)
		}
	}
	if m.bus.TagCount() == 0 {
		return 0
	}
	return m.bus.Handle()
}

// ApplyPrefs swaps in new preferences and announces them on the bus.
func (m *Manager) ApplyPrefs(p *config.Prefs) error {
	if err := m.ctx.SetPrefs(p); err != nil {
		return err
	}
	m.ctx.Log.SetLevel(p.LogLevel())
	m.ctx.Channel(wmlog.ChannelConfig).Info("preferences reloaded")
	m.bus.PublishStatic(TopicPrefsChanged)
	return nil
}

// SetKeyConfig replaces the key configuration and announces it on the bus.
// Modal operators keep the modal keymaps they started with.
func (m *Manager) SetKeyConfig(kc *keymap.KeyConfig) error {
	if err := m.dispatcher.SetKeyConfig(kc); err != nil {
		return err
	}
	m.bus.PublishStatic(TopicKeymapChanged)
	return nil
}
