// Package metrics records event pipeline counters through OpenTelemetry and
// keeps an in-process mirror for status lines and tests.
package metrics

import (
	"context"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// MeterName is the instrumentation scope of every instrument.
const MeterName = "github.com/dshills/wmevent"

// Metrics holds the pipeline instruments.
type Metrics struct {
	queued         metric.Int64Counter
	coalesced      metric.Int64Counter
	trackpadMerged metric.Int64Counter
	repeatsDropped metric.Int64Counter
	forwarded      metric.Int64Counter
	dispatched     metric.Int64Counter
	published      metric.Int64Counter
	notified       metric.Int64Counter

	snap counters
}

type counters struct {
	queued         atomic.Uint64
	coalesced      atomic.Uint64
	trackpadMerged atomic.Uint64
	repeatsDropped atomic.Uint64
	forwarded      atomic.Uint64
	matched        atomic.Uint64
	unmatched      atomic.Uint64
	published      atomic.Uint64
	notified       atomic.Uint64
}

// Snapshot is a point in time copy of the counters.
type Snapshot struct {
	Queued         uint64
	Coalesced      uint64
	TrackpadMerged uint64
	RepeatsDropped uint64
	Forwarded      uint64
	Matched        uint64
	Unmatched      uint64
	Published      uint64
	Notified       uint64
}

// New creates the instruments on a meter from provider. A nil provider
// uses the global one.
func New(provider metric.MeterProvider) (*Metrics, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(MeterName)

	var m Metrics
	var err error
	counter := func(dst *metric.Int64Counter, name, desc string) {
		if err != nil {
			return
		}
		*dst, err = meter.Int64Counter(name, metric.WithDescription(desc))
	}

	counter(&m.queued, "wm.events.queued", "Canonical events added to window queues")
	counter(&m.coalesced, "wm.events.coalesced", "Mouse moves demoted to in-between moves")
	counter(&m.trackpadMerged, "wm.events.trackpad_merged", "Trackpad events merged into the queue tail")
	counter(&m.repeatsDropped, "wm.events.repeats_dropped", "Auto-repeat presses dropped")
	counter(&m.forwarded, "wm.events.forwarded", "Events forwarded to the window under the cursor")
	counter(&m.dispatched, "wm.dispatch.events", "Events dispatched, by handler kind and outcome")
	counter(&m.published, "wm.msgbus.publishes", "Message bus publishes")
	counter(&m.notified, "wm.msgbus.notifications", "Subscriber notifications")
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Noop returns metrics that only keep the in-process snapshot.
func Noop() *Metrics {
	m, err := New(noop.NewMeterProvider())
	if err != nil {
		// The noop provider never fails.
		panic(err)
	}
	return m
}

var bg = context.Background()

// EventQueued counts an event added to a queue.
func (m *Metrics) EventQueued(kind string) {
	m.snap.queued.Add(1)
	m.queued.Add(bg, 1, metric.WithAttributes(attribute.String("type", kind)))
}

// MoveCoalesced counts a demoted mouse move.
func (m *Metrics) MoveCoalesced() {
	m.snap.coalesced.Add(1)
	m.coalesced.Add(bg, 1)
}

// TrackpadMerged counts a merged trackpad event.
func (m *Metrics) TrackpadMerged() {
	m.snap.trackpadMerged.Add(1)
	m.trackpadMerged.Add(bg, 1)
}

// RepeatDropped counts a dropped auto-repeat press.
func (m *Metrics) RepeatDropped() {
	m.snap.repeatsDropped.Add(1)
	m.repeatsDropped.Add(bg, 1)
}

// EventForwarded counts an event forwarded to another window.
func (m *Metrics) EventForwarded() {
	m.snap.forwarded.Add(1)
	m.forwarded.Add(bg, 1)
}

// Dispatched counts a handler pass over an event.
func (m *Metrics) Dispatched(handler string, matched bool) {
	if matched {
		m.snap.matched.Add(1)
	} else {
		m.snap.unmatched.Add(1)
	}
	m.dispatched.Add(bg, 1, metric.WithAttributes(
		attribute.String("handler", handler),
		attribute.Bool("matched", matched),
	))
}

// Published counts a message bus publish of kind ("property" or "static").
func (m *Metrics) Published(kind string) {
	m.snap.published.Add(1)
	m.published.Add(bg, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// Notified counts subscriber notifications.
func (m *Metrics) Notified(n int) {
	if n <= 0 {
		return
	}
	m.snap.notified.Add(uint64(n))
	m.notified.Add(bg, int64(n))
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		Queued:         m.snap.queued.Load(),
		Coalesced:      m.snap.coalesced.Load(),
		TrackpadMerged: m.snap.trackpadMerged.Load(),
		RepeatsDropped: m.snap.repeatsDropped.Load(),
		Forwarded:      m.snap.forwarded.Load(),
		Matched:        m.snap.matched.Load(),
		Unmatched:      m.snap.unmatched.Load(),
		Published:      m.snap.published.Load(),
		Notified:       m.snap.notified.Load(),
	}
}
