package wm

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/tombstone"
)

// Timer fires a Timer event into its window every Step.
type Timer struct {
	ID     uuid.UUID
	Window uuid.UUID
	// Step is the interval. Zero fires on every Process.
	Step time.Duration

	start, last, next time.Time
	duration          time.Duration
	count             int
	// Sleep pauses the timer without removing it.
	Sleep bool

	elem *tombstone.Element[*Timer]
}

// Count returns how many times the timer fired.
func (t *Timer) Count() int { return t.count }

// Duration returns the time accumulated since the timer was added.
func (t *Timer) Duration() time.Duration { return t.duration }

// Timers is the set of window timers.
type Timers struct {
	list tombstone.List[*Timer]
}

// Add starts a timer for window, first firing after step.
func (ts *Timers) Add(window uuid.UUID, step time.Duration, now time.Time) *Timer {
	t := &Timer{
		ID:     uuid.New(),
		Window: window,
		Step:   step,
		start:  now,
		last:   now,
		next:   now.Add(step),
	}
	t.elem = ts.list.PushBack(t)
	return t
}

// Remove stops a timer. Returns false if it was not running.
func (ts *Timers) Remove(t *Timer) bool {
	if t == nil || t.elem == nil {
		return false
	}
	ok := ts.list.Remove(t.elem)
	t.elem = nil
	return ok
}

// RemoveWindow stops every timer of a window.
func (ts *Timers) RemoveWindow(window uuid.UUID) int {
	return ts.list.RemoveFunc(func(t *Timer) bool {
		if t.Window != window {
			return false
		}
		t.elem = nil
		return true
	})
}

// Len returns the number of timers.
func (ts *Timers) Len() int {
	return ts.list.Len()
}

// Process calls fire for every timer due at now with the data of its Timer
// event. The next due time stays on the step grid so a late step does not
// drift the timer.
func (ts *Timers) Process(now time.Time, fire func(t *Timer, data event.TimerData)) {
	ts.list.Each(func(e *tombstone.Element[*Timer]) bool {
		t := e.Value
		if t.Sleep || now.Before(t.next) {
			return true
		}
		delta := now.Sub(t.last)
		t.duration += delta
		t.last = now
		if t.Step > 0 {
			steps := t.duration/t.Step + 1
			t.next = t.start.Add(steps * t.Step)
		} else {
			t.next = now
		}
		t.count++
		fire(t, event.TimerData{
			ID:       t.ID,
			Delta:    delta,
			Duration: t.duration,
			Count:    t.count,
		})
		return true
	})
}
