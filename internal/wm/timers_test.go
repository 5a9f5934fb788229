package wm

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/wmevent/internal/input/event"
)

func TestTimersStayOnStepGrid(t *testing.T) {
	var ts Timers
	start := time.Unix(1000, 0)
	win := uuid.New()
	tm := ts.Add(win, 100*time.Millisecond, start)

	var fired []event.TimerData
	fire := func(_ *Timer, d event.TimerData) { fired = append(fired, d) }

	ts.Process(start.Add(250*time.Millisecond), fire)
	if len(fired) != 1 {
		t.Fatalf("fired %d times, want 1", len(fired))
	}
	if fired[0].Delta != 250*time.Millisecond {
		t.Errorf("Delta = %v, want 250ms", fired[0].Delta)
	}

	// Next due time is 300ms, not 350ms.
	ts.Process(start.Add(299*time.Millisecond), fire)
	if len(fired) != 1 {
		t.Fatalf("fired early at 299ms")
	}
	ts.Process(start.Add(300*time.Millisecond), fire)
	if len(fired) != 2 || fired[1].Count != 2 || fired[1].Duration != 300*time.Millisecond {
		t.Fatalf("fired = %+v", fired)
	}
	if tm.Count() != 2 {
		t.Errorf("Count() = %d, want 2", tm.Count())
	}
}

func TestTimersSleepAndRemoveWindow(t *testing.T) {
	var ts Timers
	now := time.Unix(0, 0)
	a, b := uuid.New(), uuid.New()
	ta := ts.Add(a, time.Millisecond, now)
	ts.Add(a, time.Millisecond, now)
	ts.Add(b, time.Millisecond, now)

	ta.Sleep = true
	n := 0
	ts.Process(now.Add(time.Second), func(*Timer, event.TimerData) { n++ })
	if n != 2 {
		t.Errorf("fired %d timers, want 2", n)
	}

	if got := ts.RemoveWindow(a); got != 2 {
		t.Errorf("RemoveWindow() = %d, want 2", got)
	}
	if ts.Remove(ta) {
		t.Error("Remove() of a removed timer = true")
	}
	if ts.Len() != 1 {
		t.Errorf("Len() = %d, want 1", ts.Len())
	}
}
