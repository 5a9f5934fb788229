package dispatcher

import (
	"time"

	"github.com/dshills/wmevent/internal/dispatcher/execctx"
	"github.com/dshills/wmevent/internal/dispatcher/operator"
	"github.com/dshills/wmevent/internal/input/event"
)

// Record is a dispatched operator kept by Stats.
type Record struct {
	Time     time.Time
	Operator string
	Status   operator.Status
	Kind     Kind
	Event    string
}

// Stats counts dispatched operators and keeps the most recent ones. It is
// a PostDispatchHook.
type Stats struct {
	counts  map[string]uint64
	history []Record
	next    int
	full    bool
	total   uint64
}

// NewStats creates stats keeping size records.
func NewStats(size int) *Stats {
	if size <= 0 {
		size = 1
	}
	return &Stats{
		counts:  make(map[string]uint64),
		history: make([]Record, size),
	}
}

// PostDispatch implements PostDispatchHook.
func (s *Stats) PostDispatch(ctx *execctx.Context, ev *event.Event, res Result) {
	s.total++
	s.counts[res.Operator]++
	s.history[s.next] = Record{
		Time:     ctx.Now(),
		Operator: res.Operator,
		Status:   res.Status,
		Kind:     res.Kind,
		Event:    ev.String(),
	}
	s.next = (s.next + 1) % len(s.history)
	if s.next == 0 {
		s.full = true
	}
}

// Count returns how often operator ran.
func (s *Stats) Count(operator string) uint64 {
	return s.counts[operator]
}

// Total returns the number of operator runs.
func (s *Stats) Total() uint64 {
	return s.total
}

// Recent returns the kept records, most recent first.
func (s *Stats) Recent() []Record {
	n := s.next
	if s.full {
		n = len(s.history)
	}
	out := make([]Record, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, s.history[(s.next-i+len(s.history))%len(s.history)])
	}
	return out
}

// Reset clears all counts and records.
func (s *Stats) Reset() {
	clear(s.counts)
	clear(s.history)
	s.next, s.full, s.total = 0, false, 0
}
