package app

import (
	"fmt"
	"strings"

	"github.com/dshills/wmevent/internal/dispatcher"
	"github.com/dshills/wmevent/internal/input/event"
)

// statusLine keeps what the bottom row shows: the last event, what the
// mouse buttons would do under the cursor, the recent operators and a
// message set by operators.
type statusLine struct {
	stats   *dispatcher.Stats
	message string
	last    string
	hint    string
	dirty   bool
}

func newStatusLine(stats *dispatcher.Stats) *statusLine {
	return &statusLine{stats: stats, dirty: true}
}

func (s *statusLine) setMessage(msg string) {
	s.message = msg
	s.dirty = true
}

func (s *statusLine) setHint(hint string) {
	if hint != s.hint {
		s.hint = hint
		s.dirty = true
	}
}

func (s *statusLine) event(ev *event.Event) {
	s.last = fmt.Sprintf("%s %s (%d,%d) %s", ev.Type, ev.Value, ev.Position.X, ev.Position.Y, ev.Modifiers)
	s.dirty = true
}

// String renders the line: message, last event, cursor hint, then the
// most recent operators, newest first.
func (s *statusLine) String() string {
	var b strings.Builder
	if s.message != "" {
		b.WriteString("[")
		b.WriteString(s.message)
		b.WriteString("] ")
	}
	b.WriteString(s.last)
	if s.hint != "" {
		b.WriteString(" | ")
		b.WriteString(s.hint)
	}
	for i, r := range s.stats.Recent() {
		if i == 3 {
			break
		}
		fmt.Fprintf(&b, " | %s %s", r.Operator, r.Status)
	}
	return b.String()
}
