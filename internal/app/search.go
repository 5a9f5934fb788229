package app

import (
	"fmt"
	"slices"

	"github.com/dshills/wmevent/internal/dispatcher"
	"github.com/dshills/wmevent/internal/dispatcher/execctx"
	"github.com/dshills/wmevent/internal/dispatcher/operator"
	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/input/fuzzy"
	"github.com/dshills/wmevent/internal/input/key"
	"github.com/dshills/wmevent/internal/wmlog"
)

const (
	// searchShown is how many results the status line lists.
	searchShown = 3
	// searchRecent is how many run operators the menu remembers.
	searchRecent = 8
)

// searchMenu is the operator search popup. While open it is a modal UI
// handler at the head of the window's modal chain and takes every key.
type searchMenu struct {
	app     *Application
	matcher *fuzzy.Matcher

	open    bool
	handle  dispatcher.Handle
	query   string
	results []fuzzy.Match
	// recent holds operator IDs, most recently run first.
	recent []string
}

func newSearchMenu(app *Application) *searchMenu {
	return &searchMenu{app: app, matcher: fuzzy.New()}
}

// candidates lists the searchable operators: recently run first, then the
// rest in ID order. Internal operators are left out.
func (s *searchMenu) candidates() []fuzzy.Candidate {
	ops := s.app.manager.Operators()
	ids := ops.IDs()
	slices.SortStableFunc(ids, func(a, b string) int {
		return rank(s.recent, a) - rank(s.recent, b)
	})
	out := make([]fuzzy.Candidate, 0, len(ids))
	for _, id := range ids {
		t, ok := ops.Get(id)
		if !ok || t.Flags&operator.FlagInternal != 0 {
			continue
		}
		out = append(out, fuzzy.Candidate{Key: t.ID, Label: t.Name})
	}
	return out
}

func rank(recent []string, id string) int {
	if i := slices.Index(recent, id); i >= 0 {
		return i
	}
	return len(recent)
}

func (s *searchMenu) show() {
	if s.open {
		return
	}
	s.open = true
	s.query = ""
	s.handle = s.app.window.ModalChain().PushUI(s.handleEvent).ID()
	s.refresh()
}

func (s *searchMenu) close() {
	if !s.open {
		return
	}
	s.open = false
	s.app.window.ModalChain().Remove(s.handle)
	s.app.status.setMessage("")
}

func (s *searchMenu) refresh() {
	s.results = s.matcher.Search(s.query, s.candidates(), 0)
	s.app.status.setMessage(s.String())
}

// String renders the query and the best results for the status line.
func (s *searchMenu) String() string {
	msg := "search: " + s.query
	if len(s.results) == 0 {
		return msg + " (no match)"
	}
	for i, r := range s.results {
		if i == searchShown {
			msg += fmt.Sprintf(" +%d", len(s.results)-searchShown)
			break
		}
		if i == 0 {
			msg += " > " + r.Key
		} else {
			msg += " | " + r.Key
		}
	}
	return msg
}

// handleEvent edits the query, runs the best match on Enter and closes on
// Escape or a click. Cursor motion passes so hover state stays current.
func (s *searchMenu) handleEvent(ctx *execctx.Context, ev *event.Event) dispatcher.UIAction {
	switch {
	case ev.Type.IsMouseButton():
		if ev.Value == key.Press {
			s.close()
		}
		return dispatcher.UIBreak
	case !ev.Type.IsKeyboard():
		return dispatcher.UIContinue
	case ev.Value != key.Press || ev.Type.IsModifierKey():
		return dispatcher.UIBreak
	}

	switch ev.Type {
	case key.KeyEsc:
		s.close()
	case key.KeyReturn, key.KeyPadEnter:
		s.run(ctx, ev)
	case key.KeyBackspace:
		s.query = deleteGrapheme(s.query)
		s.refresh()
	default:
		if ev.Text != "" {
			s.query += ev.Text
			s.refresh()
		}
	}
	return dispatcher.UIBreak
}

// run closes the menu and calls the best match where the cursor is.
func (s *searchMenu) run(ctx *execctx.Context, ev *event.Event) {
	if len(s.results) == 0 {
		return
	}
	id := s.results[0].Key
	s.close()

	log := ctx.Channel(wmlog.ChannelOperators)
	st, err := s.app.manager.CallOperator(s.app.window.ID(), id, nil, ev)
	if err != nil {
		log.Info("search: %v", err)
		s.app.status.setMessage(err.Error())
		return
	}
	log.Debug("search ran %s: %s", id, st)
	s.remember(id)
}

func (s *searchMenu) remember(id string) {
	if i := slices.Index(s.recent, id); i >= 0 {
		s.recent = slices.Delete(s.recent, i, i+1)
	}
	s.recent = slices.Insert(s.recent, 0, id)
	if len(s.recent) > searchRecent {
		s.recent = s.recent[:searchRecent]
	}
}
