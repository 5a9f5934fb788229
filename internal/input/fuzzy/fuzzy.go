package fuzzy

import (
	"slices"
	"strings"
	"unicode"
)

// Candidate is one searchable entry.
type Candidate struct {
	// Key identifies the entry, such as an operator ID.
	Key string
	// Label is the display name. It may be empty.
	Label string
}

// Match is a ranked candidate.
type Match struct {
	Candidate
	Score int
	// Positions are the matched rune indices in Key, or in Label when
	// InLabel is set.
	Positions []int
	InLabel   bool
}

// Matcher ranks candidates. The zero value is not usable; use New.
type Matcher struct {
	weights       Weights
	caseSensitive bool
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithWeights replaces the default weights.
func WithWeights(w Weights) Option {
	return func(m *Matcher) { m.weights = w }
}

// CaseSensitive disables case folding.
func CaseSensitive() Option {
	return func(m *Matcher) { m.caseSensitive = true }
}

// New creates a matcher.
func New(opts ...Option) *Matcher {
	m := &Matcher{weights: DefaultWeights()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Search returns the candidates matching query, best first, at most limit
// of them when limit is positive. Equal scores keep key order. An empty
// query returns the candidates in their given order.
func (m *Matcher) Search(query string, cands []Candidate, limit int) []Match {
	query = strings.TrimSpace(query)
	var out []Match
	if query == "" {
		out = make([]Match, len(cands))
		for i, c := range cands {
			out[i] = Match{Candidate: c}
		}
		return truncate(out, limit)
	}

	q := m.fold(query)
	for _, c := range cands {
		best, ok := m.rate(q, c.Key)
		if lbl, lok := m.rate(q, c.Label); lok && (!ok || lbl.Score > best.Score) {
			best, ok = lbl, true
			best.InLabel = true
		}
		if ok {
			best.Candidate = c
			out = append(out, best)
		}
	}
	slices.SortStableFunc(out, func(a, b Match) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return strings.Compare(a.Key, b.Key)
	})
	return truncate(out, limit)
}

// Best returns the top match.
func (m *Matcher) Best(query string, cands []Candidate) (Match, bool) {
	res := m.Search(query, cands, 1)
	if len(res) == 0 {
		return Match{}, false
	}
	return res[0], true
}

func (m *Matcher) rate(q []rune, text string) (Match, bool) {
	if text == "" {
		return Match{}, false
	}
	orig := []rune(text)
	pos := positions(q, m.fold(text))
	if pos == nil {
		return Match{}, false
	}
	return Match{Score: m.weights.score(orig, pos), Positions: pos}, true
}

func (m *Matcher) fold(s string) []rune {
	r := []rune(s)
	if !m.caseSensitive {
		for i := range r {
			r[i] = unicode.ToLower(r[i])
		}
	}
	return r
}

func truncate(ms []Match, limit int) []Match {
	if limit > 0 && len(ms) > limit {
		return ms[:limit]
	}
	return ms
}
