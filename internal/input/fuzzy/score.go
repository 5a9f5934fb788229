package fuzzy

import "unicode"

// Weights tune the score.
type Weights struct {
	Base        int
	Consecutive int
	WordStart   int
	Prefix      int
	Gap         int
	Leading     int
	// ShortBelow adds one point per rune a candidate is shorter than it.
	ShortBelow int
}

// DefaultWeights favor word starts, which suits dotted operator IDs.
func DefaultWeights() Weights {
	return Weights{
		Base:        100,
		Consecutive: 20,
		WordStart:   18,
		Prefix:      30,
		Gap:         2,
		Leading:     1,
		ShortBelow:  24,
	}
}

// positions returns the rune indices of a greedy in-order match of query in
// text, nil when some query rune is missing. Both are already folded.
func positions(query, text []rune) []int {
	if len(query) == 0 || len(query) > len(text) {
		return nil
	}
	out := make([]int, 0, len(query))
	q := 0
	for i, r := range text {
		if r == query[q] {
			out = append(out, i)
			if q++; q == len(query) {
				return out
			}
		}
	}
	return nil
}

// score rates a match. orig keeps the case of the candidate for camelCase
// word starts.
func (w Weights) score(orig []rune, pos []int) int {
	s := w.Base
	for i, p := range pos {
		if i > 0 && p == pos[i-1]+1 {
			s += w.Consecutive
		}
		if wordStart(orig, p) {
			s += w.WordStart
		}
	}
	if pos[0] == 0 {
		s += w.Prefix
	}
	s -= (pos[len(pos)-1] - pos[0] + 1 - len(pos)) * w.Gap
	s -= pos[0] * w.Leading
	if n := len(orig); n < w.ShortBelow {
		s += w.ShortBelow - n
	}
	return max(s, 1)
}

func wordStart(r []rune, i int) bool {
	if i == 0 {
		return true
	}
	prev := r[i-1]
	switch {
	case prev == '.' || prev == '_' || prev == '-' || unicode.IsSpace(prev):
		return true
	case unicode.IsLower(prev) && unicode.IsUpper(r[i]):
		return true
	}
	return false
}
