// Package fuzzy ranks short names against a typed query, the way an
// operator search menu narrows its list while the user types.
//
// A candidate matches when every query rune appears in it in order. The
// score rewards runs of consecutive runes, runes at word starts (after a
// dot, underscore or space, or at a camelCase step) and a match at the very
// start, and penalizes gaps and leading skips. Candidates carry a key and a
// label; the better of the two scores wins.
package fuzzy
