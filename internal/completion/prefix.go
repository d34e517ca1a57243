// Package completion provides the candidate-ranking and cycling
// primitives insert-mode word completion, prompt-mode Tab-cycling, and
// (eventually) command-layer completion need.
//
// Adapted from internal/input/fuzzy (scorer.go, matcher.go):
// RankSubsequence generalizes DefaultScorer's consecutive/word-boundary/
// prefix bonuses from byte-offset file-path matches to rune-index matches
// over arbitrary item lists. PrefixCandidates and Cycle have no direct
// precedent; Cycle is modeled on command.go's completion-index
// wraparound, split out as its own reusable type.
package completion

import "strings"

// PrefixCandidates returns every item in items that starts with prefix,
// preserving relative order. Comparison is exact (case-sensitive); the
// caller normalizes case before calling if that's wanted, same as the
// original matcher did via its CaseSensitive option.
func PrefixCandidates(items []string, prefix string) []string {
	if prefix == "" {
		return append([]string(nil), items...)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.HasPrefix(item, prefix) {
			out = append(out, item)
		}
	}
	return out
}
