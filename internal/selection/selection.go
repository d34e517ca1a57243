// Package selection implements the ordered, non-overlapping set of
// selections that drives every edit: a Selection is an
// inclusive (anchor, cursor) pair of coord.BufferCoord, and a
// SelectionList keeps them sorted and disjoint across buffer mutations.
//
// This is a deliberate redesign of the original cursor package
// (internal/engine/cursor): Selection here is coordinate-pair, inclusive
// on both ends (one codepoint for an "empty" selection, never
// zero-width), and SelectionList merges on shared codepoints rather than
// a touching-merge rule (see DESIGN.md's Open Question decisions).
package selection

import "github.com/vexedit/vex/internal/coord"

// Selection is an ordered pair (anchor, cursor) of BufferCoord. Both ends
// are inclusive: Anchor <= Cursor means forward, the reverse means
// reversed. Anchor == Cursor selects exactly the codepoint at that
// coordinate.
type Selection struct {
	Anchor   coord.BufferCoord
	Cursor   coord.BufferCoord
	Captures []string
}

// New creates a single-codepoint selection at c.
func New(c coord.BufferCoord) Selection {
	return Selection{Anchor: c, Cursor: c}
}

// IsForward reports whether Anchor <= Cursor.
func (s Selection) IsForward() bool { return s.Anchor.LessEqual(s.Cursor) }

// IsEmpty reports whether the selection covers exactly one codepoint.
func (s Selection) IsEmpty() bool { return s.Anchor == s.Cursor }

// Min returns the earlier of Anchor and Cursor.
func (s Selection) Min() coord.BufferCoord { return coord.Min(s.Anchor, s.Cursor) }

// Max returns the later of Anchor and Cursor.
func (s Selection) Max() coord.BufferCoord { return coord.Max(s.Anchor, s.Cursor) }

// Flip swaps Anchor and Cursor, reversing the selection's direction.
func (s Selection) Flip() Selection {
	s.Anchor, s.Cursor = s.Cursor, s.Anchor
	return s
}

// Overlaps reports whether s and other share at least one codepoint.
func (s Selection) Overlaps(other Selection) bool {
	return other.Min().LessEqual(s.Max()) && s.Min().LessEqual(other.Max())
}

// union merges s and other into one forward selection spanning both,
// per the disjoint-codepoints merge policy: anchor is the
// overall min, cursor the overall max.
func union(a, b Selection) Selection {
	return Selection{Anchor: coord.Min(a.Min(), b.Min()), Cursor: coord.Max(a.Max(), b.Max())}
}
