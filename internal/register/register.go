// Package register implements the register store: an ordered list of
// strings keyed by a single codepoint name, read through a uniform
// interface whether the register is user-writable (`"`, `/`, `@`, `^`,
// `|`, letters) or computed on read (`%`, `.`, `#`, `0`-`9`).
//
// Kakoune's original_source/src/register_manager.hh is the source for
// the static vs. dynamic split and the "always non-empty" read contract.
package register

import (
	"strconv"

	"github.com/vexedit/vex/internal/buffer"
)

// Source produces an editor's current buffer and selections for dynamic
// registers (`%`, `.`, `#`, `0`-`9`). Kept as a narrow interface rather
// than importing internal/selection directly, so register has no
// dependency on any particular selection-list shape beyond what these
// dynamic registers need.
type Source interface {
	Buffer() *buffer.Buffer
	Selections() []Selection
}

// Selection is the minimal per-selection shape dynamic registers read:
// its captured text and the match captures from the last regex motion
// applied to it.
type Selection struct {
	Text string
	Captures []string
}

// Store holds every static register plus the fixed dynamic set. Not
// mutex-guarded: reached through one owning Context.
type Store struct {
	static map[rune][]string
	source Source
}

// NewStore creates a Store. src supplies the live buffer/selection state
// dynamic registers read from; it may be nil if those registers are
// never read (e.g. in isolated mode-machine tests).
func NewStore(src Source) *Store {
	return &Store{static: make(map[rune][]string), source: src}
}

// Read returns reg's current values, always non-empty: a
// register with no values at all reads as one empty string.
func (s *Store) Read(reg rune) ([]string, error) {
	if values, ok := s.dynamic(reg); ok {
		return nonEmpty(values), nil
	}
	return nonEmpty(s.static[reg]), nil
}

// Write sets reg's static values, overwriting whatever was there.
// Writing to a dynamic register name is a no-op: `%`, `.`, `#` and the
// digits are always computed on read.
func (s *Store) Write(reg rune, values []string) {
	if isDynamic(reg) {
		return
	}
	s.static[reg] = values
}

// At returns the value a register should contribute for selection index
// i out of n selections, clamping to the last value once i reaches the
// end of the list ("min(i, N-1)").
func At(values []string, i int) string {
	if len(values) == 0 {
		return ""
	}
	if i >= len(values) {
		i = len(values) - 1
	}
	return values[i]
}

func nonEmpty(values []string) []string {
	if len(values) == 0 {
		return []string{""}
	}
	return values
}

func isDynamic(reg rune) bool {
	switch {
	case reg == '%' || reg == '.' || reg == '#':
		return true
	case reg >= '0' && reg <= '9':
		return true
	}
	return false
}

func (s *Store) dynamic(reg rune) ([]string, bool) {
	if !isDynamic(reg) {
		return nil, false
	}
	if s.source == nil {
		return []string{""}, true
	}
	switch {
	case reg == '%':
		return []string{s.source.Buffer().Name()}, true
	case reg == '.':
		sels := s.source.Selections()
		out := make([]string, len(sels))
		for i, sel := range sels {
			out[i] = sel.Text
		}
		return out, true
	case reg == '#':
		sels := s.source.Selections()
		out := make([]string, len(sels))
		for i := range sels {
			out[i] = strconv.Itoa(i + 1)
		}
		return out, true
	case reg >= '0' && reg <= '9':
		sels := s.source.Selections()
		idx := int(reg - '0')
		out := make([]string, len(sels))
		for i, sel := range sels {
			out[i] = At(sel.Captures, idx)
		}
		return out, true
	}
	return nil, false
}
