// Package buffer implements a line-structured text store: a strictly
// monotonic timestamp, an append-only change log, and a branching undo
// tree (internal/undo), all reached through the two mutating primitives
// Insert and Erase.
//
// Content is kept as a single concatenated string rather than a rope
// (internal/engine/rope is unwired, see DESIGN.md); the derived
// line-start cache is rebuilt after each mutation, grounded on the
// simpler of the two Kakoune buffer implementations retrieved
// (original_source/src/buffer.cc), which recomputes line boundaries by
// scanning for '\n' after every edit.
package buffer

import (
	"strings"
	"unicode/utf8"

	"github.com/google/btree"
	"github.com/pkg/errors"

	"github.com/vexedit/vex/internal/coord"
	"github.com/vexedit/vex/internal/coreerr"
	"github.com/vexedit/vex/internal/undo"
)

// Flags classify a buffer's origin and special handling.
type Flags int

const (
	File Flags = 1 << iota
	NewFile
	Scratch
	ReadOnly
	NoUndo
	Debug
	Fifo
)

// Listener receives change notifications. Unregister by
// calling the closure returned from Subscribe; a Listener that is never
// unregistered is simply held until the Buffer itself is collected —
// there is no separate weak-handle bookkeeping to leak.
type Listener interface {
	OnInsert(begin, end coord.BufferCoord)
	OnErase(begin, end coord.BufferCoord)
}

// Buffer is a line-structured, non-empty UTF-8 text store.
type Buffer struct {
	name  string
	flags Flags

	content    string
	lineStarts []coord.ByteCount // lineStarts[i] = byte offset of line i's first byte
	offsetTree *btree.BTreeG[offsetEntry]

	timestamp uint64
	changeLog []loggedChange
	pins      map[uint64]int // observer timestamp -> pin count

	groupDepth int
	pending    []Modification

	history *undo.Tree

	listeners   map[uint64]Listener
	nextListen  uint64
}

type offsetEntry struct {
	Offset coord.ByteCount
	Line   coord.LineCount
}

func offsetLess(a, b offsetEntry) bool { return a.Offset < b.Offset }

type loggedChange struct {
	Change    Change
	Timestamp uint64
}

// Option configures a new Buffer.
type Option func(*Buffer)

// WithName sets the buffer's display name.
func WithName(name string) Option { return func(b *Buffer) { b.name = name } }

// WithFlags sets the buffer's flag bits.
func WithFlags(f Flags) Option { return func(b *Buffer) { b.flags = f } }

// New creates a Buffer from initial text. An empty string becomes the
// canonical empty buffer: one line containing "\n".
func New(text string, opts ...Option) *Buffer {
	b := &Buffer{
		pins:      make(map[uint64]int),
		history:   undo.NewTree(),
		listeners: make(map[uint64]Listener),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.content = enforceTrailingNewline(text)
	b.rebuildLineIndex()
	return b
}

func enforceTrailingNewline(s string) string {
	if s == "" {
		return "\n"
	}
	if !strings.HasSuffix(s, "\n") {
		return s + "\n"
	}
	return s
}

func (b *Buffer) rebuildLineIndex() {
	b.lineStarts = b.lineStarts[:0]
	tree := btree.NewG(32, offsetLess)
	off := coord.ByteCount(0)
	line := coord.LineCount(0)
	b.lineStarts = append(b.lineStarts, off)
	tree.ReplaceOrInsert(offsetEntry{Offset: off, Line: line})
	for i := 0; i < len(b.content); i++ {
		if b.content[i] == '\n' {
			off = coord.ByteCount(i + 1)
			if int(off) == len(b.content) {
				break
			}
			line++
			b.lineStarts = append(b.lineStarts, off)
			tree.ReplaceOrInsert(offsetEntry{Offset: off, Line: line})
		}
	}
	b.offsetTree = tree
}

// Name returns the buffer's display name.
func (b *Buffer) Name() string { return b.name }

// Flags returns the buffer's flag bits.
func (b *Buffer) Flags() Flags { return b.flags }

// Timestamp returns the current, strictly monotonic modification counter.
func (b *Buffer) Timestamp() uint64 { return b.timestamp }

// LineCount returns the number of lines in the buffer.
func (b *Buffer) LineCount() coord.LineCount { return coord.LineCount(len(b.lineStarts)) }

// Line returns the content of line i, including its trailing '\n'.
func (b *Buffer) Line(i coord.LineCount) (string, error) {
	if i < 0 || int(i) >= len(b.lineStarts) {
		return "", coreerr.Runtimef("line %d out of range [0,%d)", i, len(b.lineStarts))
	}
	start := int(b.lineStarts[i])
	end := len(b.content)
	if int(i)+1 < len(b.lineStarts) {
		end = int(b.lineStarts[i+1])
	}
	return b.content[start:end], nil
}

// LineLength returns the byte count of line i, including its trailing
// '\n'.
func (b *Buffer) LineLength(i coord.LineCount) (coord.ByteCount, error) {
	line, err := b.Line(i)
	if err != nil {
		return 0, err
	}
	return coord.ByteCount(len(line)), nil
}

// ContentRange returns the UTF-8 text between two coordinates.
func (b *Buffer) ContentRange(begin, end coord.BufferCoord) (string, error) {
	bo, err := b.offsetOf(begin)
	if err != nil {
		return "", err
	}
	eo, err := b.offsetOf(end)
	if err != nil {
		return "", err
	}
	if eo < bo {
		return "", coreerr.Runtimef("end %s precedes begin %s", end, begin)
	}
	return b.content[bo:eo], nil
}

// offsetOf converts a BufferCoord to a byte offset into content, or a
// Runtime error if it does not name a valid position.
func (b *Buffer) offsetOf(c coord.BufferCoord) (coord.ByteCount, error) {
	if c.Line < 0 || int(c.Line) >= len(b.lineStarts) {
		return 0, coreerr.Runtimef("line %d out of range [0,%d)", c.Line, len(b.lineStarts))
	}
	lineLen, err := b.LineLength(c.Line)
	if err != nil {
		return 0, err
	}
	if c.Byte < 0 || c.Byte > lineLen {
		return 0, coreerr.Runtimef("byte %d out of range [0,%d] on line %d", c.Byte, lineLen, c.Line)
	}
	off := b.lineStarts[c.Line] + c.Byte
	if int(off) < len(b.content) && !utf8.RuneStart(b.content[off]) {
		return 0, coreerr.Runtimef("coord %s does not land on a codepoint boundary", c)
	}
	return off, nil
}

// coordOf converts a byte offset into content to a BufferCoord, via the
// offset btree's floor query: O(log n) in the number of lines.
func (b *Buffer) coordOf(off coord.ByteCount) coord.BufferCoord {
	var found offsetEntry
	b.offsetTree.DescendLessOrEqual(offsetEntry{Offset: off, Line: 1 << 62}, func(e offsetEntry) bool {
		found = e
		return false
	})
	return coord.BufferCoord{Line: found.Line, Byte: off - found.Offset}
}

// Subscribe registers l to receive OnInsert/OnErase notifications. The
// returned closure unregisters it; calling it more than once is a no-op.
func (b *Buffer) Subscribe(l Listener) func() {
	id := b.nextListen
	b.nextListen++
	b.listeners[id] = l
	return func() { delete(b.listeners, id) }
}

func (b *Buffer) notifyInsert(begin, end coord.BufferCoord) {
	for _, l := range b.listeners {
		l.OnInsert(begin, end)
	}
}

func (b *Buffer) notifyErase(begin, end coord.BufferCoord) {
	for _, l := range b.listeners {
		l.OnErase(begin, end)
	}
}

// PinObserver marks ts as needed by a live observer, preventing the
// change log from being compacted past it. The returned closure
// releases the pin.
func (b *Buffer) PinObserver(ts uint64) func() {
	b.pins[ts]++
	return func() {
		b.pins[ts]--
		if b.pins[ts] <= 0 {
			delete(b.pins, ts)
		}
	}
}

// minPinned returns the oldest pinned timestamp, or the current
// timestamp if nothing is pinned (nothing needs retaining).
func (b *Buffer) minPinned() uint64 {
	min := b.timestamp
	for ts := range b.pins {
		if ts < min {
			min = ts
		}
	}
	return min
}

// Compact drops change-log entries no live observer can still need.
func (b *Buffer) Compact() {
	floor := b.minPinned()
	i := 0
	for i < len(b.changeLog) && b.changeLog[i].Timestamp <= floor {
		i++
	}
	b.changeLog = b.changeLog[i:]
}

// ChangesSince returns every change applied after ts, in commit order.
func (b *Buffer) ChangesSince(ts uint64) []Change {
	var out []Change
	for _, lc := range b.changeLog {
		if lc.Timestamp > ts {
			out = append(out, lc.Change)
		}
	}
	return out
}

// checkInvariants is the §8 "buffer line structure" invariant, checked
// defensively after every mutation. A violation is an Invariant error:
// it means this package has a bug, not that the caller misused it.
func (b *Buffer) checkInvariants() error {
	if !strings.HasSuffix(b.content, "\n") {
		return coreerr.Invariantf("buffer %q: content does not end with a newline", b.name)
	}
	for i := 0; i < len(b.content)-1; i++ {
		if b.content[i] == '\n' && !isLineStart(b, coord.ByteCount(i+1)) {
			// an internal '\n' not immediately followed by a recognized
			// line start means rebuildLineIndex missed a boundary.
			return coreerr.Invariantf("buffer %q: line index out of sync at offset %d", b.name, i)
		}
	}
	return nil
}

func isLineStart(b *Buffer, off coord.ByteCount) bool {
	for _, s := range b.lineStarts {
		if s == off {
			return true
		}
	}
	return int(off) == len(b.content)
}

// Snapshot is an immutable, cheap-to-copy view of the buffer's raw
// content at the moment it was taken, for callers (e.g. undo-round-trip
// tests) that want to compare content without holding a reference into
// the live buffer.
type Snapshot struct {
	Content   string
	Timestamp uint64
}

// TakeSnapshot captures the buffer's current content and timestamp.
func (b *Buffer) TakeSnapshot() Snapshot {
	return Snapshot{Content: b.content, Timestamp: b.timestamp}
}

// wrapInvariant is a helper so defensive checks carry a stack trace to
// the debug channel via coreerr.Invariantf's pkg/errors integration.
func wrapInvariant(err error) error {
	if err == nil {
		return nil
	}
	return errors.WithStack(err)
}

