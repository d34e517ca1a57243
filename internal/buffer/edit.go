package buffer

import (
	"github.com/vexedit/vex/internal/coord"
	"github.com/vexedit/vex/internal/coreerr"
	"github.com/vexedit/vex/internal/undo"
)

func toUndoMods(mods []Modification) []undo.Modification {
	out := make([]undo.Modification, len(mods))
	for i, m := range mods {
		out[i] = m
	}
	return out
}

func fromUndoMods(mods []undo.Modification) []Modification {
	out := make([]Modification, len(mods))
	for i, m := range mods {
		out[i] = m.(Modification)
	}
	return out
}

// Insert inserts text at at and returns the coordinate just past it.
// If at names end-of-buffer and text lacks a trailing newline, one is
// silently appended to preserve the single-trailing-newline invariant.
func (b *Buffer) Insert(at coord.BufferCoord, text string) (coord.BufferCoord, error) {
	off, err := b.offsetOf(at)
	if err != nil {
		return coord.BufferCoord{}, err
	}
	newContent := b.content[:off] + text + b.content[off:]
	newContent = enforceTrailingNewline(newContent)
	inserted := newContent[off : off+coord.ByteCount(len(newContent)-len(b.content))]

	b.content = newContent
	b.rebuildLineIndex()
	end := b.coordOf(off + coord.ByteCount(len(inserted)))

	mod := Modification{Kind: InsertChange, At: at, Text: inserted}
	b.commit([]Modification{mod})
	b.appendChange(Change{
		Kind: InsertChange,
		Begin: at,
		End: end,
		AtEndOfBuffer: int(off)+len(inserted) == len(b.content),
	})
	if err := b.checkInvariants(); err != nil {
		return coord.BufferCoord{}, err
	}
	b.notifyInsert(at, end)
	return end, nil
}

// Erase removes the text in [begin, end) and returns begin. Erasing
// across the buffer's final newline reinserts one to preserve the
// single-trailing-newline invariant.
func (b *Buffer) Erase(begin, end coord.BufferCoord) (coord.BufferCoord, error) {
	bo, err := b.offsetOf(begin)
	if err != nil {
		return coord.BufferCoord{}, err
	}
	eo, err := b.offsetOf(end)
	if err != nil {
		return coord.BufferCoord{}, err
	}
	if eo < bo {
		return coord.BufferCoord{}, coreerr.Runtimef("erase: end %s precedes begin %s", end, begin)
	}
	erased := b.content[bo:eo]
	remainder := b.content[:bo] + b.content[eo:]
	fixed := enforceTrailingNewline(remainder)

	b.content = fixed
	b.rebuildLineIndex()

	mods := []Modification{{Kind: EraseChange, At: begin, Text: erased}}
	if fixed != remainder {
		reinserted := fixed[len(remainder):]
		mods = append(mods, Modification{Kind: InsertChange, At: b.coordOf(coord.ByteCount(len(remainder))), Text: reinserted})
	}
	b.commit(mods)
	b.appendChange(Change{
		Kind: EraseChange,
		Begin: begin,
		End: end,
		AtEndOfBuffer: int(bo) == len(b.content),
	})
	if err := b.checkInvariants(); err != nil {
		return coord.BufferCoord{}, err
	}
	b.notifyErase(begin, end)
	return begin, nil
}

// BeginUndoGroup opens (or nests into) an undo group: modifications
// committed while any group is open accumulate into one tree node,
// committed on the matching outermost EndUndoGroup.
func (b *Buffer) BeginUndoGroup() {
	b.groupDepth++
}

// EndUndoGroup closes one level of nesting; only the outermost pair
// commits the accumulated modifications as a single undo-tree node.
func (b *Buffer) EndUndoGroup() {
	if b.groupDepth == 0 {
		return
	}
	b.groupDepth--
	if b.groupDepth == 0 && len(b.pending) > 0 {
		b.history.Commit(toUndoMods(b.pending))
		b.pending = nil
	}
}

// commit records mods into the currently open group, or commits them
// immediately as a singleton group if no group is open.
func (b *Buffer) commit(mods []Modification) {
	if b.groupDepth > 0 {
		b.pending = append(b.pending, mods...)
		return
	}
	b.history.Commit(toUndoMods(mods))
}

// Undo applies the inverse of the current undo-tree node and moves
// toward the root, or reports "not moved" at the root.
func (b *Buffer) Undo() (bool, error) {
	mods, ok := b.history.Undo()
	if !ok {
		return false, nil
	}
	return true, b.applyRaw(fromUndoMods(mods))
}

// Redo re-applies the modifications of the tree's most-recently-created
// child of the current node, or reports "not moved" at a leaf.
func (b *Buffer) Redo() (bool, error) {
	mods, ok := b.history.Redo()
	if !ok {
		return false, nil
	}
	return true, b.applyRaw(fromUndoMods(mods))
}

// applyRaw applies already-decided modifications (from Undo/Redo)
// directly to content, bypassing the undo tree (they must not be
// recorded as new history) but still bumping the timestamp, appending
// Change entries, and notifying listeners — undo/redo are themselves
// applied modifications like any other edit.
func (b *Buffer) applyRaw(mods []Modification) error {
	for _, m := range mods {
		off, err := b.offsetOf(m.At)
		if err != nil {
			return coreerr.Invariantf("undo/redo: %v", err)
		}
		var begin, end, changeEnd coord.BufferCoord
		var kind ChangeKind
		switch m.Kind {
		case InsertChange:
			b.content = b.content[:off] + m.Text + b.content[off:]
			kind = InsertChange
			begin = m.At
		case EraseChange:
			// The original end must be read against the still-current
			// (pre-erase) offset tree, before content/rebuildLineIndex below.
			changeEnd = b.coordOf(off + coord.ByteCount(len(m.Text)))
			b.content = b.content[:off] + b.content[off+coord.ByteCount(len(m.Text)):]
			kind = EraseChange
			begin = m.At
		}
		b.rebuildLineIndex()
		if kind == InsertChange {
			end = b.coordOf(off + coord.ByteCount(len(m.Text)))
			changeEnd = end
			b.notifyInsert(begin, end)
		} else {
			end = begin
			b.notifyErase(begin, changeEnd)
		}
		b.appendChange(Change{Kind: kind, Begin: begin, End: changeEnd, AtEndOfBuffer: int(off)+len(m.Text) == len(b.content)})
	}
	if err := b.checkInvariants(); err != nil {
		return err
	}
	return nil
}

func (b *Buffer) appendChange(c Change) {
	b.timestamp++
	b.changeLog = append(b.changeLog, loggedChange{Change: c, Timestamp: b.timestamp})
}
