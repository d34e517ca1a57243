package mode

import (
	"github.com/vexedit/vex/internal/buffer"
	"github.com/vexedit/vex/internal/coord"
	"github.com/vexedit/vex/internal/key"
	"github.com/vexedit/vex/internal/selection"
)

// Preparation selects how InsertMode transforms the selection list on
// entry.
type Preparation int

const (
	// InsertBefore types at each selection's minimum coordinate.
	InsertBefore Preparation = iota
	// Append types one codepoint after each selection's maximum, and
	// shifts cursors back by one on exit.
	Append
	// Replace erases each selection's content first, then types at the
	// resulting empty selection.
	Replace
	// OpenLineAbove inserts a new blank line above each selection's line
	// and types there.
	OpenLineAbove
	// OpenLineBelow inserts a new blank line below each selection's line
	// and types there.
	OpenLineBelow
)

// HookInsertEnd fires when insert mode is left, after any Append
// cursor-shift.
const HookInsertEnd = "InsertEnd"

// InsertMode types every typed codepoint at the cursor end of each
// selection. Adapted from the original InsertMode
// (insert.go) for the overall shape — Enter/Exit bracketing an
// undo-grouped run of edits — but retargeted from line/column cursor
// arithmetic onto selection.List, since this core has no single cursor,
// only a list of selections that all move together.
type InsertMode struct {
	Buf *buffer.Buffer
	Sels *selection.List

	prep Preparation
	autocompleteIdle bool
	pendingRegister bool
	pendingRaw bool
}

// NewInsertMode creates an insert mode bound to buf/sels. Call
// SetPreparation before pushing to choose Insert/Append/Replace/Open*.
func NewInsertMode(buf *buffer.Buffer, sels *selection.List) *InsertMode {
	return &InsertMode{Buf: buf, Sels: sels}
}

// SetPreparation selects the entry transform for the next Enable call.
func (m *InsertMode) SetPreparation(p Preparation) { m.prep = p }

func (m *InsertMode) Kind() Kind { return KindInsert }

// Enable begins an undo group, then applies the preparation table, so the
// preparation edits and every keystroke in this insert session collapse
// to one undo step.
func (m *InsertMode) Enable(ctx *Context) {
	m.Buf.BeginUndoGroup()
	switch m.prep {
	case InsertBefore:
		_ = m.Sels.ApplyMulti(m.Buf, func(buf *buffer.Buffer, sel selection.Selection) ([]selection.Selection, error) {
			return []selection.Selection{selection.New(sel.Min())}, nil
		})
	case Append:
		_ = m.Sels.ApplyMulti(m.Buf, func(buf *buffer.Buffer, sel selection.Selection) ([]selection.Selection, error) {
			next, err := buf.Next(sel.Max())
			if err != nil {
				return nil, err
			}
			return []selection.Selection{selection.New(next)}, nil
		})
	case Replace:
		_ = m.Sels.Erase(m.Buf)
	case OpenLineAbove:
		_ = m.Sels.ApplyMulti(m.Buf, func(buf *buffer.Buffer, sel selection.Selection) ([]selection.Selection, error) {
			lineStart := sel.Min()
			lineStart.Byte = 0
			if _, err := buf.Insert(lineStart, "\n"); err != nil {
				return nil, err
			}
			return []selection.Selection{selection.New(lineStart)}, nil
		})
	case OpenLineBelow:
		_ = m.Sels.ApplyMulti(m.Buf, func(buf *buffer.Buffer, sel selection.Selection) ([]selection.Selection, error) {
			lineLen, err := buf.LineLength(sel.Max().Line)
			if err != nil {
				return nil, err
			}
			eol := sel.Max()
			eol.Byte = lineLen
			at, err := buf.Insert(eol, "\n")
			if err != nil {
				return nil, err
			}
			return []selection.Selection{selection.New(at)}, nil
		})
	}
}

// Disable ends the undo group. On a real exit (tmp=false) of an Append
// session, each selection's cursor shifts one codepoint back, matching
// Kakoune's cursor-stays-on-the-last-typed-character behavior; then the
// InsertEnd hook fires.
func (m *InsertMode) Disable(ctx *Context, tmp bool) {
	if !tmp {
		if m.prep == Append {
			_ = m.Sels.ApplyMulti(m.Buf, func(buf *buffer.Buffer, sel selection.Selection) ([]selection.Selection, error) {
				prev, err := buf.Prev(sel.Cursor)
				if err != nil {
					return nil, err
				}
				return []selection.Selection{{Anchor: prev, Cursor: prev}}, nil
			})
		}
		ctx.runHook(HookInsertEnd, "")
	}
	m.Buf.EndUndoGroup()
}

// HandleKey types, erases, or moves the active selections.
func (m *InsertMode) HandleKey(ctx *Context, ev key.Event) {
	if m.pendingRegister {
		m.pendingRegister = false
		if ev.IsRune() {
			m.insertRegister(ev.Rune, ctx)
		}
		return
	}
	if m.pendingRaw {
		m.pendingRaw = false
		if ev.IsRune() {
			m.typeText(string(ev.Rune))
		}
		return
	}

	if ev.Key == key.KeyEscape {
		return // the caller feeding keys (cmd/vex's dispatch) pops on Escape
	}
	if ev.Modifiers.HasCtrl() && ev.IsRune() {
		switch ev.Rune {
		case 'c':
			return // same as Escape: the caller pops
		case 'r':
			m.pendingRegister = true
			return
		case 'v':
			m.pendingRaw = true
			return
		case 'o':
			m.autocompleteIdle = !m.autocompleteIdle
			return
		}
	}

	switch ev.Key {
	case key.KeyBackspace:
		_ = m.Sels.ApplyMulti(m.Buf, func(buf *buffer.Buffer, sel selection.Selection) ([]selection.Selection, error) {
			prev, err := buf.Prev(sel.Cursor)
			if err != nil {
				return nil, err
			}
			if prev == sel.Cursor {
				return []selection.Selection{sel}, nil
			}
			if _, err := buf.Erase(prev, sel.Cursor); err != nil {
				return nil, err
			}
			return []selection.Selection{{Anchor: prev, Cursor: prev}}, nil
		})
		return
	case key.KeyDelete:
		_ = m.Sels.ApplyMulti(m.Buf, func(buf *buffer.Buffer, sel selection.Selection) ([]selection.Selection, error) {
			next, err := buf.Next(sel.Cursor)
			if err != nil {
				return nil, err
			}
			if next == sel.Cursor {
				return []selection.Selection{sel}, nil
			}
			if _, err := buf.Erase(sel.Cursor, next); err != nil {
				return nil, err
			}
			return []selection.Selection{{Anchor: sel.Cursor, Cursor: sel.Cursor}}, nil
		})
		return
	case key.KeyLeft:
		m.moveEachCursor(func(buf *buffer.Buffer, c coord.BufferCoord) (coord.BufferCoord, error) { return buf.Prev(c) })
		return
	case key.KeyRight:
		m.moveEachCursor(func(buf *buffer.Buffer, c coord.BufferCoord) (coord.BufferCoord, error) { return buf.Next(c) })
		return
	case key.KeyEnter:
		m.typeText("\n")
		return
	}

	if ev.IsRune() && !ev.IsModified() {
		m.typeText(string(ev.Rune))
	}
}

func (m *InsertMode) typeText(s string) {
	_ = m.Sels.ApplyMulti(m.Buf, func(buf *buffer.Buffer, sel selection.Selection) ([]selection.Selection, error) {
		at, err := buf.Insert(sel.Cursor, s)
		if err != nil {
			return nil, err
		}
		return []selection.Selection{{Anchor: at, Cursor: at}}, nil
	})
}

func (m *InsertMode) insertRegister(reg rune, ctx *Context) {
	if ctx.Registers == nil {
		return
	}
	values, err := ctx.Registers.Read(reg)
	if err != nil || len(values) == 0 {
		return
	}
	m.typeText(values[0])
}

func (m *InsertMode) moveEachCursor(step func(buf *buffer.Buffer, c coord.BufferCoord) (coord.BufferCoord, error)) {
	_ = m.Sels.ApplyMulti(m.Buf, func(buf *buffer.Buffer, sel selection.Selection) ([]selection.Selection, error) {
		c, err := step(buf, sel.Cursor)
		if err != nil {
			return nil, err
		}
		return []selection.Selection{{Anchor: c, Cursor: c}}, nil
	})
}
