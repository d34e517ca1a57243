package buffer

import (
	"github.com/vexedit/vex/internal/coord"
	"github.com/vexedit/vex/internal/undo"
)

// ChangeKind distinguishes the two primitive modifications.
type ChangeKind int

const (
	InsertChange ChangeKind = iota
	EraseChange
)

func (k ChangeKind) String() string {
	if k == InsertChange {
		return "insert"
	}
	return "erase"
}

// Change is the record of one applied primitive. End is always the far
// coordinate of the modified span measured before it was applied: for
// Insert, the first coordinate past the inserted text; for Erase, the
// original end of the erased range (Begin alone would collapse the
// erased span to zero width and make selection remapping an identity).
type Change struct {
	Kind          ChangeKind
	Begin         coord.BufferCoord
	End           coord.BufferCoord
	AtEndOfBuffer bool
}

// Modification is the undo-tree payload: an invertible primitive edit.
// Insert and Erase are mirror images of each other — Text is always the
// bytes that moved, Inverse swaps which direction they move.
type Modification struct {
	Kind ChangeKind
	At   coord.BufferCoord
	Text string
}

// Inverse implements undo.Modification: an Insert's inverse is erasing
// exactly the text it inserted, and vice versa.
func (m Modification) Inverse() undo.Modification {
	if m.Kind == InsertChange {
		return Modification{Kind: EraseChange, At: m.At, Text: m.Text}
	}
	return Modification{Kind: InsertChange, At: m.At, Text: m.Text}
}
