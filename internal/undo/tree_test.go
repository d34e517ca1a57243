package undo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vexedit/vex/internal/undo"
)

type label string

func (l label) Inverse() undo.Modification { return label("inverse(" + string(l) + ")") }

func commit(t *undo.Tree, l label) *undo.Node {
	return t.Commit([]undo.Modification{l})
}

func TestBranchingRedoFollowsMostRecentChild(t *testing.T) {
	tr := undo.NewTree()
	commit(tr, "A")
	nodeAfterA := tr.Current()
	commit(tr, "B")

	mods, ok := tr.Undo()
	assert.True(t, ok)
	assert.Equal(t, []undo.Modification{label("inverse(B)")}, mods)
	assert.Same(t, nodeAfterA, tr.Current())

	commit(tr, "C")
	nodeAfterC := tr.Current()

	mods, ok = tr.Undo()
	assert.True(t, ok)
	assert.Equal(t, []undo.Modification{label("inverse(C)")}, mods)
	assert.Same(t, nodeAfterA, tr.Current())

	mods, ok = tr.Redo()
	assert.True(t, ok)
	assert.Equal(t, []undo.Modification{label("C")}, mods)
	assert.Same(t, nodeAfterC, tr.Current())
}

func TestUndoAtRootDoesNotMove(t *testing.T) {
	tr := undo.NewTree()
	mods, ok := tr.Undo()
	assert.False(t, ok)
	assert.Nil(t, mods)
}

func TestRedoAtLeafDoesNotMove(t *testing.T) {
	tr := undo.NewTree()
	commit(tr, "A")
	mods, ok := tr.Redo()
	assert.False(t, ok)
	assert.Nil(t, mods)
}

func TestMultiModGroupInvertsInReverseOrder(t *testing.T) {
	tr := undo.NewTree()
	tr.Commit([]undo.Modification{label("1"), label("2"), label("3")})
	mods, ok := tr.Undo()
	assert.True(t, ok)
	assert.Equal(t, []undo.Modification{
		label("inverse(3)"), label("inverse(2)"), label("inverse(1)"),
	}, mods)
}
