package buffer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexedit/vex/internal/buffer"
	"github.com/vexedit/vex/internal/coord"
)

func TestEmptyBufferIsOneNewlineLine(t *testing.T) {
	b := buffer.New("")
	assert.EqualValues(t, 1, b.LineCount())
	line, err := b.Line(0)
	require.NoError(t, err)
	assert.Equal(t, "\n", line)
}

// Scenario 1: basic edit/undo/redo round trip.
func TestBasicEditUndoRedo(t *testing.T) {
	b := buffer.New("abc\n")
	at := coord.BufferCoord{Line: 0, Byte: 0}

	end, err := b.Insert(at, "X")
	require.NoError(t, err)
	assert.Equal(t, coord.BufferCoord{Line: 0, Byte: 1}, end)
	line, _ := b.Line(0)
	assert.Equal(t, "Xabc\n", line)

	moved, err := b.Undo()
	require.NoError(t, err)
	assert.True(t, moved)
	line, _ = b.Line(0)
	assert.Equal(t, "abc\n", line)

	moved, err = b.Redo()
	require.NoError(t, err)
	assert.True(t, moved)
	line, _ = b.Line(0)
	assert.Equal(t, "Xabc\n", line)
}

func TestUndoAtRootReportsNotMoved(t *testing.T) {
	b := buffer.New("abc\n")
	moved, err := b.Undo()
	require.NoError(t, err)
	assert.False(t, moved)
}

func TestTimestampStrictlyMonotonic(t *testing.T) {
	b := buffer.New("abc\n")
	ts0 := b.Timestamp()
	_, err := b.Insert(coord.BufferCoord{Line: 0, Byte: 0}, "X")
	require.NoError(t, err)
	ts1 := b.Timestamp()
	assert.Less(t, ts0, ts1)
	_, err = b.Insert(coord.BufferCoord{Line: 0, Byte: 0}, "Y")
	require.NoError(t, err)
	assert.Less(t, ts1, b.Timestamp())
}

func TestEraseAcrossFinalNewlineReinsertsOne(t *testing.T) {
	b := buffer.New("abc\n")
	_, err := b.Erase(coord.BufferCoord{Line: 0, Byte: 0}, coord.BufferCoord{Line: 0, Byte: 4})
	require.NoError(t, err)
	line, err := b.Line(0)
	require.NoError(t, err)
	assert.Equal(t, "\n", line)
}

// Change-log faithfulness: replaying changes_since(ts0) against
// a snapshot reproduces the current content.
func TestChangesSinceFaithfulness(t *testing.T) {
	b := buffer.New("hello world\n")
	ts0 := b.Timestamp()
	unpin := b.PinObserver(ts0)
	defer unpin()

	_, err := b.Erase(coord.BufferCoord{Line: 0, Byte: 5}, coord.BufferCoord{Line: 0, Byte: 6})
	require.NoError(t, err)

	changes := b.ChangesSince(ts0)
	require.Len(t, changes, 1)
	assert.Equal(t, buffer.EraseChange, changes[0].Kind)
	assert.Equal(t, coord.BufferCoord{Line: 0, Byte: 5}, changes[0].Begin)
}

func TestInsertWithoutTrailingNewlineAtEndIsAppended(t *testing.T) {
	b := buffer.New("abc\n")
	end, err := b.Insert(coord.BufferCoord{Line: 0, Byte: 3}, "\ndef")
	require.NoError(t, err)
	line1, _ := b.Line(1)
	assert.Equal(t, "def\n", line1)
	assert.Equal(t, coord.BufferCoord{Line: 1, Byte: 3}, end)
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	b := buffer.New("abc\n")
	var inserts int
	unregister := b.Subscribe(fakeListener{onInsert: func() { inserts++ }})
	_, err := b.Insert(coord.BufferCoord{Line: 0, Byte: 0}, "X")
	require.NoError(t, err)
	assert.Equal(t, 1, inserts)

	unregister()
	_, err = b.Insert(coord.BufferCoord{Line: 0, Byte: 0}, "Y")
	require.NoError(t, err)
	assert.Equal(t, 1, inserts)
}

type fakeListener struct {
	onInsert func()
}

func (f fakeListener) OnInsert(begin, end coord.BufferCoord) { f.onInsert() }
func (f fakeListener) OnErase(begin, end coord.BufferCoord)  {}
