package mode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexedit/vex/internal/buffer"
	"github.com/vexedit/vex/internal/coord"
	"github.com/vexedit/vex/internal/key"
	"github.com/vexedit/vex/internal/mode"
	"github.com/vexedit/vex/internal/selection"
)

type fakeHooks struct {
	fired []string
	param []string
}

func (h *fakeHooks) Run(name, param string, ctx *mode.Context) error {
	h.fired = append(h.fired, name)
	h.param = append(h.param, param)
	return nil
}

type fakeRegisters struct {
	values map[rune][]string
}

func newFakeRegisters() *fakeRegisters { return &fakeRegisters{values: make(map[rune][]string)} }

func (r *fakeRegisters) Read(name rune) ([]string, error) { return r.values[name], nil }
func (r *fakeRegisters) Write(name rune, values []string) { r.values[name] = values }

func rk(r rune) key.Event   { return key.NewRuneEvent(r, key.ModNone) }
func ctrl(r rune) key.Event { return key.NewRuneEvent(r, key.ModCtrl) }

func TestMachinePushPopFiresHook(t *testing.T) {
	hooks := &fakeHooks{}
	normal := mode.NewNormalMode(nil)
	m := mode.NewMachine(normal)
	ctx := mode.NewContext(hooks, nil)

	assert.Equal(t, mode.KindNormal, m.Current().Kind())
	assert.Equal(t, 0, m.Depth())

	insert := mode.NewInsertMode(buffer.New("abc\n"), selection.NewList(coord.BufferCoord{}, 0))
	m.Push(ctx, insert)
	assert.Equal(t, mode.KindInsert, m.Current().Kind())
	assert.Equal(t, 1, m.Depth())
	require.Contains(t, hooks.fired, mode.HookInputModeChange)
	assert.Equal(t, "normal:insert", hooks.param[len(hooks.param)-1])

	require.NoError(t, m.Pop(ctx))
	assert.Equal(t, mode.KindNormal, m.Current().Kind())
	assert.Equal(t, "insert:normal", hooks.param[len(hooks.param)-1])
}

func TestMachinePopRootFails(t *testing.T) {
	m := mode.NewMachine(mode.NewNormalMode(nil))
	ctx := mode.NewContext(nil, nil)
	assert.Error(t, m.Pop(ctx))
}

func TestNormalModeDigitPrefixAndDispatch(t *testing.T) {
	var gotCount int
	var gotReg rune
	km := mode.Keymap{
		"x": func(ctx *mode.Context, count int, register rune) {
			gotCount = count
			gotReg = register
		},
	}
	n := mode.NewNormalMode(km)
	ctx := mode.NewContext(nil, nil)

	n.HandleKey(ctx, rk('1'))
	n.HandleKey(ctx, rk('2'))
	n.HandleKey(ctx, rk('"'))
	n.HandleKey(ctx, rk('a'))
	n.HandleKey(ctx, rk('x'))

	assert.Equal(t, 12, gotCount)
	assert.Equal(t, 'a', gotReg)
}

func TestNormalModeLeadingZeroIsCommand(t *testing.T) {
	called := false
	km := mode.Keymap{"0": func(ctx *mode.Context, count int, register rune) { called = true }}
	n := mode.NewNormalMode(km)
	ctx := mode.NewContext(nil, nil)

	n.HandleKey(ctx, rk('0'))
	assert.True(t, called, "bare 0 with no count accumulated should dispatch as a command")
}

func TestNormalModeMacroRecordAndReplay(t *testing.T) {
	var presses []rune
	km := mode.Keymap{}
	for _, r := range []rune{'x', 'y', 'z'} {
		rr := r
		km[string(rr)] = func(ctx *mode.Context, count int, register rune) { presses = append(presses, rr) }
	}
	n := mode.NewNormalMode(km)
	ctx := mode.NewContext(nil, nil)

	n.HandleKey(ctx, rk('Q'))
	n.HandleKey(ctx, rk('a'))
	require.True(t, n.IsRecording())

	n.HandleKey(ctx, rk('x'))
	n.HandleKey(ctx, rk('y'))

	n.HandleKey(ctx, rk('Q'))
	require.False(t, n.IsRecording())

	assert.Equal(t, []rune{'x', 'y'}, presses)

	presses = nil
	n.HandleKey(ctx, rk('q'))
	n.HandleKey(ctx, rk('a'))

	assert.Equal(t, []rune{'x', 'y'}, presses, "replay should re-trigger the same commands")
}

func TestNormalModeReplayWhileRecordingDoesNotPolluteRecording(t *testing.T) {
	// Register a already holds "x". Record register b while replaying a
	// partway through: b's saved content must be exactly what was typed
	// into b directly, never a's replayed keys.
	var presses []rune
	km := mode.Keymap{"x": func(ctx *mode.Context, count int, register rune) { presses = append(presses, 'x') }}
	n := mode.NewNormalMode(km)
	ctx := mode.NewContext(nil, nil)

	n.HandleKey(ctx, rk('Q'))
	n.HandleKey(ctx, rk('a'))
	n.HandleKey(ctx, rk('x'))
	n.HandleKey(ctx, rk('Q'))
	presses = nil

	n.HandleKey(ctx, rk('Q'))
	n.HandleKey(ctx, rk('b'))
	n.HandleKey(ctx, rk('q'))
	n.HandleKey(ctx, rk('a')) // replays a ("x") while recording into b
	n.HandleKey(ctx, rk('Q'))

	assert.Equal(t, []rune{'x'}, presses, "replaying a should still run its command once")

	presses = nil
	n.HandleKey(ctx, rk('q'))
	n.HandleKey(ctx, rk('b'))
	assert.Empty(t, presses, "b's recording must not have captured a's replayed 'x' keypress")
}

func TestInsertModeTypesAtCursor(t *testing.T) {
	buf := buffer.New("ac\n")
	sels := selection.NewList(coord.BufferCoord{Line: 0, Byte: 1}, buf.Timestamp())
	ins := mode.NewInsertMode(buf, sels)
	ctx := mode.NewContext(nil, nil)

	ins.Enable(ctx)
	ins.HandleKey(ctx, rk('b'))
	ins.Disable(ctx, false)

	line, err := buf.Line(0)
	require.NoError(t, err)
	assert.Equal(t, "abc\n", line)
}

func TestInsertModeAppendEntersAfterAndShiftsBackOnExit(t *testing.T) {
	buf := buffer.New("ac\n")
	sels := selection.NewList(coord.BufferCoord{Line: 0, Byte: 0}, buf.Timestamp())
	ins := mode.NewInsertMode(buf, sels)
	ins.SetPreparation(mode.Append)
	ctx := mode.NewContext(nil, nil)

	ins.Enable(ctx)
	ins.HandleKey(ctx, rk('X'))
	ins.Disable(ctx, false)

	line, err := buf.Line(0)
	require.NoError(t, err)
	assert.Equal(t, "aXc\n", line)
}

func TestInsertModeReplaceErasesSelectionFirst(t *testing.T) {
	buf := buffer.New("abc\n")
	sels := selection.NewList(coord.BufferCoord{Line: 0, Byte: 0}, buf.Timestamp())
	sels.ApplyMulti(buf, func(_ *buffer.Buffer, _ selection.Selection) ([]selection.Selection, error) {
		return []selection.Selection{{
			Anchor: coord.BufferCoord{Line: 0, Byte: 0},
			Cursor: coord.BufferCoord{Line: 0, Byte: 2},
		}}, nil
	})
	ins := mode.NewInsertMode(buf, sels)
	ins.SetPreparation(mode.Replace)
	ctx := mode.NewContext(nil, nil)

	ins.Enable(ctx)
	ins.HandleKey(ctx, rk('z'))
	ins.Disable(ctx, false)

	line, err := buf.Line(0)
	require.NoError(t, err)
	assert.Equal(t, "z\n", line)
}

func TestInsertModeRegisterAndRawInsert(t *testing.T) {
	buf := buffer.New("x\n")
	sels := selection.NewList(coord.BufferCoord{Line: 0, Byte: 0}, buf.Timestamp())
	ins := mode.NewInsertMode(buf, sels)
	regs := newFakeRegisters()
	regs.Write('a', []string{"hi"})
	ctx := mode.NewContext(nil, regs)

	ins.Enable(ctx)
	ins.HandleKey(ctx, ctrl('r'))
	ins.HandleKey(ctx, rk('a'))
	ins.Disable(ctx, false)

	line, err := buf.Line(0)
	require.NoError(t, err)
	assert.Equal(t, "hix\n", line)
}

func TestInsertModeCtrlOTogglesAutocompleteIdle(t *testing.T) {
	buf := buffer.New("x\n")
	sels := selection.NewList(coord.BufferCoord{Line: 0, Byte: 0}, buf.Timestamp())
	ins := mode.NewInsertMode(buf, sels)
	ctx := mode.NewContext(nil, nil)

	ins.Enable(ctx)
	ins.HandleKey(ctx, ctrl('o'))
	ins.HandleKey(ctx, ctrl('o'))
	ins.Disable(ctx, false)

	line, err := buf.Line(0)
	require.NoError(t, err)
	assert.Equal(t, "x\n", line, "Ctrl-O should only toggle state, never type")
}

func TestPromptModeBasicEditingAndFinish(t *testing.T) {
	var result mode.PromptResult
	opts := mode.PromptOptions{
		HistoryKey: "test",
		OnDone:     func(r mode.PromptResult) { result = r },
	}
	history := mode.NewHistoryStore()
	p := mode.NewPromptMode(opts, history)
	ctx := mode.NewContext(nil, nil)

	p.Enable(ctx)
	for _, r := range "helo" {
		p.HandleKey(ctx, rk(r))
	}
	p.HandleKey(ctx, key.Event{Key: key.KeyLeft})
	p.HandleKey(ctx, rk('l'))
	p.HandleKey(ctx, key.Event{Key: key.KeyEnter})

	assert.Equal(t, "hello", result.Line)
	assert.False(t, result.Aborted)
}

func TestPromptModeHistoryDeduplicatesMostRecentLast(t *testing.T) {
	history := mode.NewHistoryStore()
	run := func(line string) {
		var result mode.PromptResult
		opts := mode.PromptOptions{HistoryKey: "k", OnDone: func(r mode.PromptResult) { result = r }}
		p := mode.NewPromptMode(opts, history)
		ctx := mode.NewContext(nil, nil)
		p.Enable(ctx)
		for _, r := range line {
			p.HandleKey(ctx, rk(r))
		}
		p.HandleKey(ctx, key.Event{Key: key.KeyEnter})
		_ = result
	}

	run("first")
	run("second")
	run("first")

	assert.Equal(t, []string{"second", "first"}, history.Entries("k"))
}

func TestPromptModeAbortDropsBlankPrefixedWhenConfigured(t *testing.T) {
	history := mode.NewHistoryStore()
	opts := mode.PromptOptions{HistoryKey: "k", DropBlankPrefixed: true}
	p := mode.NewPromptMode(opts, history)
	ctx := mode.NewContext(nil, nil)

	p.Enable(ctx)
	p.HandleKey(ctx, rk(' '))
	p.HandleKey(ctx, rk('x'))
	p.HandleKey(ctx, key.Event{Key: key.KeyEscape})

	assert.Empty(t, history.Entries("k"))
}

func TestMenuModeMoveAndPick(t *testing.T) {
	var picked mode.MenuChoice
	m := mode.NewMenuMode([]mode.MenuChoice{{Label: "a"}, {Label: "b"}, {Label: "c"}})
	m.OnPick = func(c mode.MenuChoice) { picked = c }
	ctx := mode.NewContext(nil, nil)

	m.Enable(ctx)
	m.HandleKey(ctx, key.Event{Key: key.KeyDown})
	m.HandleKey(ctx, key.Event{Key: key.KeyEnter})

	assert.Equal(t, "b", picked.Label)
}

func TestNextKeyModeSelfPops(t *testing.T) {
	n := mode.NewNormalMode(nil)
	m := mode.NewMachine(n)
	ctx := mode.NewContext(nil, nil)

	var got key.Event
	nk := mode.NewNextKeyMode(m, func(ctx *mode.Context, ev key.Event) { got = ev })
	m.Push(ctx, nk)
	require.Equal(t, mode.KindNextKey, m.Current().Kind())

	m.Current().HandleKey(ctx, rk('g'))

	assert.Equal(t, 'g', got.Rune)
	assert.Equal(t, mode.KindNormal, m.Current().Kind())
}
