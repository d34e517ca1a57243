package mode

import "github.com/vexedit/vex/internal/key"

// Command is one normal-mode keymap entry: it receives the accumulated
// numeric prefix and one-shot register, and performs the editor effect.
// Building the actual keymap (binding letters to editor operations) is a
// command-layer concern out of this core's scope; NormalMode only holds
// and dispatches one.
type Command func(ctx *Context, count int, register rune)

// Keymap maps a literal key string to a Command.
type Keymap map[string]Command

// HookNormalKey is fired for every key NormalMode receives, with the
// key's literal string as payload.
const HookNormalKey = "NormalKey"

// NormalMode accumulates a numeric prefix and a one-shot register
// selection, then dispatches through a Keymap. It also owns macro
// record/replay toggling ('Q<letter>' starts/stops recording,
// 'q<letter>' replays), adapted from internal/macro's recorder/player
// split but folded into the mode itself and stripped of its
// goroutine-based async playback.
type NormalMode struct {
	Keymap Keymap
	macros *macroState

	count int
	hasCount bool
	register rune
	wantReg bool
	wantRecord bool
	wantReplay bool
}

// NewNormalMode creates the root Normal mode.
func NewNormalMode(km Keymap) *NormalMode {
	return &NormalMode{Keymap: km, macros: newMacroState()}
}

func (m *NormalMode) Kind() Kind { return KindNormal }

func (m *NormalMode) Enable(ctx *Context) {}
func (m *NormalMode) Disable(ctx *Context, tmp bool) {}

// HandleKey runs the normal-mode decision tree: digit accumulation,
// the `"` register prefix, `Q`/`q` macro toggling, then keymap dispatch.
func (m *NormalMode) HandleKey(ctx *Context, ev key.Event) {
	m.dispatchKey(ctx, ev, true)
}

// dispatchKey is HandleKey's implementation, parameterized on whether
// the key should be appended to an in-progress macro recording. Replayed
// keys pass record=false so they never re-enter the recording stream
// even while a `Q<letter>` recording is active.
func (m *NormalMode) dispatchKey(ctx *Context, ev key.Event, record bool) {
	ctx.runHook(HookNormalKey, ev.String())

	if m.wantReg {
		m.wantReg = false
		if ev.IsRune() {
			m.register = ev.Rune
		}
		return
	}
	if m.wantRecord {
		m.wantRecord = false
		if ev.IsRune() && isLetter(ev.Rune) {
			_ = m.macros.startRecording(ev.Rune)
		}
		return
	}
	if m.wantReplay {
		m.wantReplay = false
		if ev.IsRune() && isLetter(ev.Rune) {
			_ = m.macros.replay(ctx, ev.Rune, m)
		}
		return
	}

	if ev.IsRune() && !ev.IsModified() {
		r := ev.Rune
		if r >= '1' && r <= '9' {
			m.count = m.count*10 + int(r-'0')
			m.hasCount = true
			return
		}
		if r == '0' && m.hasCount {
			m.count *= 10
			return
		}
		switch r {
		case '"':
			m.wantReg = true
			return
		case 'Q':
			if m.macros.isRecording() {
				m.macros.stopRecording()
				return
			}
			m.wantRecord = true
			return
		case 'q':
			m.wantReplay = true
			return
		}
	}

	if record {
		m.macros.record(ev)
	}

	count := m.count
	if !m.hasCount {
		count = 0
	}
	reg := m.register
	m.resetPrefix()

	if m.Keymap != nil {
		if cmd, ok := m.Keymap[ev.String()]; ok {
			cmd(ctx, count, reg)
		}
	}
}

// IsRecording reports whether a macro is currently being recorded.
func (m *NormalMode) IsRecording() bool { return m.macros.isRecording() }

func (m *NormalMode) resetPrefix() {
	m.count = 0
	m.hasCount = false
	m.register = 0
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
