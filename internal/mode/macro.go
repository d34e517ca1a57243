package mode

import (
	"github.com/vexedit/vex/internal/coreerr"
	"github.com/vexedit/vex/internal/key"
)

// macroState is the recorder and player behind NormalMode's `Q`/`q`
// toggling, adapted from internal/macro's Recorder/Player split
// (recorder.go, player.go) but collapsed into the mode package and
// stripped of its goroutine-based async playback: this core runs
// single-threaded through one owning Context, so replay is a plain
// synchronous loop rather than Player.PlayAsync's cancellable goroutine.
type macroState struct {
	recording bool
	register rune
	events []key.Event
	registers map[rune][]key.Event
	replaying map[rune]bool
}

func newMacroState() *macroState {
	return &macroState{
		registers: make(map[rune][]key.Event),
		replaying: make(map[rune]bool),
	}
}

func (s *macroState) isRecording() bool { return s.recording }

func (s *macroState) startRecording(reg rune) error {
	if s.recording {
		return coreerr.Runtimef("already recording to register %c", s.register)
	}
	s.recording = true
	s.register = reg
	s.events = nil
	return nil
}

func (s *macroState) stopRecording() {
	if !s.recording {
		return
	}
	s.recording = false
	saved := make([]key.Event, len(s.events))
	copy(saved, s.events)
	s.registers[s.register] = saved
	s.events = nil
}

// record appends ev to the in-progress recording, if any.
func (s *macroState) record(ev key.Event) {
	if s.recording {
		s.events = append(s.events, ev)
	}
}

// replay feeds register's recorded keys back through normal, bypassing
// the recording stream: replayed keys do not re-enter the recording
// stream. A register already mid-replay — directly or via a nested `q`
// inside itself — is rejected rather than looping forever.
func (s *macroState) replay(ctx *Context, register rune, normal *NormalMode) error {
	if s.replaying[register] {
		return coreerr.Runtimef("recursive macro detected in register %c", register)
	}
	events := s.registers[register]
	if len(events) == 0 {
		return coreerr.Runtimef("empty register: %c", register)
	}
	s.replaying[register] = true
	defer delete(s.replaying, register)
	for _, ev := range events {
		normal.dispatchKey(ctx, ev, false)
	}
	return nil
}
