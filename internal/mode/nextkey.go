package mode

import "github.com/vexedit/vex/internal/key"

// NextKeyMode is a single-shot mode: the next key it receives is handed
// to Callback, then the mode self-pops. Used by things like Kakoune's
// 'g'/'z' goto prefixes or register-selection prompts that need a whole
// mode rather than an inline pending flag.
type NextKeyMode struct {
	Callback func(ctx *Context, ev key.Event)

	machine *Machine
}

// NewNextKeyMode creates a NextKey mode that calls cb with the first key
// it receives, then pops itself off machine.
func NewNextKeyMode(machine *Machine, cb func(ctx *Context, ev key.Event)) *NextKeyMode {
	return &NextKeyMode{Callback: cb, machine: machine}
}

func (m *NextKeyMode) Kind() Kind { return KindNextKey }

func (m *NextKeyMode) Enable(ctx *Context) {}
func (m *NextKeyMode) Disable(ctx *Context, tmp bool) {}

func (m *NextKeyMode) HandleKey(ctx *Context, ev key.Event) {
	if m.Callback != nil {
		m.Callback(ctx, ev)
	}
	m.machine.PopIf(ctx, KindNextKey)
}
