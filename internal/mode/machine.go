package mode

import "fmt"

// HookInputModeChange is the hook name fired on every mode transition,
// with payload "prev:next".
const HookInputModeChange = "InputModeChange"

// Machine is the LIFO mode stack. Normal sits at the bottom and is never
// popped; every other mode is pushed on top of it. Not safe for
// concurrent use — the core runs single-threaded through one Context,
// so this carries no mutex.
type Machine struct {
	normal Mode
	stack  []Mode
}

// NewMachine creates a Machine rooted at normal. normal.Kind() must be
// KindNormal.
func NewMachine(normal Mode) *Machine {
	return &Machine{normal: normal}
}

// Current returns the mode that currently owns keyboard input.
func (m *Machine) Current() Mode {
	if len(m.stack) == 0 {
		return m.normal
	}
	return m.stack[len(m.stack)-1]
}

// Depth returns how many modes are pushed above Normal.
func (m *Machine) Depth() int { return len(m.stack) }

// Push enters a new mode on top of the stack. The previously-current
// mode receives Disable(tmp=true); the new mode receives Enable. Fires
// InputModeChange with "prev:next".
func (m *Machine) Push(ctx *Context, next Mode) {
	prev := m.Current()
	prev.Disable(ctx, true)
	m.stack = append(m.stack, next)
	next.Enable(ctx)
	ctx.runHook(HookInputModeChange, prev.Kind().String()+":"+next.Kind().String())
}

// Pop leaves the current mode, returning to whatever is beneath it.
// Popping Normal (an empty stack) is an error: Normal is the root and
// never exits.
func (m *Machine) Pop(ctx *Context) error {
	if len(m.stack) == 0 {
		return fmt.Errorf("mode: cannot pop the root normal mode")
	}
	cur := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	cur.Disable(ctx, false)
	next := m.Current()
	next.Enable(ctx)
	ctx.runHook(HookInputModeChange, cur.Kind().String()+":"+next.Kind().String())
	return nil
}

// PopIf pops the current mode only if its Kind matches k; used by modes
// that want to self-dismiss without assuming they're still on top
// (e.g. NextKey after consuming its one key).
func (m *Machine) PopIf(ctx *Context, k Kind) bool {
	if m.Current().Kind() != k {
		return false
	}
	_ = m.Pop(ctx)
	return true
}
