// Package hook implements a single named+regex-pattern hook manager:
// bodies are registered under a hook name with a pattern, and every
// body whose pattern matches the param string passed to Run fires,
// in registration order. A hook body never aborts the command that
// triggered it — errors are swallowed and written to internal/debug.
//
// Grounded on Kakoune's HookManager (original_source/src/hook_manager.hh):
// AddHook(name, pattern, body); run_hook matches param against pattern
// via the regex engine, not a string-equality or glob check.
// internal/dispatcher/hook's priority-ordered pre/post dispatch hooks
// (no pattern matching) is the rejected alternative per DESIGN.md —
// only its within-name ordering idea survives, as plain registration
// order.
package hook

import (
	"github.com/vexedit/vex/internal/debug"
	"github.com/vexedit/vex/internal/mode"
	"github.com/vexedit/vex/internal/regex"
)

// Body is one hook action, run with the param that matched its pattern.
type Body func(param string, ctx *mode.Context) error

type entry struct {
	pattern string
	prog    *regex.Program
	body    Body
}

// Manager holds every registered hook, keyed by hook name. Not
// mutex-guarded: reached through exactly one owning Context at a time,
// since this core has no internal mutexes.
type Manager struct {
	byName map[string][]entry
	debug  *debug.Channel
}

// NewManager creates an empty Manager. ch receives swallowed hook-body
// errors; pass nil to use debug.Default().
func NewManager(ch *debug.Channel) *Manager {
	if ch == nil {
		ch = debug.Default()
	}
	return &Manager{byName: make(map[string][]entry), debug: ch}
}

// AddHook registers body under name, to run whenever Run(name, ...)
// is called with a param matching pattern. Returns an error if pattern
// fails to compile.
func (m *Manager) AddHook(name, pattern string, body Body) error {
	prog, err := regex.Compile(pattern)
	if err != nil {
		return err
	}
	m.byName[name] = append(m.byName[name], entry{pattern: pattern, prog: prog, body: body})
	return nil
}

// RemoveHooksMatching removes every hook registered under name whose
// pattern equals namePattern exactly, mirroring Kakoune's
// `remove-hooks <scope> <pattern>` (matched here against the
// registration pattern string, not against a runtime param).
func (m *Manager) RemoveHooksMatching(name, namePattern string) {
	entries := m.byName[name]
	kept := entries[:0]
	for _, e := range entries {
		if e.pattern != namePattern {
			kept = append(kept, e)
		}
	}
	m.byName[name] = kept
}

// Run fires every body registered under name whose pattern matches
// param, in registration order. Implements mode.HookRunner. A body
// error is swallowed and logged to the debug channel; Run itself never
// returns an error to the caller that triggered the hook.
func (m *Manager) Run(name, param string, ctx *mode.Context) error {
	if ctx != nil && ctx.HooksDisabled {
		return nil
	}
	for _, e := range m.byName[name] {
		if !regex.Match(e.prog, []byte(param), regex.FlagNone) {
			continue
		}
		if err := e.body(param, ctx); err != nil {
			m.debug.Logf("hook %q (pattern %q) error: %v", name, e.pattern, err)
		}
	}
	return nil
}
