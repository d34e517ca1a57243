package option

import "fmt"

// Scope is one node in the option parent chain (global, per-buffer,
// per-window). Get walks to the parent on a local miss; Set always
// writes locally, shadowing whatever the parent has, matching
// Kakoune's per-buffer/per-window option overrides
// (original_source/src/option_manager.hh).
type Scope struct {
	parent *Scope
	values map[string]Value
}

func newScope(parent *Scope) *Scope {
	return &Scope{parent: parent, values: make(map[string]Value)}
}

// NewChildScope creates a Scope whose Get falls through to parent on a
// local miss. parent must not be nil — only Registry.NewGlobalScope
// creates a root.
func NewChildScope(parent *Scope) *Scope {
	return newScope(parent)
}

// Get returns the option's effective value: the local override if Set
// was called on this Scope, else the nearest ancestor's value. Returns
// ok=false if name was never set anywhere in the chain.
func (s *Scope) Get(name string) (Value, bool) {
	for n := s; n != nil; n = n.parent {
		if v, ok := n.values[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// Set writes name locally on this Scope, shadowing any ancestor value.
// It does not validate against a Registry schema — callers that have
// one should call Schema.Validate first.
func (s *Scope) Set(name string, v Value) {
	s.values[name] = v
}

// Unset removes name's local override, so Get falls through to the
// parent again. A no-op if name has no local override.
func (s *Scope) Unset(name string) {
	delete(s.values, name)
}

// HasLocal reports whether name has an override set directly on this
// Scope, as opposed to being inherited from a parent.
func (s *Scope) HasLocal(name string) bool {
	_, ok := s.values[name]
	return ok
}

// MustGet returns name's effective value or panics, for call sites that
// already validated the option exists (e.g. right after NewGlobalScope
// seeded it from a Registry).
func (s *Scope) MustGet(name string) Value {
	v, ok := s.Get(name)
	if !ok {
		panic(fmt.Sprintf("option %q has no value in this scope chain", name))
	}
	return v
}
