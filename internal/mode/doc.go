// Package mode implements the input-mode state machine: a
// strictly LIFO stack of modes where the top mode owns every key event.
// The mode set is closed — Normal, Insert, Prompt, Menu, NextKey —
// there is no open mode registry that lets plugins register arbitrary
// named modes; nothing in this core needs that.
//
// # Transitions
//
// Pushing a mode calls its Enable; popping calls Disable(tmp=false);
// pushing a further mode on top calls the displaced mode's
// Disable(tmp=true) without actually removing it from the stack. Every
// transition fires the InputModeChange hook with a "prev:next" payload.
//
// Normal is the root: it never exits, only gets pushed on top of.
package mode
