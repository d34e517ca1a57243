// Package key defines the key-event value type the input-mode machine
// (internal/mode) dispatches on: a Key identifying a special key or
// KeyRune, a codepoint for rune events, and the active Modifier bits.
// Spec §6.3's feed_key(modifiers, codepoint, mouse-coord-or-none) triple
// drops its mouse element here — mouse decoding is an explicit non-goal.
package key
