// Package uni implements the UTF-8 iteration, display-width and
// word/blank classification primitives the motion and buffer layers
// need: total functions that never panic on malformed input, a
// wcwidth-style column width table, and the two flavors of "word" (Word
// vs WORD) the motion library depends on.
package uni

import (
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"golang.org/x/text/width"
)

// ReplacementRune is yielded for a malformed lead byte; iteration always
// advances by one byte in that case so it stays total.
const ReplacementRune = utf8.RuneError

// NextRune decodes the rune starting at byte offset i in s and returns it
// together with the byte offset immediately after it. A malformed lead
// byte yields ReplacementRune and advances by exactly one byte.
func NextRune(s string, i int) (rune, int) {
	if i >= len(s) {
		return 0, i
	}
	r, size := utf8.DecodeRuneInString(s[i:])
	if size == 0 {
		size = 1
	}
	return r, i + size
}

// PrevRune decodes the rune ending at byte offset i in s and returns it
// together with the byte offset of its first byte.
func PrevRune(s string, i int) (rune, int) {
	if i <= 0 {
		return 0, 0
	}
	r, size := utf8.DecodeLastRuneInString(s[:i])
	if size == 0 {
		size = 1
	}
	return r, i - size
}

// Width returns the display column width of r: 0 for combining marks and
// most control codes, 1 for ordinary codepoints, 2 for wide (CJK, etc.)
// codepoints, following go-runewidth's wcwidth table.
func Width(r rune) int {
	if r == '\t' {
		return 1 // callers expand tabs explicitly using a tabstop option
	}
	return runewidth.RuneWidth(r)
}

// StringWidth returns the total display width of s.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// IsBlank reports whether r is whitespace, including line endings.
func IsBlank(r rune) bool {
	return unicode.IsSpace(r)
}

// IsHorizontalBlank reports whether r is a horizontal whitespace
// codepoint (space, tab) but not a line ending.
func IsHorizontalBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

// IsEOL reports whether r is the line-ending codepoint.
func IsEOL(r rune) bool { return r == '\n' }

// IsPunctuation reports whether r is a punctuation or symbol codepoint.
func IsPunctuation(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// WordExtra is the set of codepoints, beyond alphanumeric and
// underscore, configured as part of a "Word" for a given buffer/option
// scope (Kakoune's extra_word_chars option).
type WordExtra func(r rune) bool

// IsWord reports whether r is part of a Word token: alphanumeric,
// underscore, or one of the caller-supplied extra codepoints.
func IsWord(r rune, extra WordExtra) bool {
	if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	return extra != nil && extra(r)
}

// IsWORD reports whether r is part of a WORD token: any non-blank,
// non-end-of-line codepoint.
func IsWORD(r rune) bool {
	return !IsBlank(r)
}

// NextGrapheme returns the first extended grapheme cluster in s starting
// at byte offset i, together with the byte offset immediately after it.
// Used where a single "visual" codepoint must move by a whole cluster
// (e.g. a base letter plus combining marks, or a flag emoji pair)
// instead of one rune at a time, per uax29's sibling package
// github.com/rivo/uniseg's grapheme-cluster segmentation.
func NextGrapheme(s string, i int) (string, int) {
	if i >= len(s) {
		return "", i
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s[i:], -1)
	return cluster, i + len(cluster)
}

// IsFullwidth reports whether r renders in two display columns under
// East Asian Width rules (golang.org/x/text/width), distinguishing the
// "ambiguous" class runewidth's table treats as single-width by default
// from genuinely wide/fullwidth codepoints.
func IsFullwidth(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	default:
		return false
	}
}

// WordBoundaries splits text into word-class segments using Unicode text
// segmentation (UAX #29), giving multi-codepoint grapheme-aware
// boundaries (e.g. the boundary between an emoji cluster and following
// text). IsWord and IsWORD classify single codepoints and do not use it.
// Returned offsets are byte offsets into text.
func WordBoundaries(text string) []int {
	var bounds []int
	seg := words.NewSegmenter([]byte(text))
	off := 0
	for seg.Next() {
		bounds = append(bounds, off)
		off += len(seg.Value())
	}
	bounds = append(bounds, off)
	return bounds
}
