package regex

import (
	"unicode"
	"unicode/utf8"
)

func encodeRune(buf []byte, r rune) int { return utf8.EncodeRune(buf, r) }

func toLower(r rune) rune { return unicode.ToLower(r) }

func decodeRune(b []byte) (rune, int) { return utf8.DecodeRune(b) }

func isUnicodeWord(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }
