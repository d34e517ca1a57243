// Package motion implements the word/line/bracket/char/regex selectors
// that map one selection to another: the bulk of what a
// normal-mode key handler dispatches into.
//
// Grounded on original_source/src/selectors.cc's simpler iterator-based
// selectors (select_to_next_word, select_line,...), generalized from
// single-byte ASCII classification to internal/uni's codepoint-aware
// Word/WORD predicates, and extended with the regex-driven selectors
// (select_next_match, select_all_matches, split_selection) backed by
// internal/regex.
package motion

import (
	"github.com/vexedit/vex/internal/buffer"
	"github.com/vexedit/vex/internal/coord"
	"github.com/vexedit/vex/internal/regex"
	"github.com/vexedit/vex/internal/selection"
	"github.com/vexedit/vex/internal/uni"
)

type classify func(r rune) bool

func isWord(r rune) bool { return uni.IsWord(r, nil) }
func isWORD(r rune) bool { return uni.IsWORD(r) }

// atEnd reports whether c is the buffer's one-past-the-last coordinate.
func atEnd(buf *buffer.Buffer, c coord.BufferCoord) bool {
	next, _ := buf.Next(c)
	return next == c
}

func atBegin(c coord.BufferCoord) bool { return c.Line == 0 && c.Byte == 0 }

// skipWhile advances c forward while pred holds on the character at c,
// stopping at end of buffer.
func skipWhile(buf *buffer.Buffer, c coord.BufferCoord, pred classify) coord.BufferCoord {
	for !atEnd(buf, c) {
		r, err := buf.CharAt(c)
		if err != nil || !pred(r) {
			break
		}
		c, _ = buf.Next(c)
	}
	return c
}

func skipWhileBackward(buf *buffer.Buffer, c coord.BufferCoord, pred classify) coord.BufferCoord {
	for !atBegin(c) {
		prev, _ := buf.Prev(c)
		r, err := buf.CharAt(prev)
		if err != nil || !pred(r) {
			break
		}
		c = prev
	}
	return c
}

// selectToNextWord mirrors select_to_next_word: skip the word under the
// cursor, then skip the following run of non-word characters.
func selectToNextWord(buf *buffer.Buffer, from coord.BufferCoord, isW classify) coord.BufferCoord {
	end := skipWhile(buf, from, isW)
	end = skipWhile(buf, end, func(r rune) bool { return !isW(r) })
	return end
}

// selectToNextWordEnd mirrors select_to_next_word_end: skip non-word
// characters, then skip the following word.
func selectToNextWordEnd(buf *buffer.Buffer, from coord.BufferCoord, isW classify) coord.BufferCoord {
	end := skipWhile(buf, from, func(r rune) bool { return !isW(r) })
	end = skipWhile(buf, end, isW)
	return end
}

// selectToPreviousWord mirrors select_to_previous_word.
func selectToPreviousWord(buf *buffer.Buffer, from coord.BufferCoord, isW classify) coord.BufferCoord {
	end := skipWhileBackward(buf, from, func(r rune) bool { return !isW(r) })
	end = skipWhileBackward(buf, end, isW)
	return end
}

func endExclusiveToInclusive(buf *buffer.Buffer, anchor, end coord.BufferCoord) selection.Selection {
	if end == anchor {
		return selection.Selection{Anchor: anchor, Cursor: anchor}
	}
	last, _ := buf.Prev(end)
	return selection.Selection{Anchor: anchor, Cursor: last}
}

// WordForward moves to the start of the next Word, crossing
// word/non-word boundaries and blank runs.
func WordForward(buf *buffer.Buffer, sel selection.Selection) (selection.Selection, error) {
	return wordMotion(buf, sel, selectToNextWord, isWord)
}

func WordForwardEnd(buf *buffer.Buffer, sel selection.Selection) (selection.Selection, error) {
	return wordMotion(buf, sel, selectToNextWordEnd, isWord)
}

func WordBackward(buf *buffer.Buffer, sel selection.Selection) (selection.Selection, error) {
	return wordMotionBackward(buf, sel, selectToPreviousWord, isWord)
}

func WORDForward(buf *buffer.Buffer, sel selection.Selection) (selection.Selection, error) {
	return wordMotion(buf, sel, selectToNextWord, isWORD)
}

func WORDForwardEnd(buf *buffer.Buffer, sel selection.Selection) (selection.Selection, error) {
	return wordMotion(buf, sel, selectToNextWordEnd, isWORD)
}

func WORDBackward(buf *buffer.Buffer, sel selection.Selection) (selection.Selection, error) {
	return wordMotionBackward(buf, sel, selectToPreviousWord, isWORD)
}

func wordMotion(buf *buffer.Buffer, sel selection.Selection, step func(*buffer.Buffer, coord.BufferCoord, classify) coord.BufferCoord, isW classify) (selection.Selection, error) {
	from := sel.Cursor
	end := step(buf, from, isW)
	return endExclusiveToInclusive(buf, from, end), nil
}

func wordMotionBackward(buf *buffer.Buffer, sel selection.Selection, step func(*buffer.Buffer, coord.BufferCoord, classify) coord.BufferCoord, isW classify) (selection.Selection, error) {
	from := sel.Cursor
	end := step(buf, from, isW)
	return selection.Selection{Anchor: from, Cursor: end}, nil
}

// SelectLine mirrors select_line: the whole line containing the
// cursor, including its trailing newline.
func SelectLine(buf *buffer.Buffer, sel selection.Selection) (selection.Selection, error) {
	line := sel.Cursor.Line
	length, err := buf.LineLength(line)
	if err != nil {
		return selection.Selection{}, err
	}
	begin := coord.BufferCoord{Line: line, Byte: 0}
	end := coord.BufferCoord{Line: line, Byte: length}
	if length == 0 {
		end = begin
	} else {
		last, _ := buf.Prev(coord.BufferCoord{Line: line, Byte: length})
		end = last
	}
	return selection.Selection{Anchor: begin, Cursor: end}, nil
}

// SelectToEOL mirrors select_to_eol: from the cursor to the last
// character of its line (exclusive of the newline).
func SelectToEOL(buf *buffer.Buffer, sel selection.Selection) (selection.Selection, error) {
	line := sel.Cursor.Line
	length, err := buf.LineLength(line)
	if err != nil {
		return selection.Selection{}, err
	}
	if length <= 1 {
		return selection.Selection{Anchor: sel.Cursor, Cursor: sel.Cursor}, nil
	}
	last, _ := buf.Prev(coord.BufferCoord{Line: line, Byte: length - 1})
	if last.Less(sel.Cursor) {
		last = sel.Cursor
	}
	return selection.Selection{Anchor: sel.Cursor, Cursor: last}, nil
}

// SelectToChar mirrors select_to: extend the selection to the count'th
// occurrence of c after the cursor, inclusive or exclusive of c itself.
func SelectToChar(buf *buffer.Buffer, sel selection.Selection, c rune, count int, inclusive bool) (selection.Selection, error) {
	pos := sel.Cursor
	found := pos
	for i := 0; i < count; i++ {
		next, err := findCharForward(buf, found, c)
		if err != nil {
			return selection.Selection{}, err
		}
		found = next
	}
	if !inclusive {
		prev, _ := buf.Prev(found)
		return selection.Selection{Anchor: sel.Cursor, Cursor: prev}, nil
	}
	return selection.Selection{Anchor: sel.Cursor, Cursor: found}, nil
}

func findCharForward(buf *buffer.Buffer, from coord.BufferCoord, c rune) (coord.BufferCoord, error) {
	cur, err := buf.Next(from)
	if err != nil {
		return from, err
	}
	for !atEnd(buf, cur) {
		r, err := buf.CharAt(cur)
		if err != nil {
			return cur, err
		}
		if r == c {
			return cur, nil
		}
		cur, _ = buf.Next(cur)
	}
	return cur, nil
}

// SelectMatching mirrors select_matching: jump to the character's
// partner bracket, selecting the span between them inclusively. Not a
// match (or the cursor isn't on a bracket) returns the selection
// unchanged.
func SelectMatching(buf *buffer.Buffer, sel selection.Selection) (selection.Selection, error) {
	pairs := map[rune]rune{'(': ')', '[': ']', '{': '}', '<': '>'}
	reversePairs := map[rune]rune{')': '(', ']': '[', '}': '{', '>': '<'}

	cur, err := buf.CharAt(sel.Cursor)
	if err != nil {
		return sel, nil
	}
	if closer, ok := pairs[cur]; ok {
		end, found, err := scanForMatch(buf, sel.Cursor, cur, closer, true)
		if err != nil {
			return selection.Selection{}, err
		}
		if !found {
			return sel, nil
		}
		return selection.Selection{Anchor: sel.Cursor, Cursor: end}, nil
	}
	if opener, ok := reversePairs[cur]; ok {
		begin, found, err := scanForMatch(buf, sel.Cursor, cur, opener, false)
		if err != nil {
			return selection.Selection{}, err
		}
		if !found {
			return sel, nil
		}
		return selection.Selection{Anchor: sel.Cursor, Cursor: begin}, nil
	}
	return sel, nil
}

func scanForMatch(buf *buffer.Buffer, from coord.BufferCoord, open, closeCh rune, forward bool) (coord.BufferCoord, bool, error) {
	depth := 0
	cur := from
	for {
		var next coord.BufferCoord
		var err error
		if forward {
			next, err = buf.Next(cur)
		} else {
			next, err = buf.Prev(cur)
		}
		if err != nil {
			return cur, false, err
		}
		if next == cur {
			return cur, false, nil
		}
		cur = next
		r, err := buf.CharAt(cur)
		if err != nil {
			return cur, false, err
		}
		switch r {
		case open:
			depth++
		case closeCh:
			if depth == 0 {
				return cur, true, nil
			}
			depth--
		}
	}
}

// SplitIntoLines mirrors select_whole_lines: break one selection into
// one selection per buffer line it spans.
func SplitIntoLines(buf *buffer.Buffer, sel selection.Selection) ([]selection.Selection, error) {
	min, max := sel.Min(), sel.Max()
	var out []selection.Selection
	for line := min.Line; line <= max.Line; line++ {
		length, err := buf.LineLength(line)
		if err != nil {
			return nil, err
		}
		begin := coord.BufferCoord{Line: line, Byte: 0}
		end := begin
		if length > 0 {
			end, _ = buf.Prev(coord.BufferCoord{Line: line, Byte: length})
		}
		out = append(out, selection.Selection{Anchor: begin, Cursor: end})
	}
	return out, nil
}

// SelectNextMatch mirrors select_next_match: search forward from the
// cursor for re, selecting the whole match.
func SelectNextMatch(buf *buffer.Buffer, sel selection.Selection, re *regex.Program) (selection.Selection, error) {
	base, _ := buf.Next(sel.Max())
	text, err := buf.ContentRange(base, endOfBuffer(buf))
	if err != nil {
		return selection.Selection{}, err
	}
	result, ok := regex.SearchCaptures(re, []byte(text), regex.FlagNone)
	if !ok {
		return sel, nil
	}
	b, e, _ := result.Group(0)
	begin := advanceBytes(buf, base, b)
	end := advanceBytes(buf, base, e)
	last, _ := buf.Prev(end)
	return selection.Selection{Anchor: begin, Cursor: last, Captures: capturedStrings(text, result)}, nil
}

// SelectAllMatches mirrors select_all_matches: every non-overlapping
// match of re within sel becomes its own selection.
func SelectAllMatches(buf *buffer.Buffer, sel selection.Selection, re *regex.Program) ([]selection.Selection, error) {
	return matchesWithin(buf, sel, re, false)
}

// SplitSelection mirrors split_selection: the complement of
// SelectAllMatches — the spans between consecutive separator matches.
func SplitSelection(buf *buffer.Buffer, sel selection.Selection, re *regex.Program) ([]selection.Selection, error) {
	return matchesWithin(buf, sel, re, true)
}

func matchesWithin(buf *buffer.Buffer, sel selection.Selection, re *regex.Program, invert bool) ([]selection.Selection, error) {
	end, _ := buf.Next(sel.Max())
	text, err := buf.ContentRange(sel.Min(), end)
	if err != nil {
		return nil, err
	}
	data := []byte(text)

	type span struct{ begin, end int }
	var matches []span
	offset := 0
	for offset <= len(data) {
		result, ok := regex.SearchCaptures(re, data[offset:], regex.FlagNone)
		if !ok {
			break
		}
		b, e, _ := result.Group(0)
		matches = append(matches, span{offset + b, offset + e})
		if e == b {
			offset += b + 1
		} else {
			offset += e
		}
	}

	var spans []span
	if !invert {
		spans = matches
	} else {
		cursor := 0
		for _, m := range matches {
			if m.begin > cursor {
				spans = append(spans, span{cursor, m.begin})
			}
			cursor = m.end
		}
		if cursor < len(data) {
			spans = append(spans, span{cursor, len(data)})
		}
	}

	var out []selection.Selection
	for _, s := range spans {
		if s.begin == s.end {
			continue
		}
		begin := advanceBytes(buf, sel.Min(), s.begin)
		e := advanceBytes(buf, sel.Min(), s.end)
		last, _ := buf.Prev(e)
		out = append(out, selection.Selection{Anchor: begin, Cursor: last})
	}
	return out, nil
}

func capturedStrings(text string, r regex.Result) []string {
	n := len(r.Captures) / 2
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		b, e, ok := r.Group(i)
		if !ok {
			out = append(out, "")
			continue
		}
		out = append(out, text[b:e])
	}
	return out
}

func endOfBuffer(buf *buffer.Buffer) coord.BufferCoord {
	last := coord.LineCount(buf.LineCount() - 1)
	length, _ := buf.LineLength(last)
	return coord.BufferCoord{Line: last, Byte: length}
}

func advanceBytes(buf *buffer.Buffer, from coord.BufferCoord, n int) coord.BufferCoord {
	c, _ := buf.OffsetCoord(from, n, buffer.DeltaByte)
	return c
}
