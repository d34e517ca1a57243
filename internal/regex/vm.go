package regex

import "encoding/binary"

// ExecFlags mirrors Kakoune's RegexExecFlags bitset:
// the caller's view into the subject outside the matched range, and
// what kind of result is wanted.
type ExecFlags uint

const (
	FlagNone ExecFlags = 0
	// FlagSearch asks for a substring match anywhere in the subject,
	// rather than requiring the whole subject to match.
	FlagSearch ExecFlags = 1 << iota
	FlagNotBeginOfLine
	FlagNotEndOfLine
	FlagNotBeginOfWord
	FlagNotEndOfWord
	FlagNotBeginOfSubject
	FlagNotInitialNull
	// FlagAnyMatch stops at the first match found instead of continuing
	// to find the overall-longest one; set by Match/Search, cleared by
	// FindLongest.
	FlagAnyMatch
	// FlagNoSaves disables capture tracking entirely.
	FlagNoSaves
)

// saves is a refcounted, copy-on-write capture-slot vector: many
// threads can share one until a Save instruction forces a private copy.
type saves struct {
	refcount int
	pos      []int // byte offsets into the subject; -1 means unset
}

func newSaves(count int, copyFrom []int) *saves {
	pos := make([]int, count)
	if copyFrom != nil {
		copy(pos, copyFrom)
	} else {
		for i := range pos {
			pos[i] = -1
		}
	}
	return &saves{refcount: 1, pos: pos}
}

type thread struct {
	inst  int
	saves *saves
}

// VM executes one compiled Program against one subject. Not safe for
// concurrent use; create one per Exec call (or reuse sequentially).
type VM struct {
	prog    *Program
	subject []byte
	flags   ExecFlags

	captures *saves
}

func NewVM(p *Program) *VM { return &VM{prog: p} }

func (vm *VM) release(s *saves) {
	if s == nil {
		return
	}
	s.refcount--
}

type stepResult int

const (
	stepConsumed stepResult = iota
	stepMatched
	stepFailed
)

// step runs thread th until it consumes a codepoint, matches, or fails,
// mutating th.inst in place and pushing any spawned sibling threads onto
// threads).
func (vm *VM) step(pos int, atEnd bool, cp rune, th *thread, threads *[]thread) stepResult {
	code := vm.prog.bytecode
	for {
		o := instOp(code[th.inst])
		th.inst++
		switch o {
		case instLiteral:
			r, n := decodeRune(code[th.inst:])
			th.inst += n
			if r == cp {
				return stepConsumed
			}
			return stepFailed
		case instLiteralIgnoreCase:
			r, n := decodeRune(code[th.inst:])
			th.inst += n
			if r == toLower(cp) {
				return stepConsumed
			}
			return stepFailed
		case instAnyChar:
			return stepConsumed
		case instJump:
			th.inst = int(binary.LittleEndian.Uint32(code[th.inst : th.inst+offsetSize]))
		case instSplitPrioParent:
			parent := th.inst + offsetSize
			child := int(binary.LittleEndian.Uint32(code[th.inst : th.inst+offsetSize]))
			th.inst = parent
			if th.saves != nil {
				th.saves.refcount++
			}
			*threads = append(*threads, thread{inst: child, saves: th.saves})
		case instSplitPrioChild:
			parent := th.inst + offsetSize
			child := int(binary.LittleEndian.Uint32(code[th.inst : th.inst+offsetSize]))
			th.inst = child
			if th.saves != nil {
				th.saves.refcount++
			}
			*threads = append(*threads, thread{inst: parent, saves: th.saves})
		case instSave:
			idx := int(code[th.inst])
			th.inst++
			if th.saves == nil {
				break
			}
			if th.saves.refcount > 1 {
				th.saves.refcount--
				th.saves = newSaves(vm.prog.saveCount, th.saves.pos)
			}
			th.saves.pos[idx] = pos
		case instMatcher:
			id := int(code[th.inst])
			th.inst++
			if vm.prog.matchers[id](cp) {
				return stepConsumed
			}
			return stepFailed
		case instLineStart:
			if !vm.isLineStart(pos, atEnd) {
				return stepFailed
			}
		case instLineEnd:
			if !vm.isLineEnd(pos, atEnd, cp) {
				return stepFailed
			}
		case instWordBoundary:
			if !vm.isWordBoundary(pos, atEnd) {
				return stepFailed
			}
		case instNotWordBoundary:
			if vm.isWordBoundary(pos, atEnd) {
				return stepFailed
			}
		case instSubjectBegin:
			if pos != 0 || vm.flags&FlagNotBeginOfSubject != 0 {
				return stepFailed
			}
		case instSubjectEnd:
			if !atEnd {
				return stepFailed
			}
		case instLookAhead, instNegLookAhead:
			count := int(code[th.inst])
			th.inst++
			patternStart := th.inst
			it := pos
			remaining := count
			cursor := patternStart
			for remaining > 0 && it < len(vm.subject) {
				r, n := decodeRune(vm.subject[it:])
				want, wn := decodeRune(code[cursor:])
				if r != want {
					break
				}
				it += n
				cursor += wn
				remaining--
			}
			if (o == instLookAhead && remaining != 0) || (o == instNegLookAhead && remaining == 0) {
				return stepFailed
			}
			th.inst = skipCodepoints(code, patternStart, count)
		case instLookBehind, instNegLookBehind:
			count := int(code[th.inst])
			th.inst++
			patternStart := th.inst
			it := pos
			remaining := count
			cursor := patternStart
			for remaining > 0 && it > 0 {
				r, n := decodeRunePrev(vm.subject[:it])
				want, wn := decodeRune(code[cursor:])
				if r != want {
					break
				}
				it -= n
				cursor += wn
				remaining--
			}
			if (o == instLookBehind && remaining != 0) || (o == instNegLookBehind && remaining == 0) {
				return stepFailed
			}
			th.inst = skipCodepoints(code, patternStart, count)
		case instMatch:
			return stepMatched
		}
	}
}

func skipCodepoints(code []byte, at int, count int) int {
	for i := 0; i < count; i++ {
		_, n := decodeRune(code[at:])
		at += n
	}
	return at
}

func decodeRunePrev(b []byte) (rune, int) {
	if len(b) == 0 {
		return 0, 0
	}
	i := len(b) - 1
	for i > 0 && isUTF8Continuation(b[i]) {
		i--
	}
	r, n := decodeRune(b[i:])
	return r, n
}

func isUTF8Continuation(b byte) bool { return b&0xC0 == 0x80 }

func (vm *VM) isLineStart(pos int, atEnd bool) bool {
	if pos == 0 && vm.flags&FlagNotBeginOfLine == 0 {
		return true
	}
	if pos == 0 {
		return false
	}
	r, _ := decodeRunePrev(vm.subject[:pos])
	return r == '\n'
}

func (vm *VM) isLineEnd(pos int, atEnd bool, cp rune) bool {
	if atEnd && vm.flags&FlagNotEndOfLine == 0 {
		return true
	}
	return cp == '\n'
}

func (vm *VM) isWordBoundary(pos int, atEnd bool) bool {
	if pos == 0 && vm.flags&FlagNotBeginOfWord == 0 {
		return true
	}
	if atEnd && vm.flags&FlagNotEndOfWord == 0 {
		return true
	}
	var before, after rune
	if pos > 0 {
		before, _ = decodeRunePrev(vm.subject[:pos])
	}
	if !atEnd {
		after, _ = decodeRune(vm.subject[pos:])
	}
	return isWordRune(before) != isWordRune(after)
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r > 127 && isUnicodeWord(r)
}
