package regex

import "encoding/binary"

// instOp is a CompiledRegex::Op bytecode opcode.
type instOp byte

const (
	instMatch instOp = iota
	instLiteral
	instLiteralIgnoreCase
	instAnyChar
	instMatcher
	instJump
	instSplitPrioParent
	instSplitPrioChild
	instSave
	instLineStart
	instLineEnd
	instWordBoundary
	instNotWordBoundary
	instSubjectBegin
	instSubjectEnd
	instLookAhead
	instNegLookAhead
	instLookBehind
	instNegLookBehind
)

// offsetSize is the byte width of a jump/split target, matching the
// original's `unsigned` CompiledRegex::Offset.
const offsetSize = 4

// Program is a compiled regex: bytecode plus the matcher functions
// referenced by instMatcher instructions and the capture-slot count.
type Program struct {
	bytecode []byte
	matchers []func(rune) bool
	saveCount int
}

// Compile parses and compiles re into a Program ready for VM execution.
func Compile(re string) (*Program, error) {
	parsed, err := parse(re)
	if err != nil {
		return nil, err
	}
	c := &compiler{}
	c.writeSearchPrefix()
	c.compileNode(parsed.ast)
	c.pushOp(instMatch)
	return &Program{bytecode: c.bytecode, matchers: c.matchers, saveCount: parsed.captureCount * 2}, nil
}

// searchPrefixSize is the byte length of the unconditional ".*?" preamble
// written by writeSearchPrefix: instSplitPrioChild + its offset field,
// instAnyChar, instSplitPrioParent + its offset field — i.e. where the
// compiled body (compileNode(parsed.ast)) actually starts. Full-match
// execution (no FlagSearch) starts its initial thread here instead of at
// 0, so it skips the free leading ".*?" rather than anchoring only at the
// end of the subject.
const searchPrefixSize = 2*(1+offsetSize) + 1

type compiler struct {
	bytecode []byte
	matchers []func(rune) bool
}

func (c *compiler) pushOp(o instOp) { c.bytecode = append(c.bytecode, byte(o)) }
func (c *compiler) pushByte(b byte) { c.bytecode = append(c.bytecode, b) }
func (c *compiler) pushCodepoint(r rune) {
	buf := make([]byte, 4)
	n := encodeRune(buf, r)
	c.bytecode = append(c.bytecode, buf[:n]...)
}

func (c *compiler) allocOffset() int {
	pos := len(c.bytecode)
	c.bytecode = append(c.bytecode, make([]byte, offsetSize)...)
	return pos
}

func (c *compiler) setOffset(pos int, value int) {
	binary.LittleEndian.PutUint32(c.bytecode[pos:pos+offsetSize], uint32(value))
}

func (c *compiler) pushString(children []*node, reversed bool) {
	c.pushByte(byte(len(children)))
	if reversed {
		for i := len(children) - 1; i >= 0; i-- {
			c.pushCodepoint(children[i].value)
		}
	} else {
		for _, ch := range children {
			c.pushCodepoint(ch.value)
		}
	}
}

// writeSearchPrefix writes an unconditional ".*?" at program start so
// every exec doubles as a search: plain match execution skips it by
// starting its initial thread at searchPrefixSize. One compile path
// carries this preamble unconditionally rather than branching on a
// separate search-mode parse.
func (c *compiler) writeSearchPrefix() {
	c.pushOp(instSplitPrioChild)
	c.setOffset(c.allocOffset(), searchPrefixSize)
	c.pushOp(instAnyChar)
	c.pushOp(instSplitPrioParent)
	c.setOffset(c.allocOffset(), 1+offsetSize)
}

func (c *compiler) compileNodeInner(n *node) int {
	startPos := len(c.bytecode)

	capture := -1
	if n.op == opAlternation || n.op == opSequence {
		capture = n.capture
	}
	if capture != -1 {
		c.pushOp(instSave)
		c.pushByte(byte(capture * 2))
	}

	var gotoEnd []int
	switch n.op {
	case opLiteral:
		if n.ignoreCase {
			c.pushOp(instLiteralIgnoreCase)
			c.pushCodepoint(toLower(n.value))
		} else {
			c.pushOp(instLiteral)
			c.pushCodepoint(n.value)
		}
	case opAnyChar:
		c.pushOp(instAnyChar)
	case opMatcher:
		c.pushOp(instMatcher)
		c.pushByte(byte(len(c.matchers)))
		c.matchers = append(c.matchers, n.matcher)
	case opSequence:
		for _, ch := range n.children {
			c.compileNode(ch)
		}
	case opAlternation:
		c.pushOp(instSplitPrioParent)
		off := c.allocOffset()
		c.compileNode(n.children[0])
		c.pushOp(instJump)
		gotoEnd = append(gotoEnd, c.allocOffset())
		rightPos := c.compileNode(n.children[1])
		c.setOffset(off, rightPos)
	case opLookAhead:
		c.pushOp(instLookAhead)
		c.pushString(n.children, false)
	case opLookBehind:
		c.pushOp(instLookBehind)
		c.pushString(n.children, true)
	case opNegLookAhead:
		c.pushOp(instNegLookAhead)
		c.pushString(n.children, false)
	case opNegLookBehind:
		c.pushOp(instNegLookBehind)
		c.pushString(n.children, true)
	case opLineStart:
		c.pushOp(instLineStart)
	case opLineEnd:
		c.pushOp(instLineEnd)
	case opWordBoundary:
		c.pushOp(instWordBoundary)
	case opNotWordBoundary:
		c.pushOp(instNotWordBoundary)
	case opSubjectBegin:
		c.pushOp(instSubjectBegin)
	case opSubjectEnd:
		c.pushOp(instSubjectEnd)
	case opResetStart:
		c.pushOp(instSave)
		c.pushByte(0)
	}

	for _, off := range gotoEnd {
		c.setOffset(off, len(c.bytecode))
	}

	if capture != -1 {
		c.pushOp(instSave)
		c.pushByte(byte(capture*2 + 1))
	}
	return startPos
}

func (c *compiler) compileNode(n *node) int {
	pos := len(c.bytecode)
	var gotoEnd []int
	q := n.quantifier

	if q.allowsNone() {
		if q.greedy {
			c.pushOp(instSplitPrioParent)
		} else {
			c.pushOp(instSplitPrioChild)
		}
		gotoEnd = append(gotoEnd, c.allocOffset())
	}

	innerPos := c.compileNodeInner(n)
	for i := 1; i < q.min; i++ {
		innerPos = c.compileNodeInner(n)
	}

	if q.allowsInfiniteRepeat() {
		if q.greedy {
			c.pushOp(instSplitPrioChild)
		} else {
			c.pushOp(instSplitPrioParent)
		}
		c.setOffset(c.allocOffset(), innerPos)
	} else {
		start := q.min
		if start < 1 {
			start = 1
		}
		for i := start; i < q.max; i++ {
			if q.greedy {
				c.pushOp(instSplitPrioParent)
			} else {
				c.pushOp(instSplitPrioChild)
			}
			gotoEnd = append(gotoEnd, c.allocOffset())
			c.compileNodeInner(n)
		}
	}

	for _, off := range gotoEnd {
		c.setOffset(off, len(c.bytecode))
	}
	return pos
}
