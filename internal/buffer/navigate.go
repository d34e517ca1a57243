package buffer

import (
	"github.com/vexedit/vex/internal/coord"
	"github.com/vexedit/vex/internal/coreerr"
	"github.com/vexedit/vex/internal/uni"
)

// CharAt returns the codepoint at c.
func (b *Buffer) CharAt(c coord.BufferCoord) (rune, error) {
	off, err := b.offsetOf(c)
	if err != nil {
		return 0, err
	}
	if int(off) >= len(b.content) {
		return 0, coreerr.Runtimef("coord %s is at end of buffer", c)
	}
	r, _ := uni.NextRune(b.content, int(off))
	return r, nil
}

// Next returns the coordinate of the codepoint following c.
func (b *Buffer) Next(c coord.BufferCoord) (coord.BufferCoord, error) {
	off, err := b.offsetOf(c)
	if err != nil {
		return coord.BufferCoord{}, err
	}
	if int(off) >= len(b.content) {
		return c, nil
	}
	_, next := uni.NextRune(b.content, int(off))
	return b.coordOf(coord.ByteCount(next)), nil
}

// Prev returns the coordinate of the codepoint preceding c.
func (b *Buffer) Prev(c coord.BufferCoord) (coord.BufferCoord, error) {
	off, err := b.offsetOf(c)
	if err != nil {
		return coord.BufferCoord{}, err
	}
	if off == 0 {
		return c, nil
	}
	_, prev := uni.PrevRune(b.content, int(off))
	return b.coordOf(coord.ByteCount(prev)), nil
}

// DeltaKind selects the unit OffsetCoord moves by.
type DeltaKind int

const (
	DeltaChar DeltaKind = iota
	DeltaLine
	DeltaByte
)

// OffsetCoord moves c by delta units of kind, clamping into the buffer.
func (b *Buffer) OffsetCoord(c coord.BufferCoord, delta int, kind DeltaKind) (coord.BufferCoord, error) {
	switch kind {
	case DeltaLine:
		line := int(c.Line) + delta
		if line < 0 {
			line = 0
		}
		if line >= len(b.lineStarts) {
			line = len(b.lineStarts) - 1
		}
		lineLen, err := b.LineLength(coord.LineCount(line))
		if err != nil {
			return coord.BufferCoord{}, err
		}
		byteOff := c.Byte
		if byteOff > lineLen {
			byteOff = lineLen
		}
		return coord.BufferCoord{Line: coord.LineCount(line), Byte: byteOff}, nil
	case DeltaByte:
		off, err := b.offsetOf(c)
		if err != nil {
			return coord.BufferCoord{}, err
		}
		newOff := int(off) + delta
		if newOff < 0 {
			newOff = 0
		}
		if newOff > len(b.content) {
			newOff = len(b.content)
		}
		return b.coordOf(coord.ByteCount(newOff)), nil
	default: // DeltaChar
		off, err := b.offsetOf(c)
		if err != nil {
			return coord.BufferCoord{}, err
		}
		cur := int(off)
		if delta >= 0 {
			for i := 0; i < delta && cur < len(b.content); i++ {
				_, cur = uni.NextRune(b.content, cur)
			}
		} else {
			for i := 0; i < -delta && cur > 0; i++ {
				_, cur = uni.PrevRune(b.content, cur)
			}
		}
		return b.coordOf(coord.ByteCount(cur)), nil
	}
}

// Clamp clamps c to a valid coordinate in the current buffer.
func (b *Buffer) Clamp(c coord.BufferCoord) coord.BufferCoord {
	line := c.Line
	if line < 0 {
		line = 0
	}
	if int(line) >= len(b.lineStarts) {
		line = coord.LineCount(len(b.lineStarts) - 1)
	}
	lineLen, _ := b.LineLength(line)
	byteOff := c.Byte
	if byteOff < 0 {
		byteOff = 0
	}
	if byteOff > lineLen {
		byteOff = lineLen
	}
	return coord.BufferCoord{Line: line, Byte: byteOff}
}
