package selection

import (
	"github.com/vexedit/vex/internal/buffer"
	"github.com/vexedit/vex/internal/coord"
)

// translatePoint remaps one endpoint across one buffer Change.
func translatePoint(p coord.BufferCoord, c buffer.Change) coord.BufferCoord {
	if p.Less(c.Begin) {
		return p
	}
	switch c.Kind {
	case buffer.InsertChange:
		return translateForward(p, c.Begin, c.End)
	case buffer.EraseChange:
		if p.Less(c.End) {
			return c.Begin
		}
		return translateBackward(p, c.Begin, c.End)
	}
	return p
}

// translateForward shifts p (p >= begin, pre-insertion coords) by the
// span that was inserted between begin and end.
func translateForward(p, begin, end coord.BufferCoord) coord.BufferCoord {
	if p.Line > begin.Line {
		return coord.BufferCoord{Line: p.Line + (end.Line - begin.Line), Byte: p.Byte}
	}
	return coord.BufferCoord{Line: end.Line, Byte: end.Byte + (p.Byte - begin.Byte)}
}

// translateBackward shifts p (p >= end, pre-erase coords) back by the
// span that was erased between begin and end.
func translateBackward(p, begin, end coord.BufferCoord) coord.BufferCoord {
	if p.Line > end.Line {
		return coord.BufferCoord{Line: p.Line - (end.Line - begin.Line), Byte: p.Byte}
	}
	return coord.BufferCoord{Line: begin.Line, Byte: begin.Byte + (p.Byte - end.Byte)}
}
