// Package coord defines the typed coordinate system shared by every other
// package in the module: lines, columns, bytes and codepoints are kept as
// distinct integer types so a byte offset can never be passed where a
// column or a line index is expected without an explicit conversion.
package coord

import "fmt"

// LineCount is a count of, or index into, lines. Line indices are 0-based.
type LineCount int

// ColumnCount is a count of display columns (cells), following wcwidth.
type ColumnCount int

// ByteCount is a count of, or offset into, raw UTF-8 bytes.
type ByteCount int

// CharCount is a count of codepoints.
type CharCount int

// BufferCoord names the byte offset of a position inside a specific line,
// relative to a buffer snapshot. It is only meaningful against the buffer
// timestamp it was produced from; see buffer.Buffer.ChangesSince for
// remapping across mutations.
type BufferCoord struct {
	Line LineCount
	Byte ByteCount
}

// DisplayCoord names a rendering position: a line and a display column.
type DisplayCoord struct {
	Line   LineCount
	Column ColumnCount
}

// Less reports whether c sorts strictly before other.
func (c BufferCoord) Less(other BufferCoord) bool {
	if c.Line != other.Line {
		return c.Line < other.Line
	}
	return c.Byte < other.Byte
}

// LessEqual reports whether c sorts at or before other.
func (c BufferCoord) LessEqual(other BufferCoord) bool {
	return c == other || c.Less(other)
}

// Min returns the smaller of a and b.
func Min(a, b BufferCoord) BufferCoord {
	if a.Less(b) {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b BufferCoord) BufferCoord {
	if a.Less(b) {
		return b
	}
	return a
}

func (c BufferCoord) String() string {
	return fmt.Sprintf("%d.%d", c.Line, c.Byte)
}

func (d DisplayCoord) String() string {
	return fmt.Sprintf("%d.%d", d.Line, d.Column)
}
