package main

import (
	"github.com/vexedit/vex/internal/buffer"
	"github.com/vexedit/vex/internal/register"
	"github.com/vexedit/vex/internal/selection"
)

// bufferSource binds a register.Store's dynamic registers (`%`, `.`,
// `#`, `0`-`9`) to a live buffer and selection list.
type bufferSource struct {
	buf *buffer.Buffer
	sels *selection.List
}

func (s *bufferSource) Buffer() *buffer.Buffer { return s.buf }

func (s *bufferSource) Selections() []register.Selection {
	all := s.sels.All()
	out := make([]register.Selection, len(all))
	for i, sel := range all {
		text, err := s.buf.ContentRange(sel.Min(), sel.Max())
		if err != nil {
			text = ""
		}
		out[i] = register.Selection{Text: text, Captures: sel.Captures}
	}
	return out
}
