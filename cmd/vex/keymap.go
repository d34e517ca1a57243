package main

import (
	"github.com/vexedit/vex/internal/applog"
	"github.com/vexedit/vex/internal/buffer"
	"github.com/vexedit/vex/internal/mode"
	"github.com/vexedit/vex/internal/motion"
	"github.com/vexedit/vex/internal/selection"
)

// buildKeymap wires a small illustrative set of normal-mode bindings.
// Building a full keymap (every letter, counts, operator-pending
// sequences) is the command layer's job and out of this module's scope
//; this is just enough to drive the mode machine
// through insert entry/exit, word motions, and a deletion.
func buildKeymap(buf *buffer.Buffer, sels *selection.List, log *applog.Logger, machine **mode.Machine) mode.Keymap {
	insert := mode.NewInsertMode(buf, sels)

	enterInsert := func(prep mode.Preparation) mode.Command {
		return func(ctx *mode.Context, count int, register rune) {
			insert.SetPreparation(prep)
			(*machine).Push(ctx, insert)
		}
	}

	return mode.Keymap{
		"i": enterInsert(mode.InsertBefore),
		"a": enterInsert(mode.Append),
		"R": enterInsert(mode.Replace),
		"o": enterInsert(mode.OpenLineBelow),
		"O": enterInsert(mode.OpenLineAbove),
		"w": func(ctx *mode.Context, count int, register rune) {
			applyMotion(buf, sels, log, motion.WordForward)
		},
		"b": func(ctx *mode.Context, count int, register rune) {
			applyMotion(buf, sels, log, motion.WordBackward)
		},
		"x": func(ctx *mode.Context, count int, register rune) {
			if err := sels.Erase(buf); err != nil {
				log.Debugf("erase failed: %v", err)
			}
		},
	}
}

func applyMotion(buf *buffer.Buffer, sels *selection.List, log *applog.Logger, step func(*buffer.Buffer, selection.Selection) (selection.Selection, error)) {
	err := sels.ApplyMulti(buf, func(buf *buffer.Buffer, sel selection.Selection) ([]selection.Selection, error) {
		next, err := step(buf, sel)
		if err != nil {
			return nil, err
		}
		return []selection.Selection{next}, nil
	})
	if err != nil {
		log.Debugf("motion failed: %v", err)
	}
}
