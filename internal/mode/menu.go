package mode

import "github.com/vexedit/vex/internal/key"

// MenuChoice is one selectable entry in a MenuMode list.
type MenuChoice struct {
	Label string
	Value string
}

// MenuMode presents a choice list: up/down (or j/k) move the selection,
// Enter picks the current choice, Esc cancels. Adapted from
// CommandMode's completion-candidate cycling (command.go), generalized
// into its own mode since Menu is a distinct stack entry rather than a
// sub-state of Prompt.
type MenuMode struct {
	choices []MenuChoice
	current int

	OnPick func(MenuChoice)
	OnCancel func()
}

// NewMenuMode creates a menu over choices. choices must be non-empty for
// Enter/Pick to have any effect.
func NewMenuMode(choices []MenuChoice) *MenuMode {
	return &MenuMode{choices: choices}
}

func (m *MenuMode) Kind() Kind { return KindMenu }

func (m *MenuMode) Enable(ctx *Context) { m.current = 0 }
func (m *MenuMode) Disable(ctx *Context, tmp bool) {}

// Current returns the presently-highlighted choice and whether the menu
// has any choices at all.
func (m *MenuMode) Current() (MenuChoice, bool) {
	if m.current < 0 || m.current >= len(m.choices) {
		return MenuChoice{}, false
	}
	return m.choices[m.current], true
}

func (m *MenuMode) HandleKey(ctx *Context, ev key.Event) {
	if len(m.choices) == 0 {
		if ev.Key == key.KeyEscape {
			if m.OnCancel != nil {
				m.OnCancel()
			}
		}
		return
	}

	switch ev.Key {
	case key.KeyUp:
		m.move(-1)
		return
	case key.KeyDown:
		m.move(1)
		return
	case key.KeyEnter:
		if m.OnPick != nil {
			m.OnPick(m.choices[m.current])
		}
		return
	case key.KeyEscape:
		if m.OnCancel != nil {
			m.OnCancel()
		}
		return
	}

	if ev.IsRune() && !ev.IsModified() {
		switch ev.Rune {
		case 'j':
			m.move(1)
		case 'k':
			m.move(-1)
		}
	}
}

func (m *MenuMode) move(delta int) {
	n := len(m.choices)
	m.current = ((m.current+delta)%n + n) % n
}
