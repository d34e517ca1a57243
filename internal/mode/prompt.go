package mode

import "github.com/vexedit/vex/internal/key"

// Completer produces tab-completion candidates for a prompt's current
// line content, to be cycled through on repeated Tab presses. Building
// a concrete completer belongs to internal/completion.
type Completer func(line string) []string

// PromptResult is delivered to a prompt's callback on Return (validate)
// or Esc (abort).
type PromptResult struct {
	Line    string
	Aborted bool
}

// PromptOptions configures one PromptMode session.
type PromptOptions struct {
	// HistoryKey groups history entries by prompt identity (e.g. the
	// prompt string itself, "/" for search, ":" for commands).
	HistoryKey string
	Password   bool
	Completer  Completer
	// DropBlankPrefixed drops aborted-prompt history entries that start
	// with a blank, mirroring DropHistoryEntriesWithBlankPrefix.
	DropBlankPrefixed bool
	OnDone            func(PromptResult)
}

// HistoryStore holds de-duplicated, most-recent-last history per
// HistoryKey, shared across every PromptMode in an editor
// session so e.g. all search prompts draw from the same "/" bucket.
type HistoryStore struct {
	byKey map[string][]string
}

// NewHistoryStore creates an empty HistoryStore.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{byKey: make(map[string][]string)}
}

// Add records line under k, moving it to the most-recent position if it
// already exists. Empty lines are never recorded.
func (h *HistoryStore) Add(k, line string) {
	if line == "" {
		return
	}
	entries := h.byKey[k]
	for i, e := range entries {
		if e == line {
			entries = append(entries[:i], entries[i+1:]...)
			break
		}
	}
	h.byKey[k] = append(entries, line)
}

// Entries returns k's history, oldest first.
func (h *HistoryStore) Entries(k string) []string { return h.byKey[k] }

// PromptMode is a single-line editor: left/right/home/end (also Ctrl-A/
// Ctrl-E), backspace/delete, Ctrl-R register insert, Ctrl-V raw insert,
// per-prompt history (de-duplicated, most-recent-last), and completion
// cycling. The cursor moves one codepoint at a time; there are no
// word-wise motions. Adapted from CommandMode
// (command.go) for the line-buffer mechanics, generalized from a single
// ':' command line into any named prompt with its own history bucket.
type PromptMode struct {
	opts PromptOptions

	line      []rune
	cursor    int
	history   *HistoryStore
	histIndex int // -1 == not browsing
	saved     []rune

	pendingRegister bool
	pendingRaw      bool

	candidates   []string
	candidateIdx int
}

// NewPromptMode creates a prompt bound to a shared HistoryStore keyed by
// opts.HistoryKey.
func NewPromptMode(opts PromptOptions, history *HistoryStore) *PromptMode {
	return &PromptMode{opts: opts, history: history, histIndex: -1}
}

func (m *PromptMode) Kind() Kind { return KindPrompt }

func (m *PromptMode) Enable(ctx *Context) {
	m.line = m.line[:0]
	m.cursor = 0
	m.histIndex = -1
	m.candidates = nil
}

func (m *PromptMode) Disable(ctx *Context, tmp bool) {}

// Line returns the current editable line. If Password is set, callers
// should render a masked line instead — this method always returns the
// real content so validation still sees it.
func (m *PromptMode) Line() string { return string(m.line) }

// HandleKey implements the line editor.
func (m *PromptMode) HandleKey(ctx *Context, ev key.Event) {
	if m.pendingRegister {
		m.pendingRegister = false
		if ev.IsRune() && ctx.Registers != nil {
			if values, err := ctx.Registers.Read(ev.Rune); err == nil && len(values) > 0 {
				m.insertText(values[0])
			}
		}
		return
	}
	if m.pendingRaw {
		m.pendingRaw = false
		if ev.IsRune() {
			m.insertText(string(ev.Rune))
		}
		return
	}

	if ev.Modifiers.HasCtrl() && ev.IsRune() {
		switch ev.Rune {
		case 'r':
			m.pendingRegister = true
			return
		case 'v':
			m.pendingRaw = true
			return
		case 'a':
			m.cursor = 0
			return
		case 'e':
			m.cursor = len(m.line)
			return
		}
	}

	switch ev.Key {
	case key.KeyEnter:
		m.finish(false)
		return
	case key.KeyEscape:
		m.finish(true)
		return
	case key.KeyBackspace:
		if m.cursor > 0 {
			m.line = append(m.line[:m.cursor-1], m.line[m.cursor:]...)
			m.cursor--
		}
		return
	case key.KeyDelete:
		if m.cursor < len(m.line) {
			m.line = append(m.line[:m.cursor], m.line[m.cursor+1:]...)
		}
		return
	case key.KeyLeft:
		if m.cursor > 0 {
			m.cursor--
		}
		return
	case key.KeyRight:
		if m.cursor < len(m.line) {
			m.cursor++
		}
		return
	case key.KeyHome:
		m.cursor = 0
		return
	case key.KeyEnd:
		m.cursor = len(m.line)
		return
	case key.KeyUp:
		m.historyPrev()
		return
	case key.KeyDown:
		m.historyNext()
		return
	case key.KeyTab:
		m.cycleCompletion()
		return
	}

	if ev.IsRune() && !ev.IsModified() {
		m.insertText(string(ev.Rune))
	}
}

func (m *PromptMode) insertText(s string) {
	r := []rune(s)
	tail := append([]rune{}, m.line[m.cursor:]...)
	m.line = append(append(m.line[:m.cursor], r...), tail...)
	m.cursor += len(r)
	m.candidates = nil
}

func (m *PromptMode) finish(aborted bool) {
	line := string(m.line)
	if !aborted || !(m.opts.DropBlankPrefixed && startsBlank(line)) {
		m.history.Add(m.opts.HistoryKey, line)
	}
	if m.opts.OnDone != nil {
		m.opts.OnDone(PromptResult{Line: line, Aborted: aborted})
	}
}

func startsBlank(s string) bool {
	return len(s) > 0 && (s[0] == ' ' || s[0] == '\t')
}

func (m *PromptMode) historyPrev() {
	entries := m.history.Entries(m.opts.HistoryKey)
	if len(entries) == 0 {
		return
	}
	if m.histIndex == -1 {
		m.saved = append([]rune{}, m.line...)
		m.histIndex = len(entries) - 1
	} else if m.histIndex > 0 {
		m.histIndex--
	} else {
		return
	}
	m.setLine(entries[m.histIndex])
}

func (m *PromptMode) historyNext() {
	entries := m.history.Entries(m.opts.HistoryKey)
	if m.histIndex == -1 {
		return
	}
	m.histIndex++
	if m.histIndex >= len(entries) {
		m.histIndex = -1
		m.setLine(string(m.saved))
		return
	}
	m.setLine(entries[m.histIndex])
}

func (m *PromptMode) setLine(s string) {
	m.line = []rune(s)
	m.cursor = len(m.line)
}

func (m *PromptMode) cycleCompletion() {
	if m.opts.Completer == nil {
		return
	}
	if m.candidates == nil {
		m.candidates = m.opts.Completer(string(m.line))
		m.candidateIdx = -1
	}
	if len(m.candidates) == 0 {
		return
	}
	m.candidateIdx = (m.candidateIdx + 1) % len(m.candidates)
	m.setLine(m.candidates[m.candidateIdx])
}
