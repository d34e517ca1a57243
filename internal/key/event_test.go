package key

import "testing"

func TestNewRuneEvent(t *testing.T) {
	e := NewRuneEvent('a', ModNone)
	if e.Key != KeyRune {
		t.Errorf("NewRuneEvent key = %v, want KeyRune", e.Key)
	}
	if e.Rune != 'a' {
		t.Errorf("NewRuneEvent rune = %q, want 'a'", e.Rune)
	}
	if e.Modifiers != ModNone {
		t.Errorf("NewRuneEvent modifiers = %v, want ModNone", e.Modifiers)
	}
}

func TestNewSpecialEvent(t *testing.T) {
	e := NewSpecialEvent(KeyEscape, ModNone)
	if e.Key != KeyEscape {
		t.Errorf("NewSpecialEvent key = %v, want KeyEscape", e.Key)
	}
	if e.Rune != 0 {
		t.Errorf("NewSpecialEvent rune = %q, want 0", e.Rune)
	}
}

func TestEventIsRune(t *testing.T) {
	tests := []struct {
		event Event
		want  bool
	}{
		{NewRuneEvent('a', ModNone), true},
		{NewRuneEvent('A', ModShift), true},
		{NewSpecialEvent(KeyEscape, ModNone), false},
		{NewSpecialEvent(KeyEnter, ModNone), false},
		{Event{Key: KeyRune, Rune: 0}, false},
	}

	for _, tt := range tests {
		if got := tt.event.IsRune(); got != tt.want {
			t.Errorf("Event.IsRune() = %v, want %v for %+v", got, tt.want, tt.event)
		}
	}
}

func TestEventIsModified(t *testing.T) {
	tests := []struct {
		event Event
		want  bool
	}{
		{NewRuneEvent('a', ModNone), false},
		{NewRuneEvent('A', ModShift), false}, // Shift alone doesn't count for runes
		{NewRuneEvent('a', ModCtrl), true},
		{NewRuneEvent('a', ModAlt), true},
		{NewSpecialEvent(KeyEscape, ModNone), false},
		{NewSpecialEvent(KeyEscape, ModShift), true}, // Shift counts for special keys
		{NewSpecialEvent(KeyEnter, ModCtrl), true},
	}

	for _, tt := range tests {
		if got := tt.event.IsModified(); got != tt.want {
			t.Errorf("Event.IsModified() = %v, want %v for %+v", got, tt.want, tt.event)
		}
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{NewRuneEvent('a', ModNone), "a"},
		{NewRuneEvent('A', ModShift), "A"},
		{NewRuneEvent('s', ModCtrl), "C-s"},
		{NewRuneEvent('f', ModCtrl|ModAlt), "C-A-f"},
		{NewSpecialEvent(KeyEscape, ModNone), "Escape"},
		{NewSpecialEvent(KeyEnter, ModNone), "Enter"},
		{NewSpecialEvent(KeyEnter, ModCtrl), "C-Enter"},
		{NewRuneEvent(' ', ModNone), "Space"},
	}

	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("Event.String() = %q, want %q for %+v", got, tt.want, tt.event)
		}
	}
}
