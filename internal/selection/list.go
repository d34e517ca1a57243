package selection

import (
	"sort"

	"github.com/vexedit/vex/internal/buffer"
	"github.com/vexedit/vex/internal/coord"
	"github.com/vexedit/vex/internal/coreerr"
)

// ErrEmptySelectionSet is returned when an operation would remove the
// last remaining selection.
var ErrEmptySelectionSet = coreerr.Runtimef("empty selection set")

// ErrNothingSelected is returned when apply_multi's motion yields no
// selections at all.
var ErrNothingSelected = coreerr.Runtimef("nothing selected")

// List is an ordered, non-overlapping set of selections,
// sorted by Min(), with a distinguished main selection.
type List struct {
	sels      []Selection
	mainIndex int
	timestamp uint64
}

// NewList creates a list with a single selection at c, valid as of ts.
func NewList(c coord.BufferCoord, ts uint64) *List {
	return &List{sels: []Selection{New(c)}, mainIndex: 0, timestamp: ts}
}

// Len returns the number of selections.
func (l *List) Len() int { return len(l.sels) }

// All returns a copy of the selections, in sorted order.
func (l *List) All() []Selection {
	out := make([]Selection, len(l.sels))
	copy(out, l.sels)
	return out
}

// Main returns the main selection.
func (l *List) Main() Selection { return l.sels[l.mainIndex] }

// MainIndex returns the index of the main selection.
func (l *List) MainIndex() int { return l.mainIndex }

// Timestamp returns the buffer timestamp the list's coordinates are
// valid against.
func (l *List) Timestamp() uint64 { return l.timestamp }

// RotateMain moves the main index by n, modulo the selection count.
func (l *List) RotateMain(n int) {
	count := len(l.sels)
	l.mainIndex = ((l.mainIndex+n)%count + count) % count
}

// Update remaps every coordinate through buf.ChangesSince(l.timestamp)
// if the list is stale, then re-sorts and re-merges. A
// no-op if the list is already current.
func (l *List) Update(buf *buffer.Buffer) {
	if l.timestamp == buf.Timestamp() {
		return
	}
	changes := buf.ChangesSince(l.timestamp)
	for i := range l.sels {
		for _, c := range changes {
			l.sels[i].Anchor = translatePoint(l.sels[i].Anchor, c)
			l.sels[i].Cursor = translatePoint(l.sels[i].Cursor, c)
		}
	}
	l.timestamp = buf.Timestamp()
	l.resortAndMerge()
}

// resortAndMerge sorts by Min() and merges selections sharing a
// codepoint, keeping main_index pointed at whichever selection the
// previous main selection ended up inside.
func (l *List) resortAndMerge() {
	type tagged struct {
		sel    Selection
		isMain bool
	}
	tagged_ := make([]tagged, len(l.sels))
	for i, s := range l.sels {
		tagged_[i] = tagged{sel: s, isMain: i == l.mainIndex}
	}
	sort.SliceStable(tagged_, func(i, j int) bool {
		return tagged_[i].sel.Min().Less(tagged_[j].sel.Min())
	})

	merged := make([]Selection, 0, len(tagged_))
	mainIsIn := make([]bool, 0, len(tagged_))
	for _, t := range tagged_ {
		if len(merged) > 0 && t.sel.Min().LessEqual(merged[len(merged)-1].Max()) {
			merged[len(merged)-1] = union(merged[len(merged)-1], t.sel)
			if t.isMain {
				mainIsIn[len(mainIsIn)-1] = true
			}
			continue
		}
		merged = append(merged, t.sel)
		mainIsIn = append(mainIsIn, t.isMain)
	}

	newMain := 0
	for i, isMain := range mainIsIn {
		if isMain {
			newMain = i
			break
		}
	}
	l.sels = merged
	l.mainIndex = newMain
}

// InsertBefore inserts text at each selection's Min(), via buf.Insert,
// and remaps the list afterward.
func (l *List) InsertBefore(buf *buffer.Buffer, text string) error {
	// Insert from the last selection to the first so earlier offsets in
	// the same call are unaffected by later insertions within it.
	for i := len(l.sels) - 1; i >= 0; i-- {
		if _, err := buf.Insert(l.sels[i].Min(), text); err != nil {
			return err
		}
	}
	l.Update(buf)
	return nil
}

// InsertAfter inserts text just past each selection's Max().
func (l *List) InsertAfter(buf *buffer.Buffer, text string) error {
	for i := len(l.sels) - 1; i >= 0; i-- {
		after, err := buf.Next(l.sels[i].Max())
		if err != nil {
			return err
		}
		if _, err := buf.Insert(after, text); err != nil {
			return err
		}
	}
	l.Update(buf)
	return nil
}

// Replace erases each selection's content and inserts text at its
// start; the new selection covers the inserted text.
func (l *List) Replace(buf *buffer.Buffer, text string) error {
	for i := len(l.sels) - 1; i >= 0; i-- {
		sel := l.sels[i]
		maxNext, err := buf.Next(sel.Max())
		if err != nil {
			return err
		}
		if _, err := buf.Erase(sel.Min(), maxNext); err != nil {
			return err
		}
		if _, err := buf.Insert(sel.Min(), text); err != nil {
			return err
		}
	}
	l.Update(buf)
	if text == "" {
		return nil
	}
	// Update leaves each selection just past its inserted text; widen it
	// back over that text.
	for i := range l.sels {
		end := l.sels[i].Cursor
		begin, err := buf.OffsetCoord(end, -len(text), buffer.DeltaByte)
		if err != nil {
			return err
		}
		last, err := buf.Prev(end)
		if err != nil {
			return err
		}
		l.sels[i] = Selection{Anchor: begin, Cursor: last}
	}
	return nil
}

// Erase erases each selection's content; the resulting selection is a
// single codepoint at the join point, clamped inside the buffer.
func (l *List) Erase(buf *buffer.Buffer) error {
	for i := len(l.sels) - 1; i >= 0; i-- {
		sel := l.sels[i]
		maxNext, err := buf.Next(sel.Max())
		if err != nil {
			return err
		}
		if _, err := buf.Erase(sel.Min(), maxNext); err != nil {
			return err
		}
	}
	l.Update(buf)
	for i := range l.sels {
		l.sels[i] = New(buf.Clamp(l.sels[i].Min()))
	}
	return nil
}

// Motion maps one selection to a new selection.
type Motion func(buf *buffer.Buffer, sel Selection) (Selection, error)

// MultiMotion maps one selection to zero or more selections.
type MultiMotion func(buf *buffer.Buffer, sel Selection) ([]Selection, error)

// Apply maps motion over every selection, preserving main, then
// re-sorts and merges. Capture groups from the motions
// populate registers 0-9 via the returned captures slice, one per
// selection in list order.
func (l *List) Apply(buf *buffer.Buffer, motion Motion) (captures [][]string, err error) {
	next := make([]Selection, len(l.sels))
	captures = make([][]string, len(l.sels))
	for i, s := range l.sels {
		r, err := motion(buf, s)
		if err != nil {
			return nil, err
		}
		next[i] = r
		captures[i] = r.Captures
	}
	l.sels = next
	l.resortAndMerge()
	return captures, nil
}

// ApplyMulti maps a MultiMotion over every selection and flattens the
// results; fails with ErrNothingSelected if nothing survives.
func (l *List) ApplyMulti(buf *buffer.Buffer, motion MultiMotion) error {
	var next []Selection
	var mainSel *Selection
	for i, s := range l.sels {
		rs, err := motion(buf, s)
		if err != nil {
			return err
		}
		for j := range rs {
			if i == l.mainIndex && j == 0 {
				mainSel = &rs[0]
			}
			next = append(next, rs[j])
		}
	}
	if len(next) == 0 {
		return ErrNothingSelected
	}
	l.sels = next
	l.mainIndex = 0
	if mainSel != nil {
		for i, s := range l.sels {
			if s == *mainSel {
				l.mainIndex = i
				break
			}
		}
	}
	l.resortAndMerge()
	return nil
}

// KeepIf keeps only selections satisfying pred; fails with
// ErrEmptySelectionSet if none would remain.
func (l *List) KeepIf(pred func(Selection) bool) error {
	return l.filter(pred)
}

// RemoveIf removes selections satisfying pred; fails with
// ErrEmptySelectionSet if none would remain.
func (l *List) RemoveIf(pred func(Selection) bool) error {
	return l.filter(func(s Selection) bool { return !pred(s) })
}

func (l *List) filter(keep func(Selection) bool) error {
	var kept []Selection
	newMain := 0
	for i, s := range l.sels {
		if keep(s) {
			if i == l.mainIndex {
				newMain = len(kept)
			}
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return ErrEmptySelectionSet
	}
	l.sels = kept
	l.mainIndex = newMain
	return nil
}
