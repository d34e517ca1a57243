package regex

// Result is a successful match: capture group i occupies
// subject[Captures[2*i]:Captures[2*i+1]], with -1 meaning "unset".
// Group 0 is always the whole match.
type Result struct {
	Captures []int
}

// Group returns the byte range of capture group i, or ok=false if that
// group did not participate in the match.
func (r Result) Group(i int) (begin, end int, ok bool) {
	if 2*i+1 >= len(r.Captures) {
		return 0, 0, false
	}
	b, e := r.Captures[2*i], r.Captures[2*i+1]
	if b < 0 || e < 0 {
		return 0, 0, false
	}
	return b, e, true
}

// Exec runs the program against subject under flags, following
// Kakoune's ThreadedRegexVM::exec: every live thread advances one
// codepoint in lockstep, so matching is backtracking-free. Compiled
// programs always carry an unconditional ".*?" search preamble; a
// FlagSearch call starts its initial thread at the preamble (bytecode 0)
// so the body can match anywhere in the subject, and additionally
// retries every later start position for parity with the original's
// explicit retry loop and its NotInitialNull handling. A plain Exec call
// without FlagSearch starts its initial thread past the preamble
// (searchPrefixSize), so the body is anchored at position 0 rather than
// free to skip arbitrary leading text.
func Exec(p *Program, subject []byte, flags ExecFlags) (Result, bool) {
	vm := &VM{prog: p, subject: subject, flags: flags}

	if flags&FlagNotInitialNull != 0 && len(subject) == 0 {
		return Result{}, false
	}

	noSaves := flags&FlagNoSaves != 0
	var initial *saves
	if !noSaves {
		initial = newSaves(p.saveCount, nil)
	}

	startInst := 0
	if flags&FlagSearch == 0 {
		startInst = searchPrefixSize
	}

	var current, next []thread
	if vm.execFrom(0, startInst, initial, &current, &next) {
		return vm.result(noSaves), true
	}
	if flags&FlagSearch == 0 {
		return Result{}, false
	}
	for start := 1; start <= len(subject); start++ {
		var s *saves
		if !noSaves {
			s = newSaves(p.saveCount, nil)
		}
		if vm.execFrom(start, 0, s, &current, &next) {
			return vm.result(noSaves), true
		}
	}
	return Result{}, false
}

func (vm *VM) result(noSaves bool) Result {
	if noSaves || vm.captures == nil {
		return Result{}
	}
	out := make([]int, len(vm.captures.pos))
	copy(out, vm.captures.pos)
	return Result{Captures: out}
}

// execFrom runs the VM starting at byte offset `start`, stepping every
// live thread through the subject one codepoint at a time, Kakoune's
// exec_from. startInst is the bytecode instruction the initial thread
// begins at: 0 to include the ".*?" preamble (search mode), or
// searchPrefixSize to begin at the compiled body directly (full-match
// mode).
func (vm *VM) execFrom(start, startInst int, initial *saves, current, next *[]thread) bool {
	*current = append((*current)[:0], thread{inst: startInst, saves: initial})
	*next = (*next)[:0]

	foundMatch := false
	pos := start
	for pos < len(vm.subject) {
		cp, width := decodeRune(vm.subject[pos:])
		for len(*current) > 0 {
			th := (*current)[len(*current)-1]
			*current = (*current)[:len(*current)-1]
			switch vm.step(pos, false, cp, &th, current) {
			case stepMatched:
				if vm.flags&FlagSearch == 0 ||
					(vm.flags&FlagNotInitialNull != 0 && pos == 0) {
					vm.release(th.saves)
					continue
				}
				vm.release(vm.captures)
				vm.captures = th.saves
				if vm.flags&FlagAnyMatch != 0 {
					return true
				}
				foundMatch = true
				*current = (*current)[:0]
			case stepFailed:
				vm.release(th.saves)
			case stepConsumed:
				if containsInst(*next, th.inst) {
					vm.release(th.saves)
				} else {
					*next = append(*next, th)
				}
			}
		}
		if len(*next) == 0 {
			return foundMatch
		}
		*current, *next = *next, (*current)[:0]
		reverseThreads(*current)
		pos += width
	}
	// Step whatever remains at subject end, without consuming further.
	// Any thread still live here outranks a match already found, since
	// lower-priority threads were dropped when that match was recorded.
	for len(*current) > 0 {
		th := (*current)[len(*current)-1]
		*current = (*current)[:len(*current)-1]
		if vm.step(len(vm.subject), true, 0, &th, current) == stepMatched {
			vm.release(vm.captures)
			vm.captures = th.saves
			return true
		}
	}
	return foundMatch
}

func containsInst(threads []thread, inst int) bool {
	for _, t := range threads {
		if t.inst == inst {
			return true
		}
	}
	return false
}

func reverseThreads(t []thread) {
	for i, j := 0, len(t)-1; i < j; i, j = i+1, j-1 {
		t[i], t[j] = t[j], t[i]
	}
}

// Match reports whether the whole subject matches re, Kakoune's
// regex_match equivalent.
func Match(p *Program, subject []byte, flags ExecFlags) bool {
	_, ok := Exec(p, subject, (flags&^FlagSearch)|FlagAnyMatch|FlagNoSaves)
	return ok
}

// MatchCaptures is Match but returns capture positions.
func MatchCaptures(p *Program, subject []byte, flags ExecFlags) (Result, bool) {
	return Exec(p, subject, flags&^FlagSearch)
}

// Search reports whether re matches anywhere in subject.
func Search(p *Program, subject []byte, flags ExecFlags) bool {
	_, ok := Exec(p, subject, flags|FlagSearch|FlagAnyMatch|FlagNoSaves)
	return ok
}

// SearchCaptures is Search but returns capture positions for the first
// match found scanning left to right.
func SearchCaptures(p *Program, subject []byte, flags ExecFlags) (Result, bool) {
	return Exec(p, subject, flags|FlagSearch)
}

// FindLongest runs Search but keeps scanning candidate threads at each
// position to find the overall-longest match rather than stopping at
// the first, the "longest" exec mode Kakoune's surrounding-pair/object
// selectors rely on.
func FindLongest(p *Program, subject []byte, flags ExecFlags) (Result, bool) {
	return Exec(p, subject, (flags|FlagSearch)&^FlagAnyMatch)
}
