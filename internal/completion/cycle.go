package completion

// Cycle is a stateful forward/backward cursor over a candidate list:
// Next advances to the next candidate, Prev moves back, and cycling
// wraps rather than stopping at either end. PromptMode's Tab-cycling
// keeps its own candidate index and does not use Cycle.
type Cycle struct {
	candidates []string
	index      int
}

// NewCycle creates a Cycle over candidates, positioned before the first
// entry so the first Next call lands on index 0.
func NewCycle(candidates []string) *Cycle {
	return &Cycle{candidates: candidates, index: -1}
}

// Len reports how many candidates are in the cycle.
func (c *Cycle) Len() int { return len(c.candidates) }

// Next advances to the next candidate, wrapping to the first after the
// last. Returns "", false if the cycle is empty.
func (c *Cycle) Next() (string, bool) {
	if len(c.candidates) == 0 {
		return "", false
	}
	c.index = (c.index + 1) % len(c.candidates)
	return c.candidates[c.index], true
}

// Prev moves to the previous candidate, wrapping to the last before the
// first. Returns "", false if the cycle is empty.
func (c *Cycle) Prev() (string, bool) {
	if len(c.candidates) == 0 {
		return "", false
	}
	c.index--
	if c.index < 0 {
		c.index = len(c.candidates) - 1
	}
	return c.candidates[c.index], true
}

// Current returns the candidate at the cycle's current position,
// "", false if nothing has been selected yet or the cycle is empty.
func (c *Cycle) Current() (string, bool) {
	if len(c.candidates) == 0 || c.index < 0 {
		return "", false
	}
	return c.candidates[c.index], true
}

// Reset replaces the candidate list and repositions before the first
// entry, for when completion candidates are recomputed.
func (c *Cycle) Reset(candidates []string) {
	c.candidates = candidates
	c.index = -1
}
