package completion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vexedit/vex/internal/completion"
)

func TestPrefixCandidatesFiltersAndPreservesOrder(t *testing.T) {
	items := []string{"select", "selection", "set", "split"}
	assert.Equal(t, []string{"select", "selection", "set"}, completion.PrefixCandidates(items, "se"))
}

func TestPrefixCandidatesEmptyPrefixReturnsAll(t *testing.T) {
	items := []string{"a", "b"}
	assert.Equal(t, items, completion.PrefixCandidates(items, ""))
}

func TestRankSubsequenceOmitsNonMatches(t *testing.T) {
	results := completion.RankSubsequence("stb", []string{"select_buffer", "split", "startBuffer"})
	var names []string
	for _, m := range results {
		names = append(names, m.Item)
	}
	assert.ElementsMatch(t, []string{"select_buffer", "startBuffer"}, names)
}

func TestRankSubsequencePrefersPrefixAndConsecutiveMatches(t *testing.T) {
	results := completion.RankSubsequence("sel", []string{"unrelated_sel", "select"})
	assert.Len(t, results, 2)
	assert.Equal(t, "select", results[0].Item, "exact prefix + consecutive match should outrank a trailing subsequence match")
}

func TestRankSubsequenceEmptyQueryReturnsAllUnscored(t *testing.T) {
	results := completion.RankSubsequence("", []string{"a", "b"})
	assert.Len(t, results, 2)
	for _, m := range results {
		assert.Equal(t, 0, m.Score)
		assert.Nil(t, m.Indices)
	}
}

func TestCycleNextWrapsAround(t *testing.T) {
	c := completion.NewCycle([]string{"a", "b", "c"})

	first, ok := c.Next()
	assert.True(t, ok)
	assert.Equal(t, "a", first)

	c.Next()
	third, _ := c.Next()
	assert.Equal(t, "c", third)

	wrapped, _ := c.Next()
	assert.Equal(t, "a", wrapped, "Next must wrap to the first candidate after the last")
}

func TestCyclePrevWrapsAround(t *testing.T) {
	c := completion.NewCycle([]string{"a", "b", "c"})

	first, ok := c.Prev()
	assert.True(t, ok)
	assert.Equal(t, "c", first, "Prev from the initial position must wrap to the last candidate")

	prev, _ := c.Prev()
	assert.Equal(t, "b", prev)
}

func TestCycleEmptyReturnsFalse(t *testing.T) {
	c := completion.NewCycle(nil)
	_, ok := c.Next()
	assert.False(t, ok)
	_, ok = c.Current()
	assert.False(t, ok)
}

func TestCycleResetRepositionsBeforeFirst(t *testing.T) {
	c := completion.NewCycle([]string{"a", "b"})
	c.Next()
	c.Reset([]string{"x", "y", "z"})

	_, ok := c.Current()
	assert.False(t, ok, "Current must report nothing selected right after Reset")

	first, _ := c.Next()
	assert.Equal(t, "x", first)
}
