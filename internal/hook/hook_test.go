package hook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexedit/vex/internal/hook"
	"github.com/vexedit/vex/internal/mode"
)

func TestRunHooksMatchesPattern(t *testing.T) {
	m := hook.NewManager(nil)
	var fired []string

	require.NoError(t, m.AddHook("InsertChar", `\.`, func(param string, ctx *mode.Context) error {
		fired = append(fired, "dot:"+param)
		return nil
	}))
	require.NoError(t, m.AddHook("InsertChar", `x`, func(param string, ctx *mode.Context) error {
		fired = append(fired, "x:"+param)
		return nil
	}))

	require.NoError(t, m.Run("InsertChar", ".", nil))
	require.NoError(t, m.Run("InsertChar", "x", nil))
	require.NoError(t, m.Run("InsertChar", "y", nil))

	assert.Equal(t, []string{"dot:.", "x:x"}, fired)
}

func TestRunHooksIgnoresOtherNames(t *testing.T) {
	m := hook.NewManager(nil)
	var fired bool
	require.NoError(t, m.AddHook("InsertEnd", `.*`, func(param string, ctx *mode.Context) error {
		fired = true
		return nil
	}))

	require.NoError(t, m.Run("NormalKey", "a", nil))
	assert.False(t, fired)
}

func TestRunHooksSwallowsBodyErrors(t *testing.T) {
	m := hook.NewManager(nil)
	require.NoError(t, m.AddHook("InsertEnd", `.*`, func(param string, ctx *mode.Context) error {
		return assert.AnError
	}))

	err := m.Run("InsertEnd", "", nil)
	assert.NoError(t, err, "a hook body error must never propagate to the caller")
}

func TestRunHooksRespectsHooksDisabled(t *testing.T) {
	m := hook.NewManager(nil)
	var fired bool
	require.NoError(t, m.AddHook("InsertEnd", `.*`, func(param string, ctx *mode.Context) error {
		fired = true
		return nil
	}))

	ctx := mode.NewContext(m, nil)
	ctx.HooksDisabled = true
	require.NoError(t, m.Run("InsertEnd", "", ctx))
	assert.False(t, fired)
}

func TestRemoveHooksMatching(t *testing.T) {
	m := hook.NewManager(nil)
	var calls int
	require.NoError(t, m.AddHook("InsertEnd", `foo`, func(param string, ctx *mode.Context) error {
		calls++
		return nil
	}))

	m.RemoveHooksMatching("InsertEnd", "foo")
	require.NoError(t, m.Run("InsertEnd", "foo", nil))
	assert.Equal(t, 0, calls)
}
