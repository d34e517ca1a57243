package coreerr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vexedit/vex/internal/coreerr"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "runtime", coreerr.Runtime.String())
	assert.Equal(t, "invariant", coreerr.Invariant.String())
	assert.Equal(t, "parse", coreerr.Parse.String())
	assert.Equal(t, "disconnected", coreerr.Disconnected.String())
	assert.Equal(t, "unknown", coreerr.Kind(99).String())
}

func TestRuntimefMessage(t *testing.T) {
	err := coreerr.Runtimef("bad selection %d", 3)
	assert.Equal(t, "runtime: bad selection 3", err.Error())
	assert.Equal(t, -1, err.Offset)
}

func TestParsefIncludesOffset(t *testing.T) {
	err := coreerr.Parsef(12, "unexpected token %q", ")")
	assert.Equal(t, `parse: unexpected token ")" (at offset 12)`, err.Error())
}

func TestDisconnectedfMessage(t *testing.T) {
	err := coreerr.Disconnectedf("core torn down")
	assert.Equal(t, "disconnected: core torn down", err.Error())
}

func TestInvariantfCapturesStackTrace(t *testing.T) {
	err := coreerr.Invariantf("index out of range")
	assert.Equal(t, "invariant: index out of range", err.Error())
	assert.NotEmpty(t, err.StackTrace())
}

func TestStackTraceNilForNonInvariant(t *testing.T) {
	err := coreerr.Runtimef("oops")
	assert.Nil(t, err.StackTrace())
}

func TestAsRuntimeDowngradesParseAndRuntime(t *testing.T) {
	parseErr := coreerr.Parsef(4, "bad escape")
	got := coreerr.AsRuntime(parseErr)
	assert.Equal(t, coreerr.Runtime, got.Kind)

	runtimeErr := coreerr.Runtimef("already runtime")
	got = coreerr.AsRuntime(runtimeErr)
	assert.Equal(t, coreerr.Runtime, got.Kind)
}

func TestAsRuntimePreservesInvariantAndDisconnected(t *testing.T) {
	invErr := coreerr.Invariantf("corrupt tree")
	got := coreerr.AsRuntime(invErr)
	assert.Equal(t, coreerr.Invariant, got.Kind)

	discErr := coreerr.Disconnectedf("gone")
	got = coreerr.AsRuntime(discErr)
	assert.Equal(t, coreerr.Disconnected, got.Kind)
}

func TestAsRuntimeWrapsForeignError(t *testing.T) {
	got := coreerr.AsRuntime(errors.New("not a coreerr.Error"))
	assert.Equal(t, coreerr.Runtime, got.Kind)
	assert.Contains(t, got.Message, "not a coreerr.Error")
}
