// Package debug provides the process-wide debug channel that hook bodies
// and fatal invariant failures write to: a sink for
// swallowed errors and pre-abort backtraces, independent of whatever
// status-line / log-file surface the outer application wires it to.
package debug

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/lestrrat-go/pdebug"
)

// Channel is a process-wide sink for diagnostic output that must never be
// allowed to interrupt the caller: hook-body errors and the
// backtrace written before an Invariant error aborts the process.
type Channel struct {
	mu  sync.Mutex
	out io.Writer
}

var global = New(os.Stderr)

// New creates a Channel writing to out.
func New(out io.Writer) *Channel {
	return &Channel{out: out}
}

// Default returns the process-wide channel used when no explicit Channel
// is threaded through a Context.
func Default() *Channel { return global }

// SetOutput redirects the channel's writer.
func (c *Channel) SetOutput(out io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.out = out
}

// Logf writes a swallowed-error message to the channel. Used by the hook
// manager (internal/hook) when a hook body returns an error: the error is
// never propagated to the command that triggered the hook.
func (c *Channel) Logf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "[debug] "+format+"\n", args...)
}

// Backtrace writes msg followed by the current goroutine's stack trace
// (from runtime.Stack) ahead of a fatal Invariant abort. When pdebug
// tracing is enabled, msg is also sent to pdebug.
func (c *Channel) Backtrace(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "[debug] FATAL: %s\n", msg)
	if pdebug.Enabled {
		pdebug.Printf("%s", msg)
	}
	fmt.Fprintln(c.out, string(stack()))
}

func stack() []byte {
	buf := make([]byte, 1<<16)
	n := runtime.Stack(buf, false)
	return buf[:n]
}
