// Package coreerr defines the error kinds shared across the core: runtime
// failures reported to a user, invariant failures that abort the process,
// structured parse failures, and disconnection of the outer event loop.
package coreerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an error for the purposes of propagation policy.
type Kind int

const (
	// Runtime is a user-visible command failure: reported on the status
	// line, does not tear down the mode stack.
	Runtime Kind = iota
	// Invariant is an internal consistency failure. Fatal.
	Invariant
	// Parse is a structured failure of the regex/command/key parser,
	// carrying a position offset. Always surfaced as Runtime.
	Parse
	// Disconnected means the outer event loop's view of the core has
	// been torn down. Handled by the outer loop, not the core.
	Disconnected
)

func (k Kind) String() string {
	switch k {
	case Runtime:
		return "runtime"
	case Invariant:
		return "invariant"
	case Parse:
		return "parse"
	case Disconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Error is a core error: a kind, a message, and (for Parse) a byte offset
// into the input that failed to parse.
type Error struct {
	Kind    Kind
	Message string
	Offset  int // valid only when Kind == Parse; -1 otherwise
	cause   error
}

func (e *Error) Error() string {
	if e.Kind == Parse && e.Offset >= 0 {
		return fmt.Sprintf("%s: %s (at offset %d)", e.Kind, e.Message, e.Offset)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/As.
func (e *Error) Unwrap() error { return e.cause }

// Runtimef builds a Runtime error.
func Runtimef(format string, args ...any) *Error {
	return &Error{Kind: Runtime, Message: fmt.Sprintf(format, args...), Offset: -1}
}

// Parsef builds a Parse error carrying the byte offset of the failure.
func Parsef(offset int, format string, args ...any) *Error {
	return &Error{Kind: Parse, Message: fmt.Sprintf(format, args...), Offset: offset}
}

// Disconnectedf builds a Disconnected error.
func Disconnectedf(format string, args ...any) *Error {
	return &Error{Kind: Disconnected, Message: fmt.Sprintf(format, args...), Offset: -1}
}

// Invariantf builds an Invariant error with a captured stack trace, via
// github.com/pkg/errors, so the debug channel (internal/debug) can print a
// backtrace before the process aborts.
func Invariantf(format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{Kind: Invariant, Message: msg, Offset: -1, cause: errors.New(msg)}
}

// StackTrace returns the pkg/errors stack trace attached to an Invariant
// error, or nil for other kinds.
func (e *Error) StackTrace() errors.StackTrace {
	type tracer interface{ StackTrace() errors.StackTrace }
	if t, ok := e.cause.(tracer); ok {
		return t.StackTrace()
	}
	return nil
}

// AsRuntime reports the error the way the command boundary should surface
// it: Parse errors are always reported as Runtime.
func AsRuntime(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		if e.Kind == Parse || e.Kind == Runtime {
			return &Error{Kind: Runtime, Message: e.Error(), Offset: -1}
		}
		return e
	}
	return Runtimef("%s", err)
}
