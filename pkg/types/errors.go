// Package types defines the public data structures shared across the
// dispatcher package boundary.
//
// This file defines the error kinds and sentinel errors every fallible
// operation on a dispatcher can return.
package types

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation failed. It exists so callers can branch
// on failure category (errors.Is against the matching sentinel below)
// without parsing message text.
type Kind int

const (
	// KindNone is the zero value; never attached to a returned Error.
	KindNone Kind = iota

	// KindNoMemory means an allocation failed somewhere below the API,
	// whether in the dispatcher's own bookkeeping or in a moment's pool.
	KindNoMemory

	// KindInvalidArg means the caller passed a value the operation
	// rejects outright, such as an empty event name.
	KindInvalidArg

	// KindInvalidState means the request is well-formed but conflicts
	// with the dispatcher's current state, such as a duplicate event name.
	KindInvalidState

	// KindClosed means the operation targets a dispatcher whose Destroy
	// has already completed.
	KindClosed
)

// String returns a lower-case, log-friendly label for k.
func (k Kind) String() string {
	switch k {
	case KindNoMemory:
		return "no_memory"
	case KindInvalidArg:
		return "invalid_arg"
	case KindInvalidState:
		return "invalid_state"
	case KindClosed:
		return "closed"
	default:
		return "none"
	}
}

var (
	// ErrNoMemory is returned when the installed allocator reports
	// exhaustion; wrap it with Op via NewError to preserve call-site context.
	ErrNoMemory = errors.New("no memory")

	// ErrInvalidArg is returned for input the operation rejects outright.
	ErrInvalidArg = errors.New("invalid argument")

	// ErrInvalidState is returned when a request conflicts with the
	// dispatcher's current bookkeeping, such as a duplicate event name.
	ErrInvalidState = errors.New("invalid state")

	// ErrDispatcherClosed is returned by any call made against a
	// dispatcher after its destruction has completed.
	ErrDispatcherClosed = errors.New("dispatcher closed")
)

// Error carries the failure Kind alongside the operation that produced it
// and, where relevant, the wrapped cause.
type Error struct {
	// Op names the operation that failed, e.g. "create_event" or "bind".
	Op string

	// Kind classifies the failure for errors.Is-style branching.
	Kind Kind

	// Err is the underlying sentinel or wrapped error, if any.
	Err error
}

// NewError builds an *Error for op failing with kind, wrapping err.
func NewError(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the Kind-appropriate sentinel for e, so
// callers can write errors.Is(err, types.ErrNoMemory) without a type switch.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindNoMemory:
		return target == ErrNoMemory
	case KindInvalidArg:
		return target == ErrInvalidArg
	case KindInvalidState:
		return target == ErrInvalidState
	case KindClosed:
		return target == ErrDispatcherClosed
	default:
		return false
	}
}
