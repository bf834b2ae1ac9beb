package lsevent

import "github.com/lsevent/dispatcher/pkg/types"

// Error kinds and sentinel errors, re-exported from pkg/types for callers
// who only import the root package.
type (
	// Kind classifies the reason a dispatcher operation failed.
	Kind = types.Kind

	// Error is the concrete error type every fallible dispatcher
	// operation returns. Config validation errors are plain errors.
	Error = types.Error
)

const (
	KindNone         = types.KindNone
	KindNoMemory     = types.KindNoMemory
	KindInvalidArg   = types.KindInvalidArg
	KindInvalidState = types.KindInvalidState
	KindClosed       = types.KindClosed
)

var (
	// ErrNoMemory is returned when an allocation, real or simulated via
	// SetMemoryFuncs, fails.
	ErrNoMemory = types.ErrNoMemory

	// ErrInvalidArg is returned for malformed input, such as an empty
	// event name.
	ErrInvalidArg = types.ErrInvalidArg

	// ErrInvalidState is returned when an operation conflicts with the
	// dispatcher's current state, such as creating a duplicate event.
	ErrInvalidState = types.ErrInvalidState

	// ErrDispatcherClosed is returned by operations attempted after
	// Destroy has completed.
	ErrDispatcherClosed = types.ErrDispatcherClosed
)
