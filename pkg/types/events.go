// Package types defines the public data structures shared across the
// dispatcher package boundary.
//
// This file defines the shapes callbacks see and return.
package types

// Notifier is the borrowed, read-only view of the event whose binding list
// is currently being walked. It lets a callback ask "which event am I
// running under, and for which source" without granting it access to the
// binding list itself.
type Notifier interface {
	// Name returns the event's name, in its original case.
	Name() string

	// Source returns the identity the owning dispatcher was created with.
	Source() interface{}
}

// EventData is the single, shared context object passed by reference to
// every callback invoked while dispatching one moment. All callbacks bound
// to the triggered event observe and mutate the same instance; nothing
// about it is safe to retain past the callback's return.
type EventData struct {
	// MomentID uniquely identifies this one dispatch of Name, for
	// correlating log lines and metrics across every callback it reaches.
	MomentID string

	// Source is the identity of the dispatcher's owner.
	Source interface{}

	// Name is the triggered event's name.
	Name string

	// Notifier borrows the event object itself.
	Notifier Notifier

	// Data is the per-invocation payload supplied to trigger.
	Data interface{}

	// Pool is the arena backing any allocation a callback needs to make
	// for the lifetime of this moment. Released when the moment is freed.
	Pool Pool

	// Handled is sticky: once any callback sets it true, it remains true
	// for the rest of the dispatch and is reported to the result callback.
	Handled bool
}

// NotifyCallback is bound to an event and invoked once per eligible
// binding, in insertion order, for every trigger of that event.
type NotifyCallback func(evt *EventData, arg interface{})

// ResultCallback runs once per trigger, after every notify callback for
// that moment has returned and the binding list cleanup pass has run.
type ResultCallback func(evt *EventData, handled bool, arg interface{})

// Pool is the arena allocator contract a moment's EventData.Pool satisfies.
// Both operations report allocation failure rather than panicking, so a
// caller under injected memory pressure can observe and handle it exactly
// like any other dispatcher failure.
type Pool interface {
	// Malloc returns size fresh bytes scoped to the arena's lifetime.
	Malloc(size int) ([]byte, error)

	// Strdup returns an arena-owned copy of s.
	Strdup(s string) (string, error)
}
