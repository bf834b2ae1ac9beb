// Package interfaces defines the public interfaces implemented by the
// dispatcher's core.
//
// This file defines the Dispatcher/Event/TriggerRecord contract: a
// reentrant, single-threaded, breadth-first named-event dispatcher.
package interfaces

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lsevent/dispatcher/pkg/types"
)

// Dispatcher coordinates named events and their breadth-first triggering
// for a single source. A Dispatcher is not safe for concurrent use from
// multiple goroutines; it is safe for reentrant use from within its own
// callbacks.
type Dispatcher interface {
	// Source returns the identity the dispatcher was created with.
	Source() interface{}

	// CreateEvent declares a new named event under this dispatcher. Event
	// names are compared case-insensitively (ASCII only); a duplicate
	// name reports types.ErrInvalidState, and an empty name reports
	// types.ErrInvalidArg. Neither case mutates the dispatcher.
	CreateEvent(name string) (Event, error)

	// GetEvent looks up a previously declared event by name, folded the
	// same way CreateEvent folds it. The second return is false if no
	// such event exists.
	GetEvent(name string) (Event, bool)

	// PrepareTrigger allocates a reusable trigger record up front, for
	// callers that must trigger under conditions where allocation
	// failure at the call site is intolerable.
	PrepareTrigger() (TriggerRecord, error)

	// UnprepareTrigger releases a prepared record that was never handed
	// to TriggerPrepared.
	UnprepareTrigger(record TriggerRecord)

	// Destroy tears the dispatcher down: every event, its bindings, and
	// the moment queue are released. If Destroy is called while a
	// dispatch is in progress (i.e. from within a callback), destruction
	// is deferred until the outermost trigger returns. Once destruction
	// has actually run, CreateEvent, PrepareTrigger, and Trigger all
	// report types.ErrDispatcherClosed, and TriggerPrepared enqueues
	// nothing.
	Destroy()

	// Registry returns the Prometheus registry backing this dispatcher's
	// trigger/handled counters, for mounting under an HTTP handler with
	// promhttp.HandlerFor. Returns nil if metrics were not enabled via
	// WithMetricsConfig at construction time.
	Registry() *prometheus.Registry
}

// Event is a named attachment point for callbacks under one Dispatcher.
type Event interface {
	// Name returns the event's name, in its original case.
	Name() string

	// Source returns the owning dispatcher's source identity.
	Source() interface{}

	// Bind attaches cb to the event, keyed by callback identity. If cb is
	// already bound and not pending removal, Bind is a no-op: it neither
	// moves the binding's position nor updates its arg. Binding from
	// within a callback that is currently dispatching this same event
	// takes effect starting with the event's next dispatch.
	Bind(cb types.NotifyCallback, arg interface{}) error

	// Unbind detaches cb. Unbinding a callback that was never bound, or
	// is already unbound, is a silent no-op. If the event is currently
	// mid-dispatch, removal is deferred until that dispatch's cleanup
	// pass; the callback may still run once more during the in-progress
	// walk.
	Unbind(cb types.NotifyCallback)

	// Trigger enqueues one moment (this event, data) for dispatch. If the
	// owning dispatcher is not already draining a queue, Trigger drains
	// it synchronously — walking this event's bindings, then any events
	// triggered by those callbacks, breadth-first — before returning. If
	// the dispatcher is already mid-trigger, Trigger enqueues and returns
	// immediately; the active loop will reach this moment in turn.
	Trigger(data interface{}, result types.ResultCallback, resultArg interface{}) error

	// TriggerPrepared behaves like Trigger but consumes a record obtained
	// from Dispatcher.PrepareTrigger instead of allocating one, so it
	// cannot fail with types.ErrNoMemory.
	TriggerPrepared(data interface{}, result types.ResultCallback, resultArg interface{}, record TriggerRecord)
}

// TriggerRecord is the pre-allocated bundle produced by
// Dispatcher.PrepareTrigger, later consumed by Event.TriggerPrepared or
// released unused via Dispatcher.UnprepareTrigger. It is opaque outside
// this module's own implementation.
type TriggerRecord interface {
	sealedTriggerRecord()
}

// SealTriggerRecord is embedded by implementations of TriggerRecord to
// satisfy its unexported sealing method from outside this package.
type SealTriggerRecord struct{}

func (SealTriggerRecord) sealedTriggerRecord() {}
