package eventbus

import (
	"github.com/lsevent/dispatcher/pkg/interfaces"
	"github.com/lsevent/dispatcher/pkg/types"
)

// event is a named attachment point for callbacks under one Dispatcher. It
// satisfies both interfaces.Event (the public surface) and types.Notifier
// (the borrowed view handed to callbacks via EventData.Notifier) with the
// same two methods.
type event struct {
	name       string
	dispatcher *Dispatcher
	head, tail *binding
}

func newEvent(name string, d *Dispatcher) *event {
	return &event{name: name, dispatcher: d}
}

func (e *event) Name() string        { return e.name }
func (e *event) Source() interface{} { return e.dispatcher.Source() }

// findBinding returns the binding for id if one exists, live or pending
// removal.
func (e *event) findBinding(id uintptr) *binding {
	for b := e.head; b != nil; b = b.next {
		if b.cbID == id {
			return b
		}
	}
	return nil
}

// append adds a fresh binding to the tail of the list.
func (e *event) append(cb types.NotifyCallback, id uintptr, arg interface{}, pendingAdd bool) {
	b := &binding{cbID: id, cb: cb, arg: arg, pendingAdd: pendingAdd}
	if e.tail == nil {
		e.head = b
	} else {
		e.tail.next = b
	}
	e.tail = b
}

// unlink removes target from the list. Callers must ensure target is
// actually a member of this list.
func (e *event) unlink(target *binding) {
	var prev *binding
	for b := e.head; b != nil; b = b.next {
		if b == target {
			if prev == nil {
				e.head = b.next
			} else {
				prev.next = b.next
			}
			if e.tail == b {
				e.tail = prev
			}
			return
		}
		prev = b
	}
}

// Bind implements interfaces.Event. A binding already present and not
// pending removal is a no-op on both position and arg. A binding pending
// removal has that flag cleared instead of a duplicate being appended,
// since the original never actually left the list. Otherwise a fresh
// binding node is allocated and appended, marked pending-add if this event
// is the one currently mid-dispatch; allocation failure leaves the list
// unchanged.
func (e *event) Bind(cb types.NotifyCallback, arg interface{}) error {
	if cb == nil {
		return types.NewError("bind", types.KindInvalidArg, types.ErrInvalidArg)
	}

	id := callbackID(cb)
	if existing := e.findBinding(id); existing != nil {
		if existing.pendingRemove {
			existing.pendingRemove = false
		}
		return nil
	}

	if _, ok := allocToken(0); !ok {
		return types.NewError("bind", types.KindNoMemory, types.ErrNoMemory)
	}

	pendingAdd := e.dispatcher.isDispatching(e)
	e.append(cb, id, arg, pendingAdd)
	return nil
}

// Unbind implements interfaces.Event. Unbinding an unknown or
// already-removed callback is a silent no-op. If this event is the one
// currently mid-dispatch, removal is deferred to the cleanup pass that
// follows the walk; otherwise the binding is unlinked immediately.
func (e *event) Unbind(cb types.NotifyCallback) {
	if cb == nil {
		return
	}

	id := callbackID(cb)
	b := e.findBinding(id)
	if b == nil || b.pendingRemove {
		return
	}

	if e.dispatcher.isDispatching(e) {
		b.pendingRemove = true
		return
	}
	e.unlink(b)
}

// Trigger implements interfaces.Event.
func (e *event) Trigger(data interface{}, result types.ResultCallback, resultArg interface{}) error {
	return e.dispatcher.trigger(e, data, result, resultArg, nil)
}

// TriggerPrepared implements interfaces.Event.
func (e *event) TriggerPrepared(data interface{}, result types.ResultCallback, resultArg interface{}, record interfaces.TriggerRecord) {
	r, ok := record.(*triggerRecord)
	if !ok || r == nil {
		return
	}
	_ = e.dispatcher.trigger(e, data, result, resultArg, r)
}

var (
	_ interfaces.Event = (*event)(nil)
	_ types.Notifier   = (*event)(nil)
)
