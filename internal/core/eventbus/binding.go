package eventbus

import (
	"reflect"

	"github.com/lsevent/dispatcher/pkg/types"
)

// binding is one (callback, user-arg) record in an event's linked list.
// The list is intrusive and singly linked so that a callback appending a
// new binding mid-walk is naturally visible to that same walk through
// tail.next, without any snapshot or copy.
type binding struct {
	cbID          uintptr
	cb            types.NotifyCallback
	arg           interface{}
	pendingRemove bool
	pendingAdd    bool
	next          *binding
}

// callbackID returns the identity key for cb. Go has no portable notion of
// function-pointer equality for closures, but reflect.ValueOf(fn).Pointer()
// returns the entry address of the underlying code, which is stable for a
// given function value and serves as the callback uniqueness key: the same
// top-level function bound twice collides on this key, and so do two
// closures created from the same function literal; closures from distinct
// literals do not.
func callbackID(cb types.NotifyCallback) uintptr {
	return reflect.ValueOf(cb).Pointer()
}
