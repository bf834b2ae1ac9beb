// Package eventbus implements a reentrant, single-threaded, breadth-first
// named-event dispatcher.
//
// A caller owns a source identity, creates a Dispatcher bound to that
// source, declares named events on it, binds callbacks to events, and
// triggers events with per-invocation payload data. Callbacks may, while
// running, freely bind new callbacks, unbind callbacks (including
// themselves and peers), trigger further events, and destroy the
// dispatcher, without corrupting iteration or producing use-after-free.
//
// # File organization
//
//   - nameindex.go - case-insensitive event name lookup
//   - binding.go   - the singly linked, insertion-ordered binding list
//   - event.go     - the Event implementation and its bind/unbind rules
//   - moment.go    - the trigger record and the moment queue
//   - memfn.go     - the pluggable global memory-function triple
//   - pool.go      - the per-moment arena satisfying types.Pool
//   - dispatcher.go - the Dispatcher and its breadth-first drain loop
//   - metrics.go   - Prometheus collectors over dispatch activity
package eventbus
