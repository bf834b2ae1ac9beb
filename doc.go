// Package lsevent provides a reentrant, single-threaded, breadth-first
// named-event dispatcher.
//
// A caller owns a source (an opaque identity), creates a Dispatcher bound
// to that source, declares named events under it, attaches callbacks to
// events, and triggers events with per-invocation payload data. Callbacks
// may, while executing, freely bind new callbacks, unbind callbacks
// (including themselves and peers), trigger further events, and even
// destroy the dispatcher, without corrupting iteration or producing
// use-after-free.
//
// # Quick start
//
//	d, err := lsevent.New("my-source")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer d.Destroy()
//
//	evt, err := d.CreateEvent("connect")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	evt.Bind(func(e *types.EventData, arg interface{}) {
//	    fmt.Println("connected:", e.Data)
//	}, nil)
//
//	evt.Trigger("peer-1", nil, nil)
//
// # File organization
//
//   - doc.go      - package documentation
//   - dispatcher.go - public constructors wrapping internal/core/eventbus
//   - errors.go   - re-exported sentinel errors and the Kind/Error type
//
// The dispatch algorithm itself and its Prometheus metrics live under
// internal/core/eventbus and are not part of this package's public
// surface. Configuration lives in the public config package, taken by
// NewWithConfig and WithMetricsConfig; logging lives in pkg/lib/log.
package lsevent
