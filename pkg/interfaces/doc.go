// Package interfaces defines the public interfaces implemented by the
// dispatcher's core.
//
//   - eventbus.go - Dispatcher, Event, and the trigger-record contract
//
// This package holds interface definitions only; concrete data structures
// live in pkg/types, and the implementation lives in internal/core/eventbus.
package interfaces
