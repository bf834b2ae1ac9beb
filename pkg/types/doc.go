// Package types defines the public data structures shared by the dispatcher
// and its callers.
//
// This is the lowest-level package in the module: it depends on nothing
// else internal to lsevent/dispatcher. Every type here is a plain value
// used to pass data across the dispatcher/event/callback boundary.
//
// # File organization
//
//   - events.go - EventData, NotifyCallback, ResultCallback, Pool
//   - errors.go - Kind, Error, and the public sentinel errors
package types
