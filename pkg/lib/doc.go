// Package lib contains infrastructure utilities with no dependency on the
// dispatcher's own domain types.
//
//   - log: the structured logging wrapper used throughout the module.
package lib
