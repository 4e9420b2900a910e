//go:build !debug

// Package debug provides assertions that can be enabled with the debug build
// tag or will otherwise compile to no-ops.
//
// This is not considered idiomatic Go, but catches driver misuse early on a
// target where a silent wild store is much harder to track down.
package debug

// Guard assertions that do more than evaluate a condition, e.g. walk a
// register window or format a message, with `if debug.Enabled {...}` so the
// whole block disappears from release builds.
const Enabled = false

// Assert panics with message if b is false. Used at driver entry points to
// catch bad buffer placement before it turns into a wild DMA store.
func Assert(b bool, message string) {}

// AssertErrNil panics if err is not nil.
func AssertErrNil(err error) {}
