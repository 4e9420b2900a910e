//go:build debug

package debug

// Guard assertions that do more than evaluate a condition, e.g. walk a
// register window or format a message, with `if debug.Enabled {...}` so the
// whole block disappears from release builds.
const Enabled = true

// Assert panics with message if b is false. Used at driver entry points to
// catch bad buffer placement before it turns into a wild DMA store.
func Assert(b bool, message string) {
	if !b {
		panic(message)
	}
}

// AssertErrNil panics if err is not nil.
func AssertErrNil(err error) {
	if err != nil {
		panic(err)
	}
}
