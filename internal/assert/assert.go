//go:build !release

// Package assert provides debug-build assertions for container
// preconditions. Building with the release tag compiles them out.
package assert

import "fmt"

// Assert panics if cond is false and reports the formatted message.
//
// Assert is a no-op when compiled with the
// release build tag.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintln("assertion failed:", fmt.Sprintf(format, args...)))
	}
}
