//go:build !cjsonlog_debug

package cjsonlogger

import (
	"fmt"
	"os"
	"runtime"
)

// assertHere reports its caller's source location to stderr and
// returns. Release/dist builds never abort on a precondition
// violation; see assert_debug.go for the debug-build variant. msg is
// not included in the stderr line — callers that want the message
// recorded log it separately (reportIOFailure does, via s.diag.Error)
// since the release/dist stderr contract is pinned to this exact
// literal shape.
func assertHere(_ string) {
	pc, file, line, ok := runtime.Caller(1)
	fn := "unknown"
	if ok {
		if f := runtime.FuncForPC(pc); f != nil {
			fn = shortFuncName(f.Name())
		}
	}
	fmt.Fprintf(os.Stderr, "Assertion at [%s:%s:%d] failed\n", file, fn, line)
}

// assertUninitializedAccept is the no-op release/dist variant for the
// Uninitialized-but-would-accept precondition violation: unlike
// assertHere's file-I/O-failure case, this category is silent even in
// release/dist builds. See assert_debug.go for the debug-build
// variant, which aborts.
func assertUninitializedAccept(_ string) {}
