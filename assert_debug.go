//go:build cjsonlog_debug

package cjsonlogger

import (
	"fmt"
	"runtime"
)

// assertHere aborts the process, identifying its caller's source
// location. Only built into debug builds via the cjsonlog_debug tag;
// release/dist builds get the stderr-only variant in
// assert_release.go instead.
func assertHere(msg string) {
	pc, file, line, ok := runtime.Caller(1)
	fn := "unknown"
	if ok {
		if f := runtime.FuncForPC(pc); f != nil {
			fn = shortFuncName(f.Name())
		}
	}
	panic(fmt.Sprintf("Assertion at [%s:%s:%d] failed: %s\n", file, fn, line, msg))
}

// assertUninitializedAccept aborts the process for the
// Uninitialized-but-would-accept precondition violation: Log was
// called while the logger has no tree, but the severity filter would
// have accepted the record had one existed. See assert_release.go
// for the release/dist variant, which is a silent no-op for this
// specific category.
func assertUninitializedAccept(msg string) {
	pc, file, line, ok := runtime.Caller(1)
	fn := "unknown"
	if ok {
		if f := runtime.FuncForPC(pc); f != nil {
			fn = shortFuncName(f.Name())
		}
	}
	panic(fmt.Sprintf("Assertion at [%s:%s:%d] failed: %s\n", file, fn, line, msg))
}
