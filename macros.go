package cjsonlogger

import (
	"runtime"
	"strings"

	"github.com/tononidis/cJSONLogger/internal/parser"
	"github.com/tononidis/cJSONLogger/internal/severity"
)

// Critical, Error, Warn, Info, and Debug are the caller-facing
// helpers. Each injects the macro header prefix and the calling
// file's basename, function name, and line number ahead of the
// user's template, one helper per severity level.
func Critical(template string, args ...interface{}) { logWithCaller(severity.Critical, template, args...) }
func Error(template string, args ...interface{})    { logWithCaller(severity.Error, template, args...) }
func Warn(template string, args ...interface{})     { logWithCaller(severity.Warn, template, args...) }
func Info(template string, args ...interface{})     { logWithCaller(severity.Info, template, args...) }
func Debug(template string, args ...interface{})    { logWithCaller(severity.Debug, template, args...) }

func logWithCaller(level severity.Level, template string, args ...interface{}) {
	file, fn, line := callerInfo(3)

	full := parser.HeaderPrefix + template
	allArgs := make([]interface{}, 0, 3+len(args))
	allArgs = append(allArgs, file, fn, line)
	allArgs = append(allArgs, args...)

	Log(level, full, allArgs...)
}

// callerInfo reports the basename, short function name, and line
// number of the caller skip frames up the stack.
func callerInfo(skip int) (file, fn string, line int) {
	pc, path, ln, ok := runtime.Caller(skip)
	if !ok {
		return "", "", 0
	}
	file = basename(path)
	line = ln
	fn = "unknown"
	if f := runtime.FuncForPC(pc); f != nil {
		fn = shortFuncName(f.Name())
	}
	return file, fn, line
}

// basename strips everything up to and including the last '/'.
// runtime.Caller always reports slash-separated paths regardless of
// build OS, so a literal '/' search is correct here without pulling
// in path/filepath.
func basename(path string) string {
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// shortFuncName trims a fully qualified runtime function name (e.g.
// "github.com/tononidis/cJSONLogger.Info") down to everything after
// the package name: "Info" here, or "Type.Method" for a method.
func shortFuncName(full string) string {
	if idx := strings.LastIndexByte(full, '/'); idx >= 0 {
		full = full[idx+1:]
	}
	if idx := strings.IndexByte(full, '.'); idx >= 0 {
		return full[idx+1:]
	}
	return full
}
