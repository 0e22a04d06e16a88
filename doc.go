// Package cjsonlogger is a thread-safe, in-process structured logger
// that accumulates log records in a hierarchical tree keyed by
// caller-supplied path components, and periodically serializes the
// whole tree to disk as a single JSON document.
//
// Unlike a conventional line-oriented logger, records are not
// appended to a text file one at a time. They live in memory as a
// mutable tree whose nodes carry ordered arrays of records, and the
// entire tree is re-emitted atomically on Dump or on rotation. A
// consumer can parse the primary log file as well-formed JSON at any
// point in the process's lifetime.
//
// There is exactly one logger per process, reached through the
// package-level functions Init, Log, Dump, Rotate, SetThreshold, and
// Destroy — not through an exported handle. Use the level-specific
// helpers (Critical, Error, Warn, Info, Debug) rather than Log
// directly; they inject the caller's file, function, and line
// automatically via runtime.Caller.
//
// InitFromConfigFile offers an alternative entry point that loads
// threshold and rotation settings from a YAML file (overridable by
// CJSONLOGGER_* environment variables) and keeps them live-reloaded
// for the life of the process.
//
//	cjsonlogger.Init(severity.Info, "app.json")
//	cjsonlogger.Info("%<1>starting up", "boot")
//	cjsonlogger.Dump()
//	cjsonlogger.Destroy()
package cjsonlogger
