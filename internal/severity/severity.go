// Package severity implements the ordered log-level enumeration and the
// accept/drop decision described for the logger's severity filter.
//
// The type carries no concurrency guarantees of its own; the caller
// (the top-level logger) is responsible for serializing access the way
// it serializes access to the rest of its configuration state.
package severity

import (
	"fmt"
	"strings"
)

// Level is an ordered severity, increasing in verbosity from Critical to
// Debug. Start and End are open-interval sentinels: a Level is only
// meaningful when Start < Level < End.
type Level int

const (
	// Start is the "uninitialized" sentinel, below Critical.
	Start Level = iota
	Critical
	Error
	Warn
	Info
	Debug
	// End delimits validity, above Debug.
	End
)

// String renders the uppercase level name, or UNKNOWN outside the valid range.
func (l Level) String() string {
	switch l {
	case Critical:
		return "CRITICAL"
	case Error:
		return "ERROR"
	case Warn:
		return "WARN"
	case Info:
		return "INFO"
	case Debug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// InRange reports whether l lies in the open interval (Start, End).
func (l Level) InRange() bool {
	return l > Start && l < End
}

// ParseLevel converts a case-insensitive level name into a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(name) {
	case "CRITICAL":
		return Critical, nil
	case "ERROR":
		return Error, nil
	case "WARN", "WARNING":
		return Warn, nil
	case "INFO":
		return Info, nil
	case "DEBUG":
		return Debug, nil
	default:
		return Start, fmt.Errorf("severity: unknown level %q", name)
	}
}

// Filter holds the single configured threshold and decides whether a
// given level should be accepted. It is not safe for concurrent use;
// the logger wraps it with its own config lock.
type Filter struct {
	threshold Level
}

// NewFilter returns a filter with no threshold configured (Start).
func NewFilter() *Filter {
	return &Filter{threshold: Start}
}

// SetThreshold clamps to (Start, End); values outside the open interval
// are silently ignored and leave the threshold unchanged.
func (f *Filter) SetThreshold(l Level) {
	if l.InRange() {
		f.threshold = l
	}
}

// Threshold returns the currently configured threshold.
func (f *Filter) Threshold() Level {
	return f.threshold
}

// ResetThreshold forces the threshold back to the uninitialized
// sentinel, unconditionally. SetThreshold cannot do this itself since
// Start fails its own in-range clamp; lifecycle teardown needs the
// unconditional form.
func (f *Filter) ResetThreshold() {
	f.threshold = Start
}

// ShouldLog reports whether a call at level l passes the filter, given
// that active reflects the logger's lifecycle state. It does not itself
// know about lifecycle; active is supplied by the caller.
func (f *Filter) ShouldLog(active bool, l Level) bool {
	if !active {
		return false
	}
	if !l.InRange() {
		return false
	}
	if !f.threshold.InRange() {
		return false
	}
	return l <= f.threshold
}
