package cjsonlogger

// lifecycleState mirrors the process-wide states the component design
// names: Uninitialized, Active, Destroyed. Re-initialization from
// Destroyed returns to Active with a fresh empty tree, since Destroy
// has already freed the old one.
type lifecycleState int

const (
	stateUninitialized lifecycleState = iota
	stateActive
	stateDestroyed
)

func (s lifecycleState) String() string {
	switch s {
	case stateActive:
		return "Active"
	case stateDestroyed:
		return "Destroyed"
	default:
		return "Uninitialized"
	}
}
