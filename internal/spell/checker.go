package spell

import "reflect"

// Checker is the spelling oracle. CheckWord reports whether word is
// correctly spelled. Implementations are shared between adapters and must be
// safe for concurrent use if adapters run on different goroutines.
type Checker interface {
	CheckWord(word string) bool
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(word string) bool

// CheckWord calls f(word).
func (f CheckerFunc) CheckWord(word string) bool {
	return f(word)
}

// sameChecker compares checkers by identity without panicking on
// non-comparable implementations such as CheckerFunc.
func sameChecker(a, b Checker) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	return ta == reflect.TypeOf(b) && ta.Comparable() && a == b
}

// Label marks text in the adapter's region.
type Label uint8

const (
	// Unchecked text must be (re)checked.
	Unchecked Label = iota
	// Checked text is up to date.
	Checked
)

// String returns the label name.
func (l Label) String() string {
	switch l {
	case Unchecked:
		return "unchecked"
	case Checked:
		return "checked"
	default:
		return "unknown"
	}
}

// State describes the adapter's scheduling state.
type State uint8

const (
	// StateIdle means no scan is pending.
	StateIdle State = iota
	// StateArmed means the debounce timer is pending.
	StateArmed
	// StateRunning means a time-boxed scan is in progress.
	StateRunning
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}
