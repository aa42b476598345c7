// Package app hosts spell-check sessions: open documents, their adapters
// and the event loop that drives them.
package app

import (
	"errors"
	"fmt"
)

// Session errors.
var (
	// ErrSessionClosed indicates the session has been shut down.
	ErrSessionClosed = errors.New("session closed")

	// ErrDocumentNotFound indicates a document is not open in the session.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrDocumentAlreadyOpen indicates a document is already open.
	ErrDocumentAlreadyOpen = errors.New("document already open")

	// ErrNoChecker indicates no dictionary or script was configured.
	ErrNoChecker = errors.New("no checker configured")
)

// OperationError records which operation on which target failed.
type OperationError struct {
	Op     string // e.g. "open", "watch"
	Target string // e.g. a file path
	Err    error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
