package editor

import (
	"errors"
	"fmt"
)

// Session errors.
var (
	// ErrClosed indicates an operation on a closed session.
	ErrClosed = errors.New("session closed")

	// ErrNodeNotFound indicates the target node does not exist.
	ErrNodeNotFound = errors.New("node not found")

	// ErrDuplicateNodeID indicates an added node's id already exists
	// somewhere in the forest.
	ErrDuplicateNodeID = errors.New("duplicate node id")

	// ErrParentNotFound indicates an insert under a nonexistent parent.
	ErrParentNotFound = errors.New("parent node not found")
)

// OperationError represents an error that occurred during a named session
// operation.
type OperationError struct {
	Op     string // Operation name (e.g., "import", "export", "add-node")
	Target string // Target of the operation (e.g., a node id)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
}

// Unwrap returns the underlying error.
func (e *OperationError) Unwrap() error {
	return e.Err
}
