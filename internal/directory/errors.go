package directory

import (
	"fmt"
	"strings"
)

// ValidationError reports required fields missing from a create request.
// It is raised before any store call is made.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// ReadError wraps a failed read against the external store.
type ReadError struct {
	Op  string
	Err error
}

func (e *ReadError) Error() string { return fmt.Sprintf("%s: read failed: %v", e.Op, e.Err) }
func (e *ReadError) Unwrap() error { return e.Err }

// WriteError wraps a write the external store rejected.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string { return fmt.Sprintf("%s: write failed: %v", e.Op, e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }
