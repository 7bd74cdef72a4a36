// Package results persists graded training results through swappable sinks.
package results

import "fmt"

// PersistenceError reports that a sink could not read or write its
// backing store. Distinct from grading failures: a graded result that
// fails to persist is still returned to the caller.
type PersistenceError struct {
	Op    string
	Store string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("result store %s failed for %s: %v", e.Op, e.Store, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}
