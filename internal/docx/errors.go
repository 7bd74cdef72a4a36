// Package docx provides read-only inspection of OOXML word-processing documents.
package docx

import "fmt"

// NotFoundError reports that the document path does not exist. Fatal for
// a grading run: without the document no partial credit is possible.
type NotFoundError struct {
	Path  string
	Cause error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Cause
}

// CorruptError reports that the file at Path could not be parsed as a
// valid OOXML package. Fatal for a grading run.
type CorruptError struct {
	Path    string
	Message string
	Cause   error
}

func (e *CorruptError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document corrupt: %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("document corrupt: %s: %s", e.Path, e.Message)
}

func (e *CorruptError) Unwrap() error {
	return e.Cause
}
