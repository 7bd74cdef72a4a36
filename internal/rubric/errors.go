// Package rubric provides loading and lookup of grading rubrics for MOS Word practice projects.
package rubric

import "fmt"

// NotFoundError reports that no rubric could be loaded for a project,
// either because the rubric file is absent/unreadable or because the
// project is not listed in it. Callers are expected to degrade to a
// generated fallback rubric rather than abort grading.
type NotFoundError struct {
	ProjectID int
	Path      string
	Cause     error
}

func (e *NotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rubric for project %d not found in %s: %v", e.ProjectID, e.Path, e.Cause)
	}
	return fmt.Sprintf("rubric for project %d not found in %s", e.ProjectID, e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Cause
}
