// Package grading orchestrates rubric loading, document inspection, and
// criterion evaluation into a single grading run.
package grading

import "sync"

// Session tracks one student's working files across practice projects.
// It replaces process-wide state with an explicit per-student object, so
// concurrent sessions for different students cannot collide. A Session
// is safe for concurrent use.
type Session struct {
	StudentID   string
	StudentName string

	mu           sync.RWMutex
	workingFiles map[int]string
}

// NewSession creates a session for one student.
func NewSession(studentID, studentName string) *Session {
	return &Session{
		StudentID:    studentID,
		StudentName:  studentName,
		workingFiles: make(map[int]string),
	}
}

// SetWorkingFile records the path of the student's working document for
// a project.
func (s *Session) SetWorkingFile(projectID int, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workingFiles[projectID] = path
}

// WorkingFile returns the recorded working document path for a project.
func (s *Session) WorkingFile(projectID int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	path, ok := s.workingFiles[projectID]
	return path, ok
}
