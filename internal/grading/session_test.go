package grading

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_WorkingFiles(t *testing.T) {
	s := NewSession("sv001", "Nguyen Van A")

	_, ok := s.WorkingFile(1)
	assert.False(t, ok)

	s.SetWorkingFile(1, "/work/project1.docx")
	s.SetWorkingFile(2, "/work/project2.docx")

	path, ok := s.WorkingFile(1)
	require.True(t, ok)
	assert.Equal(t, "/work/project1.docx", path)

	// Re-recording a project replaces the previous path.
	s.SetWorkingFile(1, "/work/project1-v2.docx")
	path, _ = s.WorkingFile(1)
	assert.Equal(t, "/work/project1-v2.docx", path)
}

func TestSession_ConcurrentAccess(t *testing.T) {
	s := NewSession("sv002", "Tran Thi B")

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(project int) {
			defer wg.Done()
			s.SetWorkingFile(project, fmt.Sprintf("/work/p%d.docx", project))
			_, _ = s.WorkingFile(project)
		}(i)
	}
	wg.Wait()

	for i := 1; i <= 20; i++ {
		path, ok := s.WorkingFile(i)
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("/work/p%d.docx", i), path)
	}
}
