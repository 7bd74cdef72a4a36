// Package results persists graded training results through swappable sinks.
package results

import (
	"context"

	"github.com/datmos/word-grader/internal/types"
)

// AppendContext carries the caller-supplied identity of a submission.
type AppendContext struct {
	StudentID   string
	StudentName string
	FilePath    string
}

// Sink is the persistence contract for graded results. A failed Append
// never invalidates the grading result itself: callers already hold the
// result and can display it even when it could not be saved.
type Sink interface {
	Append(ctx context.Context, result *types.GradingResult, appendCtx AppendContext) (*TrainingResult, error)
	List(ctx context.Context) ([]TrainingResult, error)
}
