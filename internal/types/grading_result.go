// Package types provides type definitions for structured data shared across the word-grader system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// GradingItem represents the evaluated outcome of one rubric task for one submission.
type GradingItem struct {
	TaskID      int    `json:"task_id"`
	Description string `json:"description"`
	Score       int    `json:"score"`
	MaxScore    int    `json:"max_score"`
	IsCorrect   bool   `json:"is_correct"`
	Feedback    string `json:"feedback,omitempty"`

	// Unverified marks tasks whose rubric carries only human-readable
	// verification steps and no machine-checkable rules.
	Unverified bool `json:"unverified,omitempty"`
}

// GradingResult represents the aggregate outcome of one graded submission.
// It is constructed once per grading run and never mutated afterwards.
type GradingResult struct {
	RunID        uuid.UUID     `json:"run_id"`
	ProjectID    int           `json:"project_id"`
	TotalScore   int           `json:"total_score"`
	MaxScore     int           `json:"max_score"`
	PassingScore int           `json:"passing_score"`
	Passed       bool          `json:"passed"`
	Items        []GradingItem `json:"items"`

	// RubricGenerated is set when the rubric for the project could not be
	// loaded and grading ran against a generated fallback rubric.
	RubricGenerated bool `json:"rubric_generated,omitempty"`

	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
}

// CorrectCount returns the number of items graded as correct.
func (r *GradingResult) CorrectCount() int {
	count := 0
	for _, item := range r.Items {
		if item.IsCorrect {
			count++
		}
	}
	return count
}

// IncorrectCount returns the number of items graded as incorrect.
func (r *GradingResult) IncorrectCount() int {
	return len(r.Items) - r.CorrectCount()
}
