// Package results persists graded training results through swappable sinks.
package results

import (
	"time"

	"github.com/datmos/word-grader/internal/types"
)

// TrainingResult is the persisted record of one graded submission, the
// grading result plus student/task metadata and a digest summary.
type TrainingResult struct {
	ID              string              `json:"id"`
	StudentID       string              `json:"studentId"`
	StudentName     string              `json:"studentName,omitempty"`
	ProjectID       int                 `json:"projectId"`
	FilePath        string              `json:"filePath,omitempty"`
	TotalScore      int                 `json:"totalScore"`
	MaxScore        int                 `json:"maxScore"`
	PassingScore    int                 `json:"passingScore"`
	Passed          bool                `json:"passed"`
	RubricGenerated bool                `json:"rubricGenerated,omitempty"`
	StartTime       time.Time           `json:"startTime"`
	EndTime         time.Time           `json:"endTime"`
	DurationMinutes float64             `json:"durationMinutes"`
	Items           []types.GradingItem `json:"items"`
	Summary         Summary             `json:"summary"`
}

// Summary digests a result into correct/incorrect counts and the task
// names the student did best and worst on.
type Summary struct {
	CorrectTasks   int      `json:"correctTasks"`
	IncorrectTasks int      `json:"incorrectTasks"`
	Strengths      []string `json:"strengths,omitempty"`
	Weaknesses     []string `json:"weaknesses,omitempty"`
}

// Collection is the on-disk shape of the file-backed result store.
type Collection struct {
	TrainingResults []TrainingResult `json:"trainingResults"`
	Metadata        Metadata         `json:"metadata"`
}

// Metadata carries store-level aggregates, recomputed on every write.
type Metadata struct {
	TotalResults int       `json:"totalResults"`
	PassedCount  int       `json:"passedCount"`
	AverageScore float64   `json:"averageScore"`
	LastUpdated  time.Time `json:"lastUpdated"`
}

// maxSummaryTasks caps how many task names land in strengths/weaknesses.
const maxSummaryTasks = 3

// summarize builds the result summary from graded items.
func summarize(items []types.GradingItem) Summary {
	var s Summary
	for _, item := range items {
		if item.IsCorrect {
			s.CorrectTasks++
			if len(s.Strengths) < maxSummaryTasks {
				s.Strengths = append(s.Strengths, item.Description)
			}
		} else {
			s.IncorrectTasks++
			if len(s.Weaknesses) < maxSummaryTasks {
				s.Weaknesses = append(s.Weaknesses, item.Description)
			}
		}
	}
	return s
}

// newTrainingResult assembles the persisted record from a grading
// result and its append context. Timing fields are the engine's
// measured values, not estimates.
func newTrainingResult(id string, result *types.GradingResult, appendCtx AppendContext) TrainingResult {
	end := result.StartedAt.Add(result.Duration)
	return TrainingResult{
		ID:              id,
		StudentID:       appendCtx.StudentID,
		StudentName:     appendCtx.StudentName,
		ProjectID:       result.ProjectID,
		FilePath:        appendCtx.FilePath,
		TotalScore:      result.TotalScore,
		MaxScore:        result.MaxScore,
		PassingScore:    result.PassingScore,
		Passed:          result.Passed,
		RubricGenerated: result.RubricGenerated,
		StartTime:       result.StartedAt,
		EndTime:         end,
		DurationMinutes: result.Duration.Minutes(),
		Items:           result.Items,
		Summary:         summarize(result.Items),
	}
}
