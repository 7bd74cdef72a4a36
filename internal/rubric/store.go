// Package rubric provides loading and lookup of grading rubrics for MOS Word practice projects.
package rubric

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Fallback rubric shape used when no rubric entry exists for a project.
const (
	defaultTaskCount  = 5
	defaultTaskPoints = 10
)

// Store loads rubric definitions from a JSON rubric file. The file holds
// a top-level array of per-project rubrics and is treated as read-only
// external configuration.
type Store struct {
	path     string
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewStore creates a rubric store reading from the given rubric file path.
func NewStore(path string, logger zerolog.Logger) *Store {
	return &Store{
		path:     path,
		validate: validator.New(),
		logger:   logger.With().Str("component", "rubric_store").Logger(),
	}
}

// Load returns the rubric for the given project. It returns a
// *NotFoundError when the rubric file is absent or unreadable, fails
// schema validation, or has no entry for the project; it never panics.
func (s *Store) Load(projectID int) (*Rubric, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("rubric file unreadable")
		return nil, &NotFoundError{ProjectID: projectID, Path: s.path, Cause: err}
	}

	if err := ValidateBytes(data); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("rubric file failed schema validation")
		return nil, &NotFoundError{ProjectID: projectID, Path: s.path, Cause: err}
	}

	var rubrics []Rubric
	if err := json.Unmarshal(data, &rubrics); err != nil {
		return nil, &NotFoundError{
			ProjectID: projectID,
			Path:      s.path,
			Cause:     fmt.Errorf("failed to parse rubric JSON: %w", err),
		}
	}

	for i := range rubrics {
		if rubrics[i].ProjectID != projectID {
			continue
		}
		if err := s.validate.Struct(&rubrics[i]); err != nil {
			return nil, &NotFoundError{
				ProjectID: projectID,
				Path:      s.path,
				Cause:     fmt.Errorf("rubric entry is invalid: %w", err),
			}
		}
		return &rubrics[i], nil
	}

	return nil, &NotFoundError{ProjectID: projectID, Path: s.path}
}

// DefaultRubric builds a generic fallback rubric with index-derived task
// labels, used so grading can still proceed when no rubric is available.
// The result is marked Generated so downstream consumers can flag the
// run as ungraded-by-rubric instead of silently presenting it as a real
// score.
func DefaultRubric(projectID, taskCount int) *Rubric {
	if taskCount <= 0 {
		taskCount = defaultTaskCount
	}

	tasks := make([]GradingTask, taskCount)
	for i := range tasks {
		tasks[i] = GradingTask{
			TaskID:    i + 1,
			TaskName:  fmt.Sprintf("Task %d", i+1),
			ShortName: fmt.Sprintf("T%d", i+1),
			MaxPoints: defaultTaskPoints,
		}
	}

	maxScore := taskCount * defaultTaskPoints
	return &Rubric{
		ProjectID:    projectID,
		ProjectName:  fmt.Sprintf("Project %d", projectID),
		MaxScore:     maxScore,
		PassingScore: maxScore / 2,
		Tasks:        tasks,
		Generated:    true,
	}
}
