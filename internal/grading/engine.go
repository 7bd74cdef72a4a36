// Package grading orchestrates rubric loading, document inspection, and
// criterion evaluation into a single grading run.
package grading

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/datmos/word-grader/internal/criteria"
	"github.com/datmos/word-grader/internal/docx"
	"github.com/datmos/word-grader/internal/rubric"
	"github.com/datmos/word-grader/internal/types"
)

// Engine grades student-produced Word documents against project rubrics.
// An Engine carries no per-run state; a single Engine may be shared
// across sequential grading runs.
type Engine struct {
	rubrics *rubric.Store
	logger  zerolog.Logger
}

// NewEngine creates a grading engine backed by the given rubric store.
func NewEngine(rubrics *rubric.Store, logger zerolog.Logger) *Engine {
	return &Engine{
		rubrics: rubrics,
		logger:  logger.With().Str("component", "grading_engine").Logger(),
	}
}

// Grade grades the document at documentPath against the rubric for
// projectID and returns the aggregate result.
//
// Only document-level failures abort the run: a missing file surfaces
// as *docx.NotFoundError and an unparseable package as
// *docx.CorruptError, never as a zero-score result. A missing rubric
// degrades to a generated fallback rubric with RubricGenerated set on
// the result. Per-criterion failures are absorbed into their items.
//
// Evaluation runs sequentially in rubric task order; the order of Items
// is part of the user-visible contract. The document handle is released
// on every exit path. Cancellation is cooperative, checked between
// evaluator calls only.
func (e *Engine) Grade(ctx context.Context, documentPath string, projectID int) (*types.GradingResult, error) {
	if documentPath == "" {
		return nil, fmt.Errorf("document path is empty")
	}
	if projectID <= 0 {
		return nil, fmt.Errorf("project id must be positive, got %d", projectID)
	}

	started := time.Now()
	runID := uuid.New()
	logger := e.logger.With().Stringer("run_id", runID).Int("project_id", projectID).Logger()

	r, err := e.rubrics.Load(projectID)
	if err != nil {
		var notFound *rubric.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to load rubric: %w", err)
		}
		logger.Warn().Err(err).Msg("rubric missing, grading against generated fallback")
		r = rubric.DefaultRubric(projectID, 0)
	}

	doc, err := docx.Open(documentPath)
	if err != nil {
		logger.Error().Err(err).Str("document", documentPath).Msg("failed to open document")
		return nil, err
	}
	defer func() { _ = doc.Close() }()

	items := make([]types.GradingItem, 0, len(r.Tasks))
	for i := range r.Tasks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Resolve by 1-based task id first, by position second; the
		// positional fallback tolerates rubrics whose task ids drifted
		// from their array order.
		task, ok := r.Task(i+1, i)
		if !ok {
			task = &r.Tasks[i]
		}

		item := criteria.Evaluate(doc, task)
		logger.Debug().
			Int("task_id", task.TaskID).
			Int("score", item.Score).
			Int("max_score", item.MaxScore).
			Bool("correct", item.IsCorrect).
			Msg("task evaluated")
		items = append(items, item)
	}

	total := 0
	for _, item := range items {
		total += item.Score
	}
	if total > r.MaxScore {
		total = r.MaxScore
	}

	result := &types.GradingResult{
		RunID:           runID,
		ProjectID:       projectID,
		TotalScore:      total,
		MaxScore:        r.MaxScore,
		PassingScore:    r.PassingScore,
		Passed:          total >= r.PassingScore,
		Items:           items,
		RubricGenerated: r.Generated,
		StartedAt:       started,
		Duration:        time.Since(started),
	}

	logger.Info().
		Int("total_score", total).
		Int("max_score", r.MaxScore).
		Bool("passed", result.Passed).
		Dur("duration", result.Duration).
		Msg("grading complete")
	return result, nil
}
