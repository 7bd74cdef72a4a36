package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datmos/word-grader/internal/results"
	"github.com/datmos/word-grader/internal/types"
)

func TestRenderHTML(t *testing.T) {
	tr := &results.TrainingResult{
		ID:           "TR003",
		StudentID:    "sv001",
		StudentName:  "Nguyen Van A",
		ProjectID:    2,
		TotalScore:   15,
		MaxScore:     20,
		PassingScore: 10,
		Passed:       true,
		StartTime:    time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC),
		EndTime:      time.Date(2026, 8, 20, 9, 45, 0, 0, time.UTC),
		Items: []types.GradingItem{
			{TaskID: 1, Description: "Title heading", Score: 10, MaxScore: 10, IsCorrect: true},
			{TaskID: 2, Description: "Insert table", Score: 5, MaxScore: 10, IsCorrect: false, Feedback: "expected at least 2 table(s), found 1"},
		},
		Summary: results.Summary{CorrectTasks: 1, IncorrectTasks: 1},
	}

	var sb strings.Builder
	require.NoError(t, RenderHTML(&sb, tr))
	html := sb.String()

	assert.Contains(t, html, "TR003")
	assert.Contains(t, html, "Nguyen Van A")
	assert.Contains(t, html, "Title heading")
	assert.Contains(t, html, "Insert table")
	assert.Contains(t, html, "15")
	assert.Contains(t, html, "expected at least 2 table(s), found 1")
}

func TestRenderHTML_EscapesStudentInput(t *testing.T) {
	tr := &results.TrainingResult{
		ID:          "TR001",
		StudentName: "<script>alert(1)</script>",
		Items:       []types.GradingItem{},
	}

	var sb strings.Builder
	require.NoError(t, RenderHTML(&sb, tr))

	assert.NotContains(t, sb.String(), "<script>alert(1)</script>")
}

func TestRenderHTML_NilResult(t *testing.T) {
	var sb strings.Builder
	assert.Error(t, RenderHTML(&sb, nil))
}
