package grading

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datmos/word-grader/internal/docx"
	"github.com/datmos/word-grader/internal/docx/docxtest"
	"github.com/datmos/word-grader/internal/rubric"
)

const headingRubric = `[
  {
    "projectId": 1,
    "projectName": "Report basics",
    "maxScore": 10,
    "passingScore": 5,
    "gradingTasks": [
      {
        "taskId": 1,
        "taskName": "Introduction heading",
        "maxScore": 10,
        "gradingCriteria": [
          {"type": "paragraphStyle", "style": "Heading 1", "text": "Introduction", "exact": true}
        ]
      }
    ]
  }
]`

func newEngine(t *testing.T, rubricContent string) *Engine {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rubric.json")
	require.NoError(t, os.WriteFile(path, []byte(rubricContent), 0644))
	return NewEngine(rubric.NewStore(path, zerolog.Nop()), zerolog.Nop())
}

func headingDoc(t *testing.T, text string) string {
	t.Helper()
	return docxtest.Write(t, docxtest.Doc{
		BodyXML:   docxtest.Paragraph("Heading1", text),
		StylesXML: docxtest.Style("Heading1", "heading 1"),
	})
}

func TestGrade_FullMarks(t *testing.T) {
	engine := newEngine(t, headingRubric)
	docPath := headingDoc(t, "Introduction")

	result, err := engine.Grade(context.Background(), docPath, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, result.ProjectID)
	assert.Equal(t, 10, result.TotalScore)
	assert.Equal(t, 10, result.MaxScore)
	assert.Equal(t, 5, result.PassingScore)
	assert.True(t, result.Passed)
	assert.False(t, result.RubricGenerated)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", result.RunID.String())

	require.Len(t, result.Items, 1)
	assert.Equal(t, 1, result.Items[0].TaskID)
	assert.True(t, result.Items[0].IsCorrect)
}

func TestGrade_NearMiss_ScoresZero(t *testing.T) {
	// "Intro" is not an exact match for "Introduction".
	engine := newEngine(t, headingRubric)
	docPath := headingDoc(t, "Intro")

	result, err := engine.Grade(context.Background(), docPath, 1)
	require.NoError(t, err)

	assert.Equal(t, 0, result.TotalScore)
	assert.False(t, result.Passed)
	require.Len(t, result.Items, 1)
	assert.False(t, result.Items[0].IsCorrect)
	assert.NotEmpty(t, result.Items[0].Feedback)
}

func TestGrade_CorruptDocument_IsFatal(t *testing.T) {
	engine := newEngine(t, headingRubric)
	path := filepath.Join(t.TempDir(), "broken.docx")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	result, err := engine.Grade(context.Background(), path, 1)

	assert.Nil(t, result)
	var corrupt *docx.CorruptError
	require.ErrorAs(t, err, &corrupt)
}

func TestGrade_MissingDocument_IsFatal(t *testing.T) {
	engine := newEngine(t, headingRubric)

	_, err := engine.Grade(context.Background(), filepath.Join(t.TempDir(), "absent.docx"), 1)

	var notFound *docx.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestGrade_MissingRubric_FallsBackToGenerated(t *testing.T) {
	engine := NewEngine(rubric.NewStore(filepath.Join(t.TempDir(), "absent.json"), zerolog.Nop()), zerolog.Nop())
	docPath := headingDoc(t, "Introduction")

	result, err := engine.Grade(context.Background(), docPath, 3)
	require.NoError(t, err)

	assert.True(t, result.RubricGenerated)
	assert.NotEmpty(t, result.Items)
	assert.Equal(t, result.MaxScore/2, result.PassingScore)
}

func TestGrade_UnknownProject_FallsBackToGenerated(t *testing.T) {
	engine := newEngine(t, headingRubric)
	docPath := headingDoc(t, "Introduction")

	result, err := engine.Grade(context.Background(), docPath, 42)
	require.NoError(t, err)

	assert.True(t, result.RubricGenerated)
	assert.Equal(t, 42, result.ProjectID)
}

func TestGrade_InputValidation(t *testing.T) {
	engine := newEngine(t, headingRubric)

	_, err := engine.Grade(context.Background(), "", 1)
	assert.Error(t, err)

	_, err = engine.Grade(context.Background(), "some.docx", 0)
	assert.Error(t, err)

	_, err = engine.Grade(context.Background(), "some.docx", -3)
	assert.Error(t, err)
}

func TestGrade_Deterministic(t *testing.T) {
	engine := newEngine(t, headingRubric)
	docPath := headingDoc(t, "Introduction")

	first, err := engine.Grade(context.Background(), docPath, 1)
	require.NoError(t, err)
	second, err := engine.Grade(context.Background(), docPath, 1)
	require.NoError(t, err)

	assert.Equal(t, first.TotalScore, second.TotalScore)
	assert.Equal(t, first.Passed, second.Passed)
	assert.Equal(t, first.Items, second.Items)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestGrade_ScoreBounds(t *testing.T) {
	// Per-task points exceed the rubric's maxScore; the total is capped.
	content := `[
	  {
	    "projectId": 1,
	    "maxScore": 10,
	    "passingScore": 5,
	    "gradingTasks": [
	      {"taskId": 1, "taskName": "A", "maxScore": 8,
	       "gradingCriteria": [{"type": "textContains", "text": "hello"}]},
	      {"taskId": 2, "taskName": "B", "maxScore": 8,
	       "gradingCriteria": [{"type": "textContains", "text": "world"}]}
	    ]
	  }
	]`
	engine := newEngine(t, content)
	docPath := docxtest.Write(t, docxtest.Doc{BodyXML: docxtest.Paragraph("", "hello world")})

	result, err := engine.Grade(context.Background(), docPath, 1)
	require.NoError(t, err)

	assert.Equal(t, 10, result.TotalScore)
	assert.True(t, result.Passed)
}

func TestGrade_PositionalTaskFallback(t *testing.T) {
	// Task ids drifted from their array order; grading still resolves
	// each position to a task and keeps the rubric's item order.
	content := `[
	  {
	    "projectId": 1,
	    "maxScore": 10,
	    "passingScore": 5,
	    "gradingTasks": [
	      {"taskId": 7, "taskName": "First by position", "maxScore": 5,
	       "gradingCriteria": [{"type": "textContains", "text": "hello"}]},
	      {"taskId": 9, "taskName": "Second by position", "maxScore": 5,
	       "gradingCriteria": [{"type": "textContains", "text": "world"}]}
	    ]
	  }
	]`
	engine := newEngine(t, content)
	docPath := docxtest.Write(t, docxtest.Doc{BodyXML: docxtest.Paragraph("", "hello world")})

	result, err := engine.Grade(context.Background(), docPath, 1)
	require.NoError(t, err)

	require.Len(t, result.Items, 2)
	assert.Equal(t, 7, result.Items[0].TaskID)
	assert.Equal(t, 9, result.Items[1].TaskID)
	assert.Equal(t, 10, result.TotalScore)
}

func TestGrade_CancelledContext(t *testing.T) {
	engine := newEngine(t, headingRubric)
	docPath := headingDoc(t, "Introduction")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Grade(ctx, docPath, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGrade_EvaluatorFailureStaysInItem(t *testing.T) {
	// An unknown rule type fails its own task without aborting the run.
	content := `[
	  {
	    "projectId": 1,
	    "maxScore": 10,
	    "passingScore": 5,
	    "gradingTasks": [
	      {"taskId": 1, "taskName": "Broken rule", "maxScore": 5,
	       "gradingCriteria": [{"type": "notARealCheck"}]},
	      {"taskId": 2, "taskName": "Fine rule", "maxScore": 5,
	       "gradingCriteria": [{"type": "textContains", "text": "hello"}]}
	    ]
	  }
	]`
	engine := newEngine(t, content)
	docPath := docxtest.Write(t, docxtest.Doc{BodyXML: docxtest.Paragraph("", "hello")})

	result, err := engine.Grade(context.Background(), docPath, 1)
	require.NoError(t, err)

	require.Len(t, result.Items, 2)
	assert.Equal(t, 0, result.Items[0].Score)
	assert.Equal(t, 5, result.Items[1].Score)
	assert.Equal(t, 5, result.TotalScore)
}
