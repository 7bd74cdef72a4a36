package results

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datmos/word-grader/internal/types"
)

func sampleResult(score, maxScore int) *types.GradingResult {
	return &types.GradingResult{
		RunID:        uuid.New(),
		ProjectID:    1,
		TotalScore:   score,
		MaxScore:     maxScore,
		PassingScore: maxScore / 2,
		Passed:       score >= maxScore/2,
		Items: []types.GradingItem{
			{TaskID: 1, Description: "Title heading", Score: score, MaxScore: maxScore, IsCorrect: score == maxScore},
		},
		StartedAt: time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC),
		Duration:  90 * time.Second,
	}
}

func newTestSink(t *testing.T) *FileSink {
	t.Helper()
	return NewFileSink(filepath.Join(t.TempDir(), "training_results.json"), zerolog.Nop())
}

func TestFileSinkAppend_FirstResultIsTR001(t *testing.T) {
	sink := newTestSink(t)

	record, err := sink.Append(context.Background(), sampleResult(10, 10), AppendContext{StudentID: "sv001"})
	require.NoError(t, err)

	assert.Equal(t, "TR001", record.ID)
	assert.Equal(t, "sv001", record.StudentID)
	assert.Equal(t, 10, record.TotalScore)
	assert.True(t, record.Passed)
	assert.Equal(t, 1.5, record.DurationMinutes)
	assert.Equal(t, record.StartTime.Add(90*time.Second), record.EndTime)
}

func TestFileSinkAppend_IDsAreMonotonic(t *testing.T) {
	sink := newTestSink(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := sink.Append(ctx, sampleResult(5, 10), AppendContext{StudentID: "sv001"})
		require.NoError(t, err)
	}

	record, err := sink.Append(ctx, sampleResult(5, 10), AppendContext{StudentID: "sv001"})
	require.NoError(t, err)
	assert.Equal(t, "TR005", record.ID)

	records, err := sink.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, "TR001", records[0].ID)
	assert.Equal(t, "TR004", records[3].ID)
}

func TestFileSinkAppend_ContinuesFromExistingIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "training_results.json")
	existing := Collection{TrainingResults: []TrainingResult{
		{ID: "TR007", StudentID: "sv001", TotalScore: 8, MaxScore: 10, Passed: true},
		{ID: "not-a-training-id", StudentID: "sv001"},
	}}
	data, err := json.Marshal(existing)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	sink := NewFileSink(path, zerolog.Nop())
	record, err := sink.Append(context.Background(), sampleResult(10, 10), AppendContext{StudentID: "sv002"})
	require.NoError(t, err)

	assert.Equal(t, "TR008", record.ID)
}

func TestFileSinkAppend_CorruptStoreStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "training_results.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"trainingResults": [truncated`), 0644))

	sink := NewFileSink(path, zerolog.Nop())
	record, err := sink.Append(context.Background(), sampleResult(10, 10), AppendContext{StudentID: "sv001"})
	require.NoError(t, err)

	// History is lost but appends keep working.
	assert.Equal(t, "TR001", record.ID)

	records, err := sink.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestFileSink_MetadataRecomputedOnAppend(t *testing.T) {
	sink := newTestSink(t)
	ctx := context.Background()

	_, err := sink.Append(ctx, sampleResult(10, 10), AppendContext{StudentID: "sv001"})
	require.NoError(t, err)
	_, err = sink.Append(ctx, sampleResult(4, 10), AppendContext{StudentID: "sv001"})
	require.NoError(t, err)

	data, err := os.ReadFile(sink.path)
	require.NoError(t, err)
	var collection Collection
	require.NoError(t, json.Unmarshal(data, &collection))

	assert.Equal(t, 2, collection.Metadata.TotalResults)
	assert.Equal(t, 1, collection.Metadata.PassedCount)
	assert.Equal(t, 7.0, collection.Metadata.AverageScore)
	assert.False(t, collection.Metadata.LastUpdated.IsZero())
}

func TestFileSink_PersistedShapeRoundTrips(t *testing.T) {
	sink := newTestSink(t)
	result := sampleResult(10, 10)
	result.RubricGenerated = true

	_, err := sink.Append(context.Background(), result, AppendContext{
		StudentID:   "sv001",
		StudentName: "Nguyen Van A",
		FilePath:    "/work/project1.docx",
	})
	require.NoError(t, err)

	records, err := NewFileSink(sink.path, zerolog.Nop()).List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "Nguyen Van A", r.StudentName)
	assert.Equal(t, "/work/project1.docx", r.FilePath)
	assert.True(t, r.RubricGenerated)
	require.Len(t, r.Items, 1)
	assert.Equal(t, "Title heading", r.Items[0].Description)
}

func TestFileSink_ListOnAbsentStore(t *testing.T) {
	sink := newTestSink(t)

	records, err := sink.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSummarize(t *testing.T) {
	items := []types.GradingItem{
		{Description: "A", IsCorrect: true},
		{Description: "B", IsCorrect: false},
		{Description: "C", IsCorrect: true},
		{Description: "D", IsCorrect: true},
		{Description: "E", IsCorrect: true},
	}

	s := summarize(items)

	assert.Equal(t, 4, s.CorrectTasks)
	assert.Equal(t, 1, s.IncorrectTasks)
	assert.Equal(t, []string{"A", "C", "D"}, s.Strengths)
	assert.Equal(t, []string{"B"}, s.Weaknesses)
}

func TestNextTrainingID(t *testing.T) {
	assert.Equal(t, "TR001", nextTrainingID(nil))
	assert.Equal(t, "TR005", nextTrainingID([]TrainingResult{{ID: "TR004"}, {ID: "TR002"}}))
	assert.Equal(t, "TR100", nextTrainingID([]TrainingResult{{ID: "TR099"}}))
	assert.Equal(t, "TR1000", nextTrainingID([]TrainingResult{{ID: "TR999"}}))
	assert.Equal(t, "TR001", nextTrainingID([]TrainingResult{{ID: "garbage"}}))
}
