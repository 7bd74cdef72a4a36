package rubric

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleUnmarshal_StringBecomesManualStep(t *testing.T) {
	var rule Rule
	require.NoError(t, json.Unmarshal([]byte(`"Apply the Heading 1 style to the title"`), &rule))

	assert.True(t, rule.Manual)
	assert.Equal(t, "Apply the Heading 1 style to the title", rule.Description)
	assert.Empty(t, rule.Type)
}

func TestRuleUnmarshal_StructuredRule(t *testing.T) {
	data := `{"type":"paragraphStyle","style":"Heading 1","text":"Introduction","exact":true}`

	var rule Rule
	require.NoError(t, json.Unmarshal([]byte(data), &rule))

	assert.False(t, rule.Manual)
	assert.Equal(t, "paragraphStyle", rule.Type)
	assert.Equal(t, "Heading 1", rule.Style)
	assert.Equal(t, "Introduction", rule.Text)
	assert.True(t, rule.Exact)
}

func TestRuleUnmarshal_ObjectWithoutTypeIsManual(t *testing.T) {
	var rule Rule
	require.NoError(t, json.Unmarshal([]byte(`{"description":"check manually"}`), &rule))

	assert.True(t, rule.Manual)
	assert.Equal(t, "check manually", rule.Description)
}

func TestRuleUnmarshal_InvalidJSON(t *testing.T) {
	var rule Rule
	err := json.Unmarshal([]byte(`42`), &rule)
	assert.Error(t, err)
}

func TestTask_ExactIDMatchWins(t *testing.T) {
	r := &Rubric{
		Tasks: []GradingTask{
			{TaskID: 3, TaskName: "third"},
			{TaskID: 1, TaskName: "first"},
		},
	}

	task, ok := r.Task(1, 0)
	require.True(t, ok)
	assert.Equal(t, "first", task.TaskName)
}

func TestTask_PositionalFallback(t *testing.T) {
	r := &Rubric{
		Tasks: []GradingTask{
			{TaskID: 10, TaskName: "drifted"},
			{TaskID: 20, TaskName: "also drifted"},
		},
	}

	// No task with id 2; position 1 binds instead.
	task, ok := r.Task(2, 1)
	require.True(t, ok)
	assert.Equal(t, "also drifted", task.TaskName)
}

func TestTask_NoMatch(t *testing.T) {
	r := &Rubric{Tasks: []GradingTask{{TaskID: 1}}}

	_, ok := r.Task(5, 7)
	assert.False(t, ok)
}
