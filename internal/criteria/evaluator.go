// Package criteria implements the per-rubric-task criterion evaluators.
//
// Each evaluation is a pure function of the document and the rubric
// task: the same inputs always produce the same GradingItem. Evaluators
// are isolated from one another; a failure inside one task's evaluation
// is absorbed into that task's item and never stops the run.
package criteria

import (
	"fmt"
	"math"
	"strings"

	"github.com/datmos/word-grader/internal/docx"
	"github.com/datmos/word-grader/internal/rubric"
	"github.com/datmos/word-grader/internal/types"
)

// Evaluate grades one rubric task against the document and produces its
// GradingItem. A panic inside rule evaluation is recovered into an item
// with score 0 and an evaluation-error feedback message.
func Evaluate(doc *docx.Document, task *rubric.GradingTask) (item types.GradingItem) {
	item = types.GradingItem{
		TaskID:      task.TaskID,
		Description: task.TaskName,
		MaxScore:    task.MaxPoints,
	}

	defer func() {
		if r := recover(); r != nil {
			item.Score = 0
			item.IsCorrect = false
			item.Unverified = false
			item.Feedback = fmt.Sprintf("evaluation error: %v", r)
		}
	}()

	var structured []*rubric.Rule
	var manualSteps []string
	for i := range task.Criteria {
		if task.Criteria[i].Manual {
			manualSteps = append(manualSteps, task.Criteria[i].Description)
		} else {
			structured = append(structured, &task.Criteria[i])
		}
	}

	// A task with no machine-checkable rules cannot be graded
	// automatically; it scores 0 and is flagged unverified with the
	// human-readable steps echoed back as feedback.
	if len(structured) == 0 {
		item.Unverified = true
		if len(manualSteps) > 0 {
			item.Feedback = "requires manual verification: " + strings.Join(manualSteps, "; ")
		} else {
			item.Feedback = "no grading criteria defined for this task"
		}
		return item
	}

	if allWeighted(structured) {
		item.Score, item.Feedback = scoreWeighted(doc, structured, task.MaxPoints)
	} else {
		item.Score, item.Feedback = scoreBinary(doc, structured, task.MaxPoints)
	}
	item.IsCorrect = item.Score == task.MaxPoints
	return item
}

// scoreBinary applies the default policy: every rule must pass for full
// points, otherwise the task scores 0.
func scoreBinary(doc *docx.Document, rules []*rubric.Rule, maxPoints int) (int, string) {
	var failures []string
	for _, rule := range rules {
		if pass, detail := evaluateRule(doc, rule); !pass {
			failures = append(failures, detail)
		}
	}
	if len(failures) == 0 {
		return maxPoints, ""
	}
	return 0, strings.Join(failures, "; ")
}

// scoreWeighted sums the weights of passing rules, capped at maxPoints.
// Used only when every structured rule of the task carries a positive
// weight.
func scoreWeighted(doc *docx.Document, rules []*rubric.Rule, maxPoints int) (int, string) {
	earned := 0.0
	var failures []string
	for _, rule := range rules {
		pass, detail := evaluateRule(doc, rule)
		if pass {
			earned += rule.Weight
		} else {
			failures = append(failures, detail)
		}
	}
	score := int(math.Round(earned))
	if score > maxPoints {
		score = maxPoints
	}
	if score < 0 {
		score = 0
	}
	return score, strings.Join(failures, "; ")
}

func allWeighted(rules []*rubric.Rule) bool {
	for _, rule := range rules {
		if rule.Weight <= 0 {
			return false
		}
	}
	return true
}
