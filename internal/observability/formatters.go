// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/datmos/word-grader/internal/results"
	"github.com/datmos/word-grader/internal/rubric"
	"github.com/datmos/word-grader/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRubric outputs a human-readable summary of the loaded rubric.
func (p *Printer) PrintRubric(r *rubric.Rubric) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Project:  %d", r.ProjectID))
	if r.ProjectName != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", r.ProjectName))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Scoring:  %d points, %d to pass\n", r.MaxScore, r.PassingScore))
	if r.Generated {
		sb.WriteString("Note:     generated fallback rubric\n")
	}
	sb.WriteString("\n")

	count := min(len(r.Tasks), maxItemsToShow)
	for i := 0; i < count; i++ {
		task := r.Tasks[i]
		sb.WriteString(fmt.Sprintf("  %d. %s (%d pts)\n", task.TaskID, task.TaskName, task.MaxPoints))
	}
	if len(r.Tasks) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more tasks\n", len(r.Tasks)-maxItemsToShow))
	}

	p.printBox("RUBRIC", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGradingResult outputs a per-task breakdown of a grading result.
func (p *Printer) PrintGradingResult(result *types.GradingResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	verdict := "NOT PASSED"
	if result.Passed {
		verdict = "PASSED"
	}
	sb.WriteString(fmt.Sprintf("Score:    %d / %d  (%s)\n", result.TotalScore, result.MaxScore, verdict))
	sb.WriteString(fmt.Sprintf("Passing:  %d\n", result.PassingScore))
	if result.RubricGenerated {
		sb.WriteString("Note:     graded against generated fallback rubric\n")
	}
	sb.WriteString("\n")

	for _, item := range result.Items {
		mark := "✘"
		if item.IsCorrect {
			mark = "✔"
		} else if item.Unverified {
			mark = "?"
		}
		sb.WriteString(fmt.Sprintf("  %s %s: %d/%d\n", mark, item.Description, item.Score, item.MaxScore))
		if item.Feedback != "" {
			sb.WriteString(fmt.Sprintf("      %s\n", item.Feedback))
		}
	}

	p.printBox("GRADING RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTrainingResults outputs a compact listing of persisted results.
func (p *Printer) PrintTrainingResults(records []results.TrainingResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total results: %d\n\n", len(records)))

	for _, r := range records {
		verdict := "not passed"
		if r.Passed {
			verdict = "passed"
		}
		sb.WriteString(fmt.Sprintf("%s  student=%s project=%d  %d/%d (%s)\n",
			r.ID, r.StudentID, r.ProjectID, r.TotalScore, r.MaxScore, verdict))
	}

	p.printBox("TRAINING RESULTS", strings.TrimSuffix(sb.String(), "\n"))
}
