// Package report renders persisted training results as HTML and PDF reports.
package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/datmos/word-grader/internal/results"
)

//go:embed report.tmpl.html
var reportTemplate string

var tmpl = template.Must(template.New("report").Parse(reportTemplate))

// RenderHTML writes the HTML report for one training result.
func RenderHTML(w io.Writer, tr *results.TrainingResult) error {
	if tr == nil {
		return fmt.Errorf("training result is nil")
	}
	if err := tmpl.Execute(w, tr); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
