// Package main provides the entry point for the word_grader CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/datmos/word-grader/internal/report"
	"github.com/datmos/word-grader/internal/results"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export a persisted training result as an HTML or PDF report",
	Long:  "Renders one training result to a report file; the output format is chosen by the file extension (.html or .pdf). PDF export requires Chrome/Chromium.",
	RunE:  runReport,
}

var (
	reportResultsPath string
	reportDatabaseURL string
	reportID          string
	reportOutput      string
)

func init() {
	reportCmd.Flags().StringVar(&reportResultsPath, "results", "training_results.json", "Path to the result store JSON file")
	reportCmd.Flags().StringVar(&reportDatabaseURL, "db", "", "PostgreSQL result sink URL (overrides the file store)")
	reportCmd.Flags().StringVar(&reportID, "id", "", "Training result identifier, e.g. TR003 (required)")
	reportCmd.Flags().StringVarP(&reportOutput, "out", "o", "", "Output path ending in .html or .pdf (required)")

	if err := reportCmd.MarkFlagRequired("id"); err != nil {
		panic(fmt.Sprintf("failed to mark id flag as required: %v", err))
	}
	if err := reportCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := newLogger(false)

	sink, closeSink, err := openSink(ctx, reportDatabaseURL, reportResultsPath, logger)
	if err != nil {
		return fmt.Errorf("failed to open result store: %w", err)
	}
	defer closeSink()

	records, err := sink.List(ctx)
	if err != nil {
		return err
	}

	var record *results.TrainingResult
	for i := range records {
		if records[i].ID == reportID {
			record = &records[i]
			break
		}
	}
	if record == nil {
		return fmt.Errorf("training result %s not found", reportID)
	}

	if dir := filepath.Dir(reportOutput); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	switch strings.ToLower(filepath.Ext(reportOutput)) {
	case ".html":
		f, err := os.Create(reportOutput)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer func() { _ = f.Close() }()
		if err := report.RenderHTML(f, record); err != nil {
			return err
		}
	case ".pdf":
		if err := report.ExportPDF(ctx, record, reportOutput); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported report format %q: use .html or .pdf", filepath.Ext(reportOutput))
	}

	fmt.Printf("Report written to %s\n", reportOutput)
	return nil
}
