// Package main provides the entry point for the word_grader CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/datmos/word-grader/internal/config"
	"github.com/datmos/word-grader/internal/grading"
	"github.com/datmos/word-grader/internal/observability"
	"github.com/datmos/word-grader/internal/results"
	"github.com/datmos/word-grader/internal/rubric"
)

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Grade a Word document (or a directory of documents) against a project rubric",
	Long:  "Grades one .docx submission, or every .docx in a directory, against the rubric for the given project and persists the results.",
	RunE:  runGrade,
}

var (
	gradeInput       string
	gradeProjectID   int
	gradeRubricPath  string
	gradeResultsPath string
	gradeDatabaseURL string
	gradeConfigPath  string
	gradeStudentID   string
	gradeStudentName string
	gradeVerbose     bool
	gradeConcurrency int
)

func init() {
	gradeCmd.Flags().StringVarP(&gradeInput, "in", "i", "", "Path to a .docx file or a directory of submissions (required)")
	gradeCmd.Flags().IntVarP(&gradeProjectID, "project", "p", 0, "Practice project id (required)")
	gradeCmd.Flags().StringVar(&gradeRubricPath, "rubric", "", "Path to the rubric JSON file (default rubric.json)")
	gradeCmd.Flags().StringVar(&gradeResultsPath, "results", "", "Path to the result store JSON file (default training_results.json)")
	gradeCmd.Flags().StringVar(&gradeDatabaseURL, "db", "", "PostgreSQL result sink URL (overrides the file store)")
	gradeCmd.Flags().StringVarP(&gradeConfigPath, "config", "c", "", "Path to a JSON config file")
	gradeCmd.Flags().StringVar(&gradeStudentID, "student-id", "", "Student identifier recorded with the result")
	gradeCmd.Flags().StringVar(&gradeStudentName, "student-name", "", "Student display name recorded with the result")
	gradeCmd.Flags().BoolVarP(&gradeVerbose, "verbose", "v", false, "Print detailed grading output")
	gradeCmd.Flags().IntVar(&gradeConcurrency, "concurrency", 4, "Parallel submissions in directory mode")

	if err := gradeCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	if err := gradeCmd.MarkFlagRequired("project"); err != nil {
		panic(fmt.Sprintf("failed to mark project flag as required: %v", err))
	}

	rootCmd.AddCommand(gradeCmd)
}

func runGrade(cmd *cobra.Command, _ []string) error {
	if gradeConfigPath != "" {
		cfg, err := config.LoadConfig(gradeConfigPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		flags := config.Config{
			RubricPath:  gradeRubricPath,
			ResultsPath: gradeResultsPath,
			DatabaseURL: gradeDatabaseURL,
			StudentID:   gradeStudentID,
			StudentName: gradeStudentName,
			Concurrency: gradeConcurrency,
		}
		merged := flags.MergeWithDefaults(*cfg)
		gradeRubricPath = merged.RubricPath
		gradeResultsPath = merged.ResultsPath
		gradeDatabaseURL = merged.DatabaseURL
		gradeStudentID = merged.StudentID
		gradeStudentName = merged.StudentName
		gradeConcurrency = merged.Concurrency
		gradeVerbose = gradeVerbose || cfg.Verbose
	}

	if gradeRubricPath == "" {
		gradeRubricPath = "rubric.json"
	}
	if gradeResultsPath == "" {
		gradeResultsPath = "training_results.json"
	}

	ctx := cmd.Context()
	logger := newLogger(gradeVerbose)
	engine := grading.NewEngine(rubric.NewStore(gradeRubricPath, logger), logger)

	sink, closeSink, err := openSink(ctx, gradeDatabaseURL, gradeResultsPath, logger)
	if err != nil {
		return fmt.Errorf("failed to open result store: %w", err)
	}
	defer closeSink()

	info, err := os.Stat(gradeInput)
	if err != nil {
		return fmt.Errorf("input not found: %s", gradeInput)
	}
	if info.IsDir() {
		return gradeBatch(ctx, engine, sink)
	}
	return gradeOne(ctx, engine, sink, gradeInput, true)
}

// gradeOne grades a single submission and persists the result. A
// persistence failure is reported but never discards the graded result.
func gradeOne(ctx context.Context, engine *grading.Engine, sink results.Sink, path string, verbosePrint bool) error {
	session := grading.NewSession(gradeStudentID, gradeStudentName)
	session.SetWorkingFile(gradeProjectID, path)

	result, err := engine.Grade(ctx, path, gradeProjectID)
	if err != nil {
		return err
	}

	if verbosePrint && gradeVerbose {
		observability.NewPrinter(os.Stdout).PrintGradingResult(result)
	}

	verdict := "NOT PASSED"
	if result.Passed {
		verdict = "PASSED"
	}
	fmt.Printf("%s: %d/%d (%s)\n", filepath.Base(path), result.TotalScore, result.MaxScore, verdict)

	record, err := sink.Append(ctx, result, results.AppendContext{
		StudentID:   gradeStudentID,
		StudentName: gradeStudentName,
		FilePath:    path,
	})
	if err != nil {
		var persistErr *results.PersistenceError
		if errors.As(err, &persistErr) {
			// The result was graded and shown; saving it is best effort.
			fmt.Fprintf(os.Stderr, "Warning: result could not be saved: %v\n", err)
			return nil
		}
		return err
	}
	fmt.Printf("Saved as %s\n", record.ID)
	return nil
}

// gradeBatch grades every .docx in the input directory. Submissions are
// graded in parallel, each with its own document handle; appends are
// serialized by the sink. One bad submission does not abort the batch.
func gradeBatch(ctx context.Context, engine *grading.Engine, sink results.Sink) error {
	entries, err := filepath.Glob(filepath.Join(gradeInput, "*.docx"))
	if err != nil {
		return fmt.Errorf("failed to list submissions: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no .docx submissions found in %s", gradeInput)
	}
	sort.Strings(entries)

	var mu sync.Mutex
	var failures []string

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(gradeConcurrency)
	for _, path := range entries {
		path := path
		g.Go(func() error {
			if err := gradeOne(gCtx, engine, sink, path, false); err != nil {
				mu.Lock()
				failures = append(failures, fmt.Sprintf("%s: %v", filepath.Base(path), err))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("Graded %d submission(s), %d failed\n", len(entries), len(failures))
	if len(failures) > 0 {
		return fmt.Errorf("some submissions could not be graded:\n  %s", strings.Join(failures, "\n  "))
	}
	return nil
}
