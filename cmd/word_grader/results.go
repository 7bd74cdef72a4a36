// Package main provides the entry point for the word_grader CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/datmos/word-grader/internal/observability"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "List persisted training results",
	RunE:  runResults,
}

var (
	resultsPath        string
	resultsDatabaseURL string
)

func init() {
	resultsCmd.Flags().StringVar(&resultsPath, "results", "training_results.json", "Path to the result store JSON file")
	resultsCmd.Flags().StringVar(&resultsDatabaseURL, "db", "", "PostgreSQL result sink URL (overrides the file store)")
	rootCmd.AddCommand(resultsCmd)
}

func runResults(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := newLogger(false)

	sink, closeSink, err := openSink(ctx, resultsDatabaseURL, resultsPath, logger)
	if err != nil {
		return fmt.Errorf("failed to open result store: %w", err)
	}
	defer closeSink()

	records, err := sink.List(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No training results recorded yet")
		return nil
	}

	observability.NewPrinter(os.Stdout).PrintTrainingResults(records)
	return nil
}
