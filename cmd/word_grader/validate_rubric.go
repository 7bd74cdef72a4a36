// Package main provides the entry point for the word_grader CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/datmos/word-grader/internal/rubric"
)

var validateRubricCmd = &cobra.Command{
	Use:   "validate-rubric",
	Short: "Validate a rubric file against the rubric schema",
	Long:  "Checks that a rubric JSON file conforms to the embedded rubric schema before it is handed to graders.",
	RunE:  runValidateRubric,
}

var validateRubricInput string

func init() {
	validateRubricCmd.Flags().StringVarP(&validateRubricInput, "in", "i", "", "Path to the rubric JSON file (required)")
	if err := validateRubricCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	rootCmd.AddCommand(validateRubricCmd)
}

func runValidateRubric(_ *cobra.Command, _ []string) error {
	data, err := os.ReadFile(validateRubricInput)
	if err != nil {
		return fmt.Errorf("failed to read rubric file: %w", err)
	}

	if err := rubric.ValidateBytes(data); err != nil {
		var schemaErr *rubric.SchemaError
		if errors.As(err, &schemaErr) {
			fmt.Printf("Rubric has %d schema violation(s):\n", len(schemaErr.Errors))
			for _, fe := range schemaErr.Errors {
				fmt.Printf("  %s: %s\n", fe.Field, fe.Message)
			}
			return fmt.Errorf("rubric is invalid")
		}
		return err
	}

	fmt.Println("Rubric is valid")
	return nil
}
