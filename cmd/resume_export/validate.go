package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/saleemkhair/resume-export/internal/content"
	"github.com/saleemkhair/resume-export/internal/observability"
	"github.com/saleemkhair/resume-export/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a resume content file",
	Long:  "Checks a content model file against the content schema and reports missing required fields. --schema adds a caller-supplied JSON Schema, such as a stricter house style, checked after the built-in one.",
	RunE:  runValidate,
}

var (
	validateInput   string
	validateSchema  string
	validateVerbose bool
)

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to content file (required)")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to an additional JSON Schema the content must satisfy")
	validateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "Print a summary of the content")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	model, err := content.Load(validateInput)
	if err != nil {
		var loadErr *content.LoadError
		if errors.As(err, &loadErr) {
			return fmt.Errorf("validation failed: %w", err)
		}
		return fmt.Errorf("failed to load content: %w", err)
	}
	if err := content.Validate(model); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if validateSchema != "" {
		if err := validateAgainst(validateSchema, validateInput); err != nil {
			return err
		}
	}

	if validateVerbose {
		observability.NewPrinter(os.Stdout).PrintContentSummary(model)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Validation passed: %s\n", validateInput)
	return nil
}

func validateAgainst(schemaPath, contentPath string) error {
	format, err := content.FormatFromPath(contentPath)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}
	data, err := os.ReadFile(contentPath)
	if err != nil {
		return fmt.Errorf("failed to read content file: %w", err)
	}
	doc, err := content.JSONDocument(data, format)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}

	if err := schemas.ValidateFile(schemaPath, doc); err != nil {
		var loadErr *schemas.SchemaLoadError
		if errors.As(err, &loadErr) {
			return fmt.Errorf("failed to load schema: %w", err)
		}
		return fmt.Errorf("validation failed against %s: %w", schemaPath, err)
	}
	return nil
}
