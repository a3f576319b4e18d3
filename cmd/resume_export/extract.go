package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/saleemkhair/resume-export/internal/content"
	"github.com/saleemkhair/resume-export/internal/fetch"
	"github.com/saleemkhair/resume-export/internal/raster"
	"github.com/saleemkhair/resume-export/internal/schemas"
	rootschemas "github.com/saleemkhair/resume-export/schemas"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a content model from rendered resume HTML",
	Long:  "Reads the resume markup from an HTML snapshot (--in) or a live page rendered in headless Chrome (--url) and writes the content model as JSON.",
	RunE:  runExtract,
}

var (
	extractInput    string
	extractURL      string
	extractSelector string
	extractChrome   string
	extractOutput   string
	extractVerbose  bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractInput, "in", "i", "", "Path to HTML file (mutually exclusive with --url)")
	extractCmd.Flags().StringVarP(&extractURL, "url", "u", "", "URL of the rendered resume page (mutually exclusive with --in)")
	extractCmd.Flags().StringVar(&extractSelector, "selector", "body", "CSS selector of the markup to extract when using --url")
	extractCmd.Flags().StringVar(&extractChrome, "chrome", "", "Path to the Chrome/Chromium binary")
	extractCmd.Flags().StringVarP(&extractOutput, "out", "o", "", "Path to output content JSON file (required)")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print detailed debug information")

	if err := extractCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}
	extractCmd.MarkFlagsMutuallyExclusive("in", "url")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	var src io.Reader
	switch {
	case extractInput != "":
		f, err := os.Open(extractInput)
		if err != nil {
			return fmt.Errorf("failed to open HTML file: %w", err)
		}
		defer func() { _ = f.Close() }()
		src = f
	case extractURL != "":
		surface := raster.NewBrowserSurface(extractURL, extractSelector)
		surface.ExecPath = extractChrome
		surface.Verbose = extractVerbose
		defer func() { _ = surface.Close() }()

		opts := fetch.DefaultOptions()
		opts.Verbose = extractVerbose
		result, err := fetch.Resume(context.Background(), extractURL, opts, surface)
		if err != nil {
			return fmt.Errorf("failed to fetch page: %w", err)
		}
		src = strings.NewReader(result.HTML)
	default:
		return fmt.Errorf("either --in or --url must be provided")
	}

	model, err := content.FromHTML(src)
	if err != nil {
		return fmt.Errorf("failed to extract content: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal content to JSON: %w", err)
	}

	// Validate output against schema (non-fatal)
	if err := schemas.ValidateBytes(rootschemas.ContentModel, jsonBytes); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Extracted content does not validate against schema: %v\n", err)
		} else {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema: %v\n", err)
		}
	}
	if err := content.Validate(model); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if err := os.WriteFile(extractOutput, append(jsonBytes, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write content to output file: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Extracted %d experience entries, %d skill categories to %s\n",
		len(model.Experience), len(model.Skills), extractOutput)
	if extractVerbose {
		_, _ = io.Copy(os.Stdout, bytes.NewReader(jsonBytes))
		_, _ = fmt.Fprintln(os.Stdout)
	}
	return nil
}
