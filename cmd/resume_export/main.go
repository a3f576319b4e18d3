// Package main provides the resume_export CLI, which turns a resume content
// file into a paginated PDF.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_export",
	Short: "Resume PDF exporter",
	Long:  "resume_export lays a resume content model out as a multi-page PDF, either as synthesized vector text or as a snapshot of the rendered resume page.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
