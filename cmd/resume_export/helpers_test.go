package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the path to the resume_export binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "resume_export"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/resume_export ./cmd/resume_export'", binaryPath)
	}

	return binaryPath
}

var (
	contentJSON  = filepath.Join("..", "..", "internal", "content", "testdata", "resume.json")
	contentYAML  = filepath.Join("..", "..", "internal", "content", "testdata", "resume.yaml")
	snapshotHTML = filepath.Join("..", "..", "internal", "content", "testdata", "snapshot.html")
)
