package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the path to the resume_builder binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "resume_builder"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'make build'", binaryPath)
	}

	return binaryPath
}

// writeTestFile writes content under dir and returns its path
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

const sampleResumeJSON = `{
  "fullName": "Jane Doe",
  "email": "jane@example.com",
  "summary": "Backend engineer.",
  "experience": [{"position": "Engineer", "company": "Acme", "duration": "2020 - Present", "description": "Built services."}],
  "skills": ["Go", "PostgreSQL"]
}`
