package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_Success(t *testing.T) {
	binaryPath := getBinaryPath(t)

	for _, path := range []string{contentJSON, contentYAML} {
		cmd := exec.Command(binaryPath, "validate", "--in", path)
		output, err := cmd.CombinedOutput()

		assert.NoError(t, err, "command should succeed")
		assert.Contains(t, string(output), "Validation passed", "output should indicate success")
	}
}

func TestValidateCommand_Failure(t *testing.T) {
	binaryPath := getBinaryPath(t)

	path := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"header": {"name": "Jane", "title": ""}, "experience": [{"company": "Acme"}]}`), 0644))

	cmd := exec.Command(binaryPath, "validate", "--in", path)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err, "command should fail")
	assert.Contains(t, string(output), "validation failed")
	assert.Contains(t, string(output), "header.title")
	assert.NotContains(t, string(output), "experience[0].title")
	if exitError, ok := err.(*exec.ExitError); ok {
		assert.Equal(t, 1, exitError.ExitCode(), "should exit with code 1 on validation failure")
	}
}

func TestValidateCommand_UnknownField(t *testing.T) {
	binaryPath := getBinaryPath(t)

	path := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"header": {"name": "Jane", "title": "Engineer"}, "hobbies": []}`), 0644))

	cmd := exec.Command(binaryPath, "validate", "--in", path)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err, "command should fail")
	assert.Contains(t, string(output), "validation failed")
}

func TestValidateCommand_ExtraSchema(t *testing.T) {
	binaryPath := getBinaryPath(t)

	// Requires at least one language entry, which the YAML fixture has and
	// the minimal file below does not.
	schemaPath := filepath.Join(t.TempDir(), "house.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(`{
  "type": "object",
  "required": ["languages"],
  "properties": {"languages": {"type": "array", "minItems": 1}}
}`), 0644))
	minimal := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(minimal, []byte(`{"header": {"name": "Jane", "title": "Engineer"}}`), 0644))

	output, err := exec.Command(binaryPath, "validate", "--in", contentYAML, "--schema", schemaPath).CombinedOutput()
	assert.NoError(t, err, string(output))
	assert.Contains(t, string(output), "Validation passed")

	output, err = exec.Command(binaryPath, "validate", "--in", minimal, "--schema", schemaPath).CombinedOutput()
	assert.Error(t, err)
	assert.Contains(t, string(output), "validation failed against")
	assert.Contains(t, string(output), "languages")

	output, err = exec.Command(binaryPath, "validate", "--in", minimal, "--schema", filepath.Join(t.TempDir(), "missing.json")).CombinedOutput()
	assert.Error(t, err)
	assert.Contains(t, string(output), "failed to load schema")
}

func TestValidateCommand_MissingInFlag(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "validate")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err, "command should fail")
	assert.Contains(t, string(output), "required", "should indicate flag is required")
}
