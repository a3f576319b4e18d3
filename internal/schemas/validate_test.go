package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string"},
    "age": {"type": "integer"}
  }
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateFile(t *testing.T) {
	schemaPath := writeFile(t, t.TempDir(), "schema.json", personSchema)

	tests := []struct {
		name      string
		document  string
		wantField string
	}{
		{"valid", `{"name": "Jane", "age": 30}`, ""},
		{"missing field", `{"age": 30}`, "(root)"},
		{"wrong type", `{"name": "Jane", "age": "thirty"}`, "age"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFile(schemaPath, []byte(tt.document))
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Errors[0].Field)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestValidateFile_RelativeRef(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "person.json", personSchema)
	schemaPath := writeFile(t, dir, "team.json", `{
  "type": "object",
  "properties": {"lead": {"$ref": "person.json"}}
}`)

	assert.NoError(t, ValidateFile(schemaPath, []byte(`{"lead": {"name": "Jane"}}`)))
	assert.Error(t, ValidateFile(schemaPath, []byte(`{"lead": {"age": 3}}`)))
}

func TestValidateFile_NonExistentSchema(t *testing.T) {
	err := ValidateFile(filepath.Join(t.TempDir(), "nonexistent_schema.json"), []byte(`{}`))

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateBytes(t *testing.T) {
	assert.NoError(t, ValidateBytes(personSchema, []byte(`{"name": "Jane"}`)))

	err := ValidateBytes(personSchema, []byte(`{}`))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateBytes_MalformedDocument(t *testing.T) {
	err := ValidateBytes(personSchema, []byte(`{ invalid json }`))
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
}
