package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSON_ValidJSON(t *testing.T) {
	schemaPath := filepath.Join("testdata", "valid_schema.json")
	jsonPath := filepath.Join("testdata", "valid_json.json")

	err := ValidateJSON(schemaPath, jsonPath)
	assert.NoError(t, err)
}

func TestValidateJSON_InvalidJSON_MissingField(t *testing.T) {
	schemaPath := filepath.Join("testdata", "valid_schema.json")
	jsonPath := filepath.Join("testdata", "invalid_json.json")

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_InvalidJSON_WrongType(t *testing.T) {
	schemaPath := filepath.Join("testdata", "valid_schema.json")
	jsonPath := filepath.Join("testdata", "type_mismatch.json")

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_NonExistentSchema(t *testing.T) {
	schemaPath := "testdata/nonexistent_schema.json"
	jsonPath := filepath.Join("testdata", "valid_json.json")

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_NonExistentJSON(t *testing.T) {
	schemaPath := filepath.Join("testdata", "valid_schema.json")
	jsonPath := "testdata/nonexistent_json.json"

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedJSON(t *testing.T) {
	// Create a temporary malformed JSON file
	tmpDir := t.TempDir()
	malformedJSON := filepath.Join(tmpDir, "malformed.json")
	err := os.WriteFile(malformedJSON, []byte("{ invalid json }"), 0o644)
	require.NoError(t, err)

	schemaPath := filepath.Join("testdata", "valid_schema.json")

	valErr := ValidateJSON(schemaPath, malformedJSON)
	require.Error(t, valErr)
	// The error might be from gojsonschema parsing, not our code
}

func TestValidateResumeData(t *testing.T) {
	tests := []struct {
		name      string
		document  string
		wantError bool
		wantField string
	}{
		{
			name:     "complete resume",
			document: `{"fullName": "Jane Doe", "email": "jane@x.com", "skills": ["Go"], "experience": [{"position": "Engineer", "company": "Acme"}]}`,
		},
		{
			name:     "empty object",
			document: `{}`,
		},
		{
			name:      "skills is a string",
			document:  `{"skills": "not-an-array"}`,
			wantError: true,
			wantField: "skills",
		},
		{
			name:      "unknown experience key",
			document:  `{"experience": [{"title": "Engineer"}]}`,
			wantError: true,
			wantField: "experience.0",
		},
		{
			name:      "unknown top-level key",
			document:  `{"hobbies": []}`,
			wantError: true,
			wantField: "(root)",
		},
		{
			name:      "not json",
			document:  `{ invalid json }`,
			wantError: true,
			wantField: "(root)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResumeData([]byte(tt.document))
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			fields := FieldErrors(err)
			require.NotEmpty(t, fields, "error should be ValidationError type")
			var names []string
			for _, f := range fields {
				names = append(names, f.Field)
			}
			assert.Contains(t, names, tt.wantField)
		})
	}
}

func TestValidateVisibility(t *testing.T) {
	assert.NoError(t, ValidateVisibility([]byte(`{"fullName": true, "skills": false}`)))
	assert.NoError(t, ValidateVisibility([]byte(`{}`)))

	err := ValidateVisibility([]byte(`{"skills": "yes"}`))
	require.Error(t, err)
	assert.NotEmpty(t, FieldErrors(err))

	err = ValidateVisibility([]byte(`{"hobbies": true}`))
	require.Error(t, err)
}

func TestValidateResumeRecord(t *testing.T) {
	assert.NoError(t, ValidateResumeRecord([]byte(`{"title": "Main", "templateId": "modern-simple", "data": {}}`)))

	err := ValidateResumeRecord([]byte(`{"title": "", "data": {}}`))
	require.Error(t, err)
	assert.GreaterOrEqual(t, len(FieldErrors(err)), 2)
}

func TestValidateBundled_UnknownSchema(t *testing.T) {
	err := ValidateBundled("nope.schema.json", []byte(`{}`))
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Nil(t, FieldErrors(err))
}

func TestValidateJSON_InlineValid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"name": "test"}`

	err := ValidateJSON(writeSchemaPair(t, schemaContent, jsonContent))
	assert.NoError(t, err)
}

func TestValidateJSON_InlineMissingRequired(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"age": 30}`

	err := ValidateJSON(writeSchemaPair(t, schemaContent, jsonContent))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "name")
	assert.Contains(t, errorMsg, "age")
}

func TestValidateJSON_NestedFieldValidation(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["person"],
		"properties": {
			"person": {
				"type": "object",
				"required": ["name"],
				"properties": {
					"name": {"type": "string"}
				}
			}
		}
	}`

	jsonContent := `{"person": {}}`

	err := ValidateJSON(writeSchemaPair(t, schemaContent, jsonContent))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
	// Check that the field path includes nested field
	found := false
	for _, fieldErr := range validationErr.Errors {
		if fieldErr.Field != "" {
			found = true
			break
		}
	}
	assert.True(t, found, "should include field path in error")
}

func TestValidateJSON_ArrayValidation(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"properties": {
			"items": {
				"type": "array",
				"items": {"type": "string"},
				"minItems": 1
			}
		}
	}`

	jsonContent := `{"items": []}`

	err := ValidateJSON(writeSchemaPair(t, schemaContent, jsonContent))
	require.Error(t, err)
	assert.Equal(t, "items", FieldErrors(err)[0].Field)
}

// writeSchemaPair writes a schema and a document to a temp dir and returns their paths.
func writeSchemaPair(t *testing.T, schemaContent, jsonContent string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.json")
	jsonPath := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(schemaContent), 0o600))
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonContent), 0o600))
	return schemaPath, jsonPath
}
