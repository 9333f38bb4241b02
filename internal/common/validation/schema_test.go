package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSchema() JSONSchema {
	return JSONSchema{
		Type:     "object",
		Required: []string{"name", "nested"},
		Properties: map[string]Property{
			"name": {Type: "string", MinLength: IntPtr(1), MaxLength: IntPtr(8)},
			"nested": {
				Type:                 "object",
				Required:             []string{"count"},
				Properties:           map[string]Property{"count": {Type: "integer", Minimum: Float64Ptr(0)}},
				AdditionalProperties: false,
			},
		},
	}
}

func TestValidateJSON_Valid(t *testing.T) {
	result, err := ValidateJSON([]byte(`{"name":"ryu","nested":{"count":3}}`), createTestSchema())

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateJSON_FieldNames(t *testing.T) {
	result, err := ValidateJSON([]byte(`{"name":"","nested":{"extra":1}}`), createTestSchema())

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("name"))
	assert.True(t, result.HasErrors("nested.count"), result.GetErrorMessages())
	assert.NotEmpty(t, result.GetErrorsForField("name"))
	assert.Len(t, result.GetErrorMessages(), len(result.Errors))

	for i := 1; i < len(result.Errors); i++ {
		assert.LessOrEqual(t, result.Errors[i-1].Field, result.Errors[i].Field)
	}
}

func TestValidateJSON_MissingTopLevel(t *testing.T) {
	result, err := ValidateJSON([]byte(`{}`), createTestSchema())

	require.NoError(t, err)
	assert.True(t, result.HasErrors("name"))
	assert.True(t, result.HasErrors("nested"))
	assert.Equal(t, "REQUIRED", result.GetErrorsForField("name")[0].Code)
}

func TestValidateJSON_IntegerAcceptsWholeFloats(t *testing.T) {
	schema := createTestSchema()

	result, err := ValidateJSON([]byte(`{"name":"ken","nested":{"count":7.0}}`), schema)
	require.NoError(t, err)
	assert.True(t, result.Valid, result.GetErrorMessages())

	result, err = ValidateJSON([]byte(`{"name":"ken","nested":{"count":7.5}}`), schema)
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestValidateJSON_NotJSON(t *testing.T) {
	_, err := ValidateJSON([]byte(`{"name":`), createTestSchema())

	assert.Error(t, err)
}

func TestValidateInput(t *testing.T) {
	result, err := ValidateInput(map[string]interface{}{"name": "chun-li-is-long", "nested": map[string]interface{}{"count": 1}}, createTestSchema())

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("name"))
}
