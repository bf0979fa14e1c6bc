package api

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTripEnvelope(t *testing.T, status string, v any) map[string]any {
	t.Helper()

	result, err := EnvelopeTransformer(nil, status, v)
	require.NoError(t, err)

	raw, err := json.Marshal(result)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestEnvelopeTransformer_Success(t *testing.T) {
	out := roundTripEnvelope(t, "200", map[string]string{"id": "recipe-1"})

	assert.Equal(t, float64(envelopeVersion), out["v"])
	assert.Equal(t, true, out["success"])
	assert.Contains(t, out, "data")
	assert.NotContains(t, out, "error")
}

func TestEnvelopeTransformer_SuccessNilData(t *testing.T) {
	out := roundTripEnvelope(t, "204", nil)

	assert.Equal(t, float64(envelopeVersion), out["v"])
	assert.Equal(t, true, out["success"])
	assert.NotContains(t, out, "data")
}

func TestEnvelopeTransformer_SimpleError(t *testing.T) {
	out := roundTripEnvelope(t, "404", &APIError{Message: "Resource not found"})

	assert.Equal(t, float64(envelopeVersion), out["v"])
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Resource not found", out["error"])
}

func TestEnvelopeTransformer_DetailedError(t *testing.T) {
	out := roundTripEnvelope(t, "400", &APIError{
		Code:    "VALIDATION_ERROR",
		Message: "cooking_time must be between 1 and 32767",
		Details: map[string]string{"field": "cooking_time"},
	})

	assert.Equal(t, false, out["success"])
	assert.Equal(t, "VALIDATION_ERROR", out["code"])
	assert.Equal(t, "cooking_time must be between 1 and 32767", out["message"])
	assert.Contains(t, out, "details")
}

func TestEnvelopeTransformer_PlainError(t *testing.T) {
	out := roundTripEnvelope(t, "500", errors.New("boom"))

	assert.Equal(t, false, out["success"])
	assert.Equal(t, "boom", out["error"])
}

func TestEnvelopeTransformer_VersionFieldName(t *testing.T) {
	out := roundTripEnvelope(t, "200", nil)

	// The field must be "v"; renaming it breaks clients silently.
	assert.Contains(t, out, "v")
	assert.NotContains(t, out, "version")
}
