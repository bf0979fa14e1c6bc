package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/tvules/Foodgram/internal/errors"
)

type sampleRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Name        string `json:"name" validate:"required,max=50"`
	CookingTime int    `json:"cooking_time" validate:"gte=1,lte=32767"`
}

func TestStruct_OK(t *testing.T) {
	v := New()

	err := v.Struct(sampleRequest{
		Email:       "cook@example.com",
		Name:        "Pancakes",
		CookingTime: 20,
	})
	assert.NoError(t, err)
}

func TestStruct_FieldDetailsUseJSONNames(t *testing.T) {
	v := New()

	err := v.Struct(sampleRequest{Email: "nope", CookingTime: 0})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	details, ok := domainErr.Details.(map[string][]string)
	require.True(t, ok)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "cooking_time")
	assert.NotContains(t, details, "Email", "field names must come from json tags")
}
