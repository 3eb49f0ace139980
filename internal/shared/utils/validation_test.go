package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"melodia/internal/shared/errors"
)

type validationSample struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,max=10"`
	Age   int    `json:"age" validate:"gte=0"`
}

func TestValidateStruct_Valid(t *testing.T) {
	err := ValidateStruct(validationSample{
		Email: "alice@example.com",
		Name:  "Alice",
		Age:   30,
	})
	assert.NoError(t, err)
}

func TestValidateStruct_CollectsAllFieldErrors(t *testing.T) {
	err := ValidateStruct(validationSample{
		Email: "not-an-email",
		Name:  "a name that is far too long",
		Age:   -1,
	})

	require.Error(t, err)
	appErr, ok := errors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	assert.Contains(t, appErr.Details, "email must be a valid email address")
	assert.Contains(t, appErr.Details, "name must be at most 10 characters long")
	assert.Contains(t, appErr.Details, "age must be greater than or equal to 0")
}

func TestValidateStruct_UsesJSONFieldNames(t *testing.T) {
	err := ValidateStruct(validationSample{Name: "Alice"})

	require.Error(t, err)
	appErr, _ := errors.IsAppError(err)
	assert.Contains(t, appErr.Details, "email is required")
	assert.NotContains(t, appErr.Details, "Email")
}

func TestValidateSID(t *testing.T) {
	assert.NoError(t, ValidateSID("user_abc123def456"))
	assert.Error(t, ValidateSID(""))
	assert.Error(t, ValidateSID("   "))
}
