package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"selling/internal/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	v := apperrors.NewValidationError("title", "required")
	v.Add("category", "unknown id 7")
	v.Add("title", "too long")

	assert.False(t, v.Empty())
	assert.Equal(t, "validation failed: category: unknown id 7, title: required; too long", v.Error())
}

func TestNotFound_Wraps(t *testing.T) {
	err := fmt.Errorf("service: %w", apperrors.NotFound("product", 9))
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "product with ID 9")
}

func TestAsValidation(t *testing.T) {
	_, ok := apperrors.AsValidation(errors.New("boom"))
	assert.False(t, ok)

	uniq := fmt.Errorf("create: %w", &apperrors.UniquenessError{Field: "sku", Value: "prod-20240305-hat"})
	v, ok := apperrors.AsValidation(uniq)
	require.True(t, ok)
	assert.Equal(t, []string{`sku "prod-20240305-hat" already exists`}, v.Fields["sku"])

	v, ok = apperrors.AsValidation(apperrors.NewValidationError("email", "required"))
	require.True(t, ok)
	assert.Equal(t, []string{"required"}, v.Fields["email"])
}
