// Copyright (c) 2026 Tome. All rights reserved.
// Author: safe.gergis@tome.dev

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safegergis/tome/internal/platform/apperr"
	"github.com/safegergis/tome/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Currently Reading", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_RequiredInt checks presence + positivity for numeric pointers.
*/
func TestValidator_RequiredInt(t *testing.T) {
	positive := 42
	zero := 0
	negative := -3

	tests := []struct {
		name     string
		value    *int
		hasError bool
	}{
		{"positive", &positive, false},
		{"nil_pointer", nil, true},
		{"zero", &zero, true},
		{"negative", &negative, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.RequiredInt("minutes_read", tt.value)
			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

/*
TestValidator_Positive verifies that nil pointers pass but non-positive values fail.
*/
func TestValidator_Positive(t *testing.T) {
	zero := 0
	ten := 10

	v := &validate.Validator{}
	v.Positive("pages_read", nil).Positive("start_page", &ten)
	assert.False(t, v.HasErrors())

	v.Positive("pages_read", &zero)
	assert.True(t, v.HasErrors())
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("status", "currently_reading").
		OneOf("status", "currently_reading", "want_to_read", "currently_reading", "read", "did_not_finish").
		Range("personal_rating", 4, 1, 5).
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	// Every rule below fails; errors must accumulate.
	err := v.
		Required("reading_method", "").
		OneOf("reading_method", "vinyl", "physical", "ebook", "audiobook").
		Range("personal_rating", 9, 1, 5).
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}
