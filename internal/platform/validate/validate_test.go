// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmesh/tripmesh/internal/platform/apperr"
	"github.com/tripmesh/tripmesh/internal/platform/validate"
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
		{"valid_string", "title", "Alps hiking week", false},
		{"empty_string", "title", "", true},
		{"whitespace_only", "title", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				appError := apperr.As(err)
				require.NotNil(t, appError)
				assert.Equal(t, "VALIDATION_ERROR", appError.Code)
				assert.Equal(t, tt.field, appError.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.NoError(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Lengths tests MinLen/MaxLen boundaries around the trip limits.
*/
func TestValidator_Lengths(t *testing.T) {
	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}

	v := &validate.Validator{}
	v.MaxLen("title", string(long), 100)
	assert.True(t, v.HasErrors())

	v = &validate.Validator{}
	v.MaxLen("title", "Weekend in Vienna", 100)
	assert.False(t, v.HasErrors())

	v = &validate.Validator{}
	v.MinLen("username", "ab", 3)
	assert.True(t, v.HasErrors())
}

/*
TestValidator_Email tests RFC 5322 address validation.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid", "john@example.com", false},
		{"missing_at", "john.example.com", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.value)
			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

/*
TestValidator_Coordinates tests the WGS84 latitude/longitude bounds.
*/
func TestValidator_Coordinates(t *testing.T) {
	v := &validate.Validator{}
	v.Latitude("latitude", 48.2).Longitude("longitude", 16.38)
	assert.False(t, v.HasErrors())

	v = &validate.Validator{}
	v.Latitude("latitude", 91)
	assert.True(t, v.HasErrors())

	v = &validate.Validator{}
	v.Longitude("longitude", -181)
	assert.True(t, v.HasErrors())
}

/*
TestValidator_Chaining verifies multiple failures accumulate into one error.
*/
func TestValidator_Chaining(t *testing.T) {
	v := &validate.Validator{}
	err := v.
		Required("title", "").
		Required("destination", "").
		Email("email", "nope").
		Err()

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Len(t, appError.Details, 3)
}

/*
TestValidator_OneOf verifies the enumerated value check used for trip status.
*/
func TestValidator_OneOf(t *testing.T) {
	v := &validate.Validator{}
	v.OneOf("status", "PLANNING", "PLANNING", "CONFIRMED", "ONGOING", "COMPLETED", "CANCELLED")
	assert.False(t, v.HasErrors())

	v = &validate.Validator{}
	v.OneOf("status", "ARCHIVED", "PLANNING", "CONFIRMED", "ONGOING", "COMPLETED", "CANCELLED")
	assert.True(t, v.HasErrors())
}
