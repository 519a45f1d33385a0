// Copyright (c) 2026 Gatehouse. All rights reserved.
// Author: e.belkina.dev@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebelkina/gatehouse/internal/platform/apperr"
	"github.com/ebelkina/gatehouse/internal/platform/validate"
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
		{"valid_string", "login", "ivanov", false},
		{"empty_string", "login", "", true},
		{"whitespace_only", "login", "   ", true},
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
TestValidator_Present checks the absent-vs-empty distinction used by the
login password contract.
*/
func TestValidator_Present(t *testing.T) {
	tests := []struct {
		name     string
		present  bool
		hasError bool
	}{
		{"field_sent_empty", true, false},
		{"field_absent", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Present("password", tt.present)

			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

/*
TestValidator_MinLen checks the minimum length rule on Unicode counts.
*/
func TestValidator_MinLen(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		min      int
		hasError bool
	}{
		{"long_enough", "abcdef", 3, false},
		{"exact_length", "abc", 3, false},
		{"too_short", "ab", 3, true},
		{"unicode_counted_as_runes", "пароль", 6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.MinLen("password", tt.value, tt.min)

			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

/*
TestValidator_ChainCollectsAllErrors verifies multiple failures are reported
together in a single VALIDATION_ERROR.
*/
func TestValidator_ChainCollectsAllErrors(t *testing.T) {
	v := &validate.Validator{}
	v.Required("login", "").
		Present("password", false).
		MaxLen("page", "a-very-long-page-name", 5)

	err := v.Err()
	require.NotNil(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 3)
}
