//go:build !integration

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNumericRange(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		min, max int
		ok       bool
	}{
		{"at minimum", "1", 1, 65535, true},
		{"at maximum", "65535", 1, 65535, true},
		{"inside", "8080", 1, 65535, true},
		{"below minimum", "0", 1, 65535, false},
		{"above maximum", "65536", 1, 65535, false},
		{"negative in negative range", "-5", -10, 10, true},
		{"zero retries", "0", 0, 10, true},
		{"leading plus", "+5", 1, 65535, false},
		{"decimal", "8.5", 1, 65535, false},
		{"grouping separator", "1,000", 1, 65535, false},
		{"hex", "0x10", 1, 65535, false},
		{"blank", "", 1, 65535, false},
		{"words", "eight", 1, 65535, false},
		{"trailing space", "8080 ", 1, 65535, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewNumericValidator(NewBaseValidator("demo", nil))
			ok := v.ValidateNumericRange(tt.value, "port", tt.min, tt.max)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, !tt.ok, v.HasErrors())
		})
	}
}

func TestValidateNumericRange_Messages(t *testing.T) {
	v := NewNumericValidator(NewBaseValidator("demo", nil))

	v.ValidateNumericRange("ten", "port", 1, 65535)
	require.Len(t, v.Errors(), 1)
	assert.Equal(t, "not a base-10 integer", v.Errors()[0].Message)
	assert.Contains(t, v.Errors()[0].Hint, "between 1 and 65535")

	v.ClearErrors()
	v.ValidateNumericRange("70000", "port", 1, 65535)
	require.Len(t, v.Errors(), 1)
	assert.Equal(t, "must be between 1 and 65535", v.Errors()[0].Message)
}

func TestValidateNumericRange_Overflow(t *testing.T) {
	v := NewNumericValidator(NewBaseValidator("demo", nil))

	// All digits, but far past the int range: reported as out of bounds,
	// never as a parse panic.
	ok := v.ValidateNumericRange("99999999999999999999999999", "count", 0, 1000)
	assert.False(t, ok)
	require.Len(t, v.Errors(), 1)
	assert.Equal(t, "must be between 0 and 1000", v.Errors()[0].Message)
}

func TestValidateNumericRange_ExpressionPassthrough(t *testing.T) {
	v := NewNumericValidator(NewBaseValidator("demo", nil))
	assert.True(t, v.ValidateNumericRange("${{ inputs.port }}", "port", 1, 65535))
	assert.Empty(t, v.Errors())
}
