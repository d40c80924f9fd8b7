//go:build !integration

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actionsmith/inputguard/pkg/rules"
)

func newBooleanValidator(t *testing.T, rule *rules.Rule) *BooleanValidator {
	t.Helper()
	return NewBooleanValidator(NewBaseValidator("demo", rule))
}

func TestValidateBoolean_Strict(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"true", true},
		{"false", true},
		{"TRUE", false},
		{"False", false},
		{"yes", false},
		{"no", false},
		{"1", false},
		{"0", false},
		{"", false},
		{" true", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v := newBooleanValidator(t, nil)
			ok := v.ValidateBoolean(tt.value, "dry-run")
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				require.Len(t, v.Errors(), 1)
				assert.Equal(t, "dry-run", v.Errors()[0].Field)
				assert.Equal(t, `must be "true" or "false"`, v.Errors()[0].Message)
			}
		})
	}
}

func TestValidateBoolean_CaseHint(t *testing.T) {
	v := newBooleanValidator(t, nil)

	v.ValidateBoolean("TRUE", "dry-run")
	require.Len(t, v.Errors(), 1)
	assert.Equal(t, "this field is case-sensitive; use lowercase", v.Errors()[0].Hint)

	v.ClearErrors()
	v.ValidateBoolean("yes", "dry-run")
	require.Len(t, v.Errors(), 1)
	assert.Equal(t, `use the literal string "true" or "false"`, v.Errors()[0].Hint)
}

func TestValidateBoolean_InsensitivePolicy(t *testing.T) {
	rule := &rules.Rule{
		Action:         "demo",
		OptionalInputs: []string{"dry-run"},
		Policies: map[string]rules.FieldPolicy{
			"dry-run": {BooleanCase: rules.BooleanCaseInsensitive},
		},
	}
	v := newBooleanValidator(t, rule)

	assert.True(t, v.ValidateBoolean("TRUE", "dry-run"))
	assert.True(t, v.ValidateBoolean("False", "dry-run"))
	assert.False(t, v.ValidateBoolean("yes", "dry-run"), "insensitive widens casing, not vocabulary")

	// Other fields keep the strict default.
	assert.False(t, v.ValidateBoolean("TRUE", "verbose"))
}

func TestValidateBoolean_ExpressionPassthrough(t *testing.T) {
	v := newBooleanValidator(t, nil)
	assert.True(t, v.ValidateBoolean("${{ inputs.dry-run }}", "dry-run"))
	assert.Empty(t, v.Errors())
}
