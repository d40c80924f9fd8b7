package validation

import (
	"strings"

	"github.com/actionsmith/inputguard/pkg/rules"
)

// BooleanValidator checks flag-like inputs. Only the literals "true"
// and "false" pass; shell-style yes/no/1/0 never do. Whether casing
// matters comes from the field's rule entry.
type BooleanValidator struct {
	*BaseValidator
}

func NewBooleanValidator(base *BaseValidator) *BooleanValidator {
	return &BooleanValidator{BaseValidator: base}
}

// ValidateBoolean checks one boolean field.
func (v *BooleanValidator) ValidateBoolean(value, field string) bool {
	if IsGitHubExpression(value) {
		return true
	}

	candidate := value
	if v.Rule().BooleanCaseFor(field) == rules.BooleanCaseInsensitive {
		candidate = strings.ToLower(value)
	}
	if candidate == "true" || candidate == "false" {
		return true
	}

	hint := `use the literal string "true" or "false"`
	if strings.EqualFold(value, "true") || strings.EqualFold(value, "false") {
		hint = "this field is case-sensitive; use lowercase"
	}
	v.AddError(NewValidationError(field, value, `must be "true" or "false"`, hint))
	return false
}
