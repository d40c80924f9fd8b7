package validation

import (
	"fmt"
	"regexp"
	"strconv"
)

// integerPattern accepts base-10 integers with an optional minus sign.
// A leading plus, decimals, and grouping separators all fail.
var integerPattern = regexp.MustCompile(`^-?[0-9]+$`)

// NumericValidator checks integer inputs against inclusive ranges. The
// range for a field comes from its convention tag (numeric_range_M_N)
// or from the caller directly.
type NumericValidator struct {
	*BaseValidator
}

func NewNumericValidator(base *BaseValidator) *NumericValidator {
	return &NumericValidator{BaseValidator: base}
}

// ValidateNumericRange checks that value is an integer with
// min <= value <= max.
func (v *NumericValidator) ValidateNumericRange(value, field string, min, max int) bool {
	if IsGitHubExpression(value) {
		return true
	}
	if !integerPattern.MatchString(value) {
		v.AddError(NewValidationError(field, value,
			"not a base-10 integer",
			fmt.Sprintf("use a whole number between %d and %d", min, max)))
		return false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		// Digits but beyond the int range.
		v.AddError(NewValidationError(field, value,
			fmt.Sprintf("must be between %d and %d", min, max), ""))
		return false
	}
	if n < min || n > max {
		v.AddError(NewValidationError(field, value,
			fmt.Sprintf("must be between %d and %d", min, max), ""))
		return false
	}
	return true
}
