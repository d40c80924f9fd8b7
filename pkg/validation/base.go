package validation

import (
	"fmt"
	"strings"

	"github.com/actionsmith/inputguard/pkg/constants"
	"github.com/actionsmith/inputguard/pkg/rules"
)

// BaseValidator carries the pieces every validator shares: the action
// under validation, its rule document, and the error accumulator. Type
// validators wrap a *BaseValidator so a composite run collects every
// finding in one place.
type BaseValidator struct {
	Collector
	actionType constants.ActionType
	rule       *rules.Rule
}

// NewBaseValidator creates the shared validator state for one action.
// A nil rule means no rule document exists; the action then has no
// required inputs and no convention overrides.
func NewBaseValidator(actionType constants.ActionType, rule *rules.Rule) *BaseValidator {
	if rule == nil {
		rule = rules.DefaultRule(actionType.String())
	}
	return &BaseValidator{actionType: actionType, rule: rule}
}

// ActionType returns the action this validator serves.
func (v *BaseValidator) ActionType() constants.ActionType {
	return v.actionType
}

// Rule returns the rule document in effect for this validator.
func (v *BaseValidator) Rule() *rules.Rule {
	return v.rule
}

// LoadRule replaces the validator's rule with the one the loader holds
// for its action. Rule problems surface as configuration errors, never
// as validation errors.
func (v *BaseValidator) LoadRule(loader *rules.Loader) error {
	rule, err := loader.Load(v.actionType)
	if err != nil {
		return err
	}
	v.rule = rule
	return nil
}

// RequiredInputs returns the names this validator treats as required.
func (v *BaseValidator) RequiredInputs() []string {
	return v.rule.RequiredInputs
}

// IsGitHubExpression reports whether value contains a ${{ ... }}
// expression. Such values are substituted by the runner after
// validation runs, so every grammar accepts them as-is.
func IsGitHubExpression(value string) bool {
	return strings.Contains(value, "${{")
}

// ValidateRequiredInputs checks that every required input is present
// with a non-blank value, appending one error per missing field.
func (v *BaseValidator) ValidateRequiredInputs(inputs InputSet) bool {
	ok := true
	for _, name := range v.rule.RequiredInputs {
		if strings.TrimSpace(inputs.Get(name)) == "" {
			v.AddError(NewValidationError(name, "",
				"required input is missing or empty",
				"set a non-empty value in the step's with: block"))
			ok = false
		}
	}
	return ok
}

// ValidatePathSecurity rejects parent traversal and absolute paths
// under the field's path policy. Fields whose rule entry says
// permissive accept those forms; everything else is strict.
func (v *BaseValidator) ValidatePathSecurity(value, field string) bool {
	if IsGitHubExpression(value) {
		return true
	}
	if v.rule.PathPolicyFor(field) == rules.PathPolicyPermissive {
		return true
	}
	switch {
	case strings.Contains(value, "../"), strings.Contains(value, `..\`):
		v.AddError(NewValidationError(field, value,
			"path traversal detected",
			"use a path inside the workspace without parent segments"))
		return false
	case strings.HasPrefix(value, "/"):
		v.AddError(NewValidationError(field, value,
			"absolute paths are not allowed",
			"use a path relative to the workspace"))
		return false
	}
	return true
}

// shellMetacharacters holds the injection markers the generic scan
// rejects, multi-character markers first so `&&` reports as itself and
// not as two stray characters. Newlines count: a line break separates
// commands just like a semicolon does.
var shellMetacharacters = []string{"&&", "||", ";", "`", "$(", "\n", "\r"}

// ValidateSecurityPatterns scans value for shell metacharacters. Pipes
// are rejected only when allowPipe is false: some grammars (glob
// alternation, table formats) carry legitimate pipes.
func (v *BaseValidator) ValidateSecurityPatterns(value, field string, allowPipe bool) bool {
	if IsGitHubExpression(value) {
		return true
	}
	for _, marker := range shellMetacharacters {
		if strings.Contains(value, marker) {
			v.AddError(NewValidationError(field, value,
				fmt.Sprintf("shell metacharacter %q detected", marker),
				"remove shell control sequences from the value"))
			return false
		}
	}
	if !allowPipe && strings.Contains(value, "|") {
		v.AddError(NewValidationError(field, value,
			`shell metacharacter "|" detected`,
			"remove shell control sequences from the value"))
		return false
	}
	return true
}

// containsShellMetacharacters reports whether value carries any of the
// generic injection markers, without recording an error. Validators
// that must redact values use this and write their own message.
func containsShellMetacharacters(value string, allowPipe bool) bool {
	for _, marker := range shellMetacharacters {
		if strings.Contains(value, marker) {
			return true
		}
	}
	return !allowPipe && strings.Contains(value, "|")
}
