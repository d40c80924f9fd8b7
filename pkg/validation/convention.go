package validation

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr/vm"

	"github.com/actionsmith/inputguard/pkg/constants"
	"github.com/actionsmith/inputguard/pkg/logger"
	"github.com/actionsmith/inputguard/pkg/rules"
)

var conventionLog = logger.New("validation:convention")

// fieldCheck validates one named value, recording errors on the shared
// accumulator.
type fieldCheck func(value, field string) bool

type compiledConstraint struct {
	program *vm.Program
	message string
}

// ConventionBasedValidator validates a whole input set by resolving
// each field to a type validator: an explicit rule override first, the
// name convention tables second, and the generic security scan for
// everything unmatched. Each field is checked by exactly one
// validator.
type ConventionBasedValidator struct {
	*BaseValidator

	boolean  *BooleanValidator
	version  *VersionValidator
	token    *TokenValidator
	numeric  *NumericValidator
	file     *FileValidator
	network  *NetworkValidator
	docker   *DockerValidator
	security *SecurityValidator
	codeql   *CodeQLValidator

	dispatch    map[rules.Tag]fieldCheck
	constraints []compiledConstraint
	checksRun   int
}

// NewConventionBasedValidator builds the composite for one action. A
// nil rule means convention matching alone. Constraint expressions
// compile here, so a broken rule file surfaces as a configuration
// error before any input is read.
func NewConventionBasedValidator(actionType constants.ActionType, rule *rules.Rule) (*ConventionBasedValidator, error) {
	base := NewBaseValidator(actionType, rule)
	v := &ConventionBasedValidator{
		BaseValidator: base,
		boolean:       NewBooleanValidator(base),
		version:       NewVersionValidator(base),
		token:         NewTokenValidator(base),
		numeric:       NewNumericValidator(base),
		file:          NewFileValidator(base),
		network:       NewNetworkValidator(base),
		docker:        NewDockerValidator(base),
		security:      NewSecurityValidator(base),
		codeql:        NewCodeQLValidator(base),
	}
	v.dispatch = map[rules.Tag]fieldCheck{
		rules.TagBoolean:          v.boolean.ValidateBoolean,
		rules.TagSemanticVersion:  v.version.ValidateSemanticVersion,
		rules.TagCalendarVersion:  v.version.ValidateCalendarVersion,
		rules.TagFlexibleVersion:  v.version.ValidateFlexibleVersion,
		rules.TagGoVersion:        v.version.ValidateGoVersion,
		rules.TagPHPVersion:       v.version.ValidatePHPVersion,
		rules.TagGitHubToken:      v.token.ValidateGitHubToken,
		rules.TagToken:            v.token.ValidateToken,
		rules.TagFilePath:         v.file.ValidateFilePath,
		rules.TagReadmePath:       v.file.ValidateReadmePath,
		rules.TagConfigPath:       v.file.ValidateConfigPath,
		rules.TagURL:              v.network.ValidateURL,
		rules.TagEmail:            v.network.ValidateEmail,
		rules.TagHostname:         v.network.ValidateHostname,
		rules.TagIPAddress:        v.network.ValidateIPAddress,
		rules.TagDockerImage:      v.docker.ValidateImageName,
		rules.TagDockerTag:        v.docker.ValidateTag,
		rules.TagDockerPlatform:   v.docker.ValidatePlatforms,
		rules.TagCodeQLLanguage:   v.codeql.ValidateLanguages,
		rules.TagCodeQLQuerySuite: v.codeql.ValidateQuerySuite,
		rules.TagCodeQLCategory:   v.codeql.ValidateCategory,
		rules.TagSecurityScan:     v.security.ValidateValue,
	}

	for _, constraint := range v.Rule().Constraints {
		program, err := constraint.Compile()
		if err != nil {
			return nil, err
		}
		v.constraints = append(v.constraints, compiledConstraint{program: program, message: constraint.Message})
	}
	return v, nil
}

// ValidateInputs checks the required-input set, every non-blank field,
// and the rule's cross-field constraints. The accumulator is cleared on
// entry, so a reused instance only ever reports the current run.
func (v *ConventionBasedValidator) ValidateInputs(inputs InputSet) []*ValidationError {
	v.ClearErrors()
	v.checksRun = 0
	v.ValidateRequiredInputs(inputs)

	for _, name := range inputs.Names() {
		value := inputs.Get(name)
		if strings.TrimSpace(value) == "" {
			// Blank fields are either optional, and so valid, or
			// already reported by the required-input check.
			continue
		}
		v.checksRun++
		v.dispatchField(value, name)
	}

	for _, constraint := range v.constraints {
		v.checksRun++
		passed, err := rules.RunConstraint(constraint.program, map[string]string(inputs))
		if err != nil {
			v.AddError(NewValidationError("", "",
				fmt.Sprintf("constraint could not be evaluated: %v", err),
				"fix the constraint expression in the rule file"))
			continue
		}
		if !passed {
			v.AddError(NewValidationError("", "", constraint.message, ""))
		}
	}

	conventionLog.Printf("Validated %q: %d checks, %d errors, %d warnings",
		v.ActionType(), v.checksRun, len(v.Errors()), len(v.Warnings()))
	return v.Errors()
}

// ChecksApplied returns how many field and constraint checks the last
// ValidateInputs call ran.
func (v *ConventionBasedValidator) ChecksApplied() int {
	return v.checksRun
}

// ResolveTag returns the convention tag a field dispatches on.
func (v *ConventionBasedValidator) ResolveTag(field string) rules.Tag {
	if tag, ok := v.Rule().TagOverride(field); ok {
		return tag
	}
	if tag, ok := rules.MatchTag(field); ok {
		return tag
	}
	return rules.TagSecurityScan
}

func (v *ConventionBasedValidator) dispatchField(value, field string) bool {
	tag := v.ResolveTag(field)
	if min, max, ok := tag.NumericRange(); ok {
		return v.numeric.ValidateNumericRange(value, field, min, max)
	}
	check, ok := v.dispatch[tag]
	if !ok {
		// A tag with no dispatch entry would mean the rule loader let
		// an unknown tag through; scan rather than accept silently.
		conventionLog.Printf("No dispatch entry for tag %q, falling back to security scan", tag)
		check = v.security.ValidateValue
	}
	return check(value, field)
}
