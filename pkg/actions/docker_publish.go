package actions

import (
	"strings"

	"github.com/actionsmith/inputguard/pkg/constants"
	"github.com/actionsmith/inputguard/pkg/rules"
	"github.com/actionsmith/inputguard/pkg/validation"
)

// DockerPublishValidator owns the docker-publish action. The image
// name is always required, each field keeps its grammar, and pushing
// to an explicit registry demands an explicit tag so "latest by
// accident" cannot reach a remote registry.
type DockerPublishValidator struct {
	*validation.BaseValidator

	docker      *validation.DockerValidator
	network     *validation.NetworkValidator
	token       *validation.TokenValidator
	boolean     *validation.BooleanValidator
	security    *validation.SecurityValidator
	constraints []compiledConstraint
	checksRun   int
}

// NewDockerPublishValidator is the registry factory for
// docker-publish.
func NewDockerPublishValidator(actionType constants.ActionType, loader *rules.Loader) (validation.Validator, error) {
	rule, err := loader.Load(actionType)
	if err != nil {
		return nil, err
	}
	if !rule.IsRequired("image-name") {
		rule.RequiredInputs = append(rule.RequiredInputs, "image-name")
	}
	constraints, err := compileRuleConstraints(rule)
	if err != nil {
		return nil, err
	}

	base := validation.NewBaseValidator(actionType, rule)
	return &DockerPublishValidator{
		BaseValidator: base,
		docker:        validation.NewDockerValidator(base),
		network:       validation.NewNetworkValidator(base),
		token:         validation.NewTokenValidator(base),
		boolean:       validation.NewBooleanValidator(base),
		security:      validation.NewSecurityValidator(base),
		constraints:   constraints,
	}, nil
}

// ValidateInputs checks the publish inputs: required set, per-field
// grammars, and the registry-implies-tag rule. The accumulator is
// cleared on entry, so a reused instance only ever reports the current
// run.
func (v *DockerPublishValidator) ValidateInputs(inputs validation.InputSet) []*validation.ValidationError {
	v.ClearErrors()
	v.checksRun = 0
	v.ValidateRequiredInputs(inputs)

	checks := []fieldCheck{
		{"image-name", v.docker.ValidateImageName},
		{"tag", v.docker.ValidateTag},
		{"platforms", v.docker.ValidatePlatforms},
		{"registry", v.network.ValidateHostname},
		{"registry-token", v.token.ValidateToken},
		{"dry-run", v.boolean.ValidateBoolean},
		{"push", v.boolean.ValidateBoolean},
	}
	claimed := make(map[string]bool, len(checks))
	for _, c := range checks {
		claimed[c.field] = true
		value := inputs.Get(c.field)
		if strings.TrimSpace(value) == "" {
			continue
		}
		v.checksRun++
		c.check(value, c.field)
	}
	for _, name := range inputs.Names() {
		value := inputs.Get(name)
		if claimed[name] || strings.TrimSpace(value) == "" {
			continue
		}
		v.checksRun++
		v.security.ValidateValue(value, name)
	}

	v.checksRun++
	if strings.TrimSpace(inputs.Get("registry")) != "" && strings.TrimSpace(inputs.Get("tag")) == "" {
		v.AddError(validation.NewValidationError("tag", "",
			"pushing to a registry requires an explicit tag",
			"set tag alongside registry so the push target is unambiguous"))
	}

	v.checksRun += len(v.constraints)
	evaluateConstraints(v.BaseValidator, v.constraints, inputs)

	return v.Errors()
}

// ChecksApplied returns how many checks the last run dispatched.
func (v *DockerPublishValidator) ChecksApplied() int {
	return v.checksRun
}
