// Package actions ships the compiled-in custom validators: actions
// whose input rules need more than convention matching get a dedicated
// validator here, registered by RegisterBuiltins. A registered action
// is owned outright by its custom validator; the convention engine
// does not also run for it.
package actions

import (
	"fmt"

	"github.com/expr-lang/expr/vm"

	"github.com/actionsmith/inputguard/pkg/constants"
	"github.com/actionsmith/inputguard/pkg/logger"
	"github.com/actionsmith/inputguard/pkg/rules"
	"github.com/actionsmith/inputguard/pkg/validation"
)

var actionsLog = logger.New("actions:builtins")

// fieldCheck pairs a declared field with its grammar. Each custom
// validator walks its own table; fields outside the table get the
// generic security scan, never a silent pass.
type fieldCheck struct {
	field string
	check func(value, field string) bool
}

// compiledConstraint is a rule-file cross-field constraint compiled at
// validator construction. Custom validators honor declared constraints
// the same way convention-based ones do.
type compiledConstraint struct {
	program *vm.Program
	message string
}

func compileRuleConstraints(rule *rules.Rule) ([]compiledConstraint, error) {
	var compiled []compiledConstraint
	for _, constraint := range rule.Constraints {
		program, err := constraint.Compile()
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledConstraint{program: program, message: constraint.Message})
	}
	return compiled, nil
}

func evaluateConstraints(base *validation.BaseValidator, constraints []compiledConstraint, inputs validation.InputSet) {
	for _, constraint := range constraints {
		passed, err := rules.RunConstraint(constraint.program, map[string]string(inputs))
		if err != nil {
			base.AddError(validation.NewValidationError("", "",
				fmt.Sprintf("constraint could not be evaluated: %v", err),
				"fix the constraint expression in the rule file"))
			continue
		}
		if !passed {
			base.AddError(validation.NewValidationError("", "", constraint.message, ""))
		}
	}
}

// Builtin describes one compiled-in custom validator.
type Builtin struct {
	Action      constants.ActionType
	Description string
	Factory     validation.Factory
}

// Builtins returns the custom validators this binary ships, in
// registration order.
func Builtins() []Builtin {
	return []Builtin{
		{
			Action:      "docker-publish",
			Description: "image publishing: requires image-name, pushing to a registry requires a tag",
			Factory:     NewDockerPublishValidator,
		},
		{
			Action:      "release-notes",
			Description: "release documentation: requires version and notes-file, notes must be a readme-style file",
			Factory:     NewReleaseNotesValidator,
		},
	}
}

// RegisterBuiltins installs every shipped custom validator into the
// registry. Embedders add their own with Registry.RegisterCustom.
func RegisterBuiltins(registry *validation.Registry) error {
	for _, builtin := range Builtins() {
		if err := registry.RegisterCustom(builtin.Action, builtin.Factory); err != nil {
			return err
		}
	}
	actionsLog.Printf("Registered %d builtin custom validators", len(Builtins()))
	return nil
}
