package rules

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// constraintEnv is the environment a constraint expression evaluates in:
// the raw inputs map plus an input(name) accessor. The accessor returns ""
// for absent inputs, which map indexing does not, so expressions should
// prefer input("name") over inputs["name"].
type constraintEnv struct {
	Inputs map[string]string        `expr:"inputs"`
	Input  func(name string) string `expr:"input"`
}

func newConstraintEnv(inputs map[string]string) constraintEnv {
	return constraintEnv{
		Inputs: inputs,
		Input: func(name string) string {
			return inputs[name]
		},
	}
}

// Compile type-checks the constraint expression. The result must be a
// boolean; anything else is a configuration error surfaced at authoring
// time by the rules checker.
func (c Constraint) Compile() (*vm.Program, error) {
	program, err := expr.Compile(c.Expr, expr.Env(constraintEnv{}), expr.AsBool())
	if err != nil {
		return nil, &ConfigError{
			Reason: fmt.Sprintf("constraint %q does not compile: %v", c.Expr, err),
			Err:    err,
		}
	}
	return program, nil
}

// Evaluate runs the constraint against an input set. A false result means
// the constraint is violated and its Message should be reported for the
// run. Errors indicate a broken expression, not bad input data.
func (c Constraint) Evaluate(inputs map[string]string) (bool, error) {
	program, err := c.Compile()
	if err != nil {
		return false, err
	}
	return RunConstraint(program, inputs)
}

// RunConstraint evaluates a compiled constraint program against an input
// set. Validators compile constraints once at construction and run them
// here per input set.
func RunConstraint(program *vm.Program, inputs map[string]string) (bool, error) {
	out, err := expr.Run(program, newConstraintEnv(inputs))
	if err != nil {
		return false, &ConfigError{
			Reason: fmt.Sprintf("constraint failed to evaluate: %v", err),
			Err:    err,
		}
	}

	ok, isBool := out.(bool)
	if !isBool {
		return false, &ConfigError{Reason: "constraint did not produce a boolean"}
	}
	return ok, nil
}
