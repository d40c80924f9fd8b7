// Package actionenv adapts the GitHub Actions runtime for the validation
// engine: it maps INPUT_-prefixed environment variables into an InputSet,
// resolves which action's rules apply, and writes the run's outputs back
// through GITHUB_OUTPUT.
package actionenv

import (
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/actionsmith/inputguard/pkg/constants"
	"github.com/actionsmith/inputguard/pkg/logger"
	"github.com/actionsmith/inputguard/pkg/stringutil"
	"github.com/actionsmith/inputguard/pkg/validation"
)

var log = logger.New("actionenv:actionenv")

// Input names steering the engine rather than carrying action data, as
// mapped from INPUT_ACTION_TYPE, its INPUT_ACTION alias, and
// INPUT_FAIL_ON_ERROR.
const (
	ActionTypeInput  = "action-type"
	ActionAliasInput = "action"
	FailOnErrorInput = "fail-on-error"
)

// FromEnviron extracts action inputs from an environment in the form
// returned by os.Environ. Only INPUT_-prefixed variables are mapped; names
// are converted to kebab-case ("INPUT_IMAGE_NAME" becomes "image-name").
func FromEnviron(environ []string) validation.InputSet {
	inputs := make(validation.InputSet)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if inputName, ok := stringutil.EnvVarToInputName(name); ok {
			inputs[inputName] = value
		}
	}
	log.Printf("Mapped %d inputs from environment", len(inputs))
	return inputs
}

// CurrentInputs reads the action inputs from the process environment.
func CurrentInputs() validation.InputSet {
	return FromEnviron(os.Environ())
}

// ResolveActionType returns the action the inputs belong to, preferring
// the action-type input over its action alias. ok is false when neither
// is set.
func ResolveActionType(inputs validation.InputSet) (constants.ActionType, bool) {
	if v := inputs.Get(ActionTypeInput); v != "" {
		return constants.ActionType(v), true
	}
	if v := inputs.Get(ActionAliasInput); v != "" {
		return constants.ActionType(v), true
	}
	return "", false
}

// DataInputs returns a copy of inputs with the engine-selection fields
// removed. What remains is the data the action's validator sees, so the
// selector and the flag never trip a grammar meant for action inputs.
func DataInputs(inputs validation.InputSet) validation.InputSet {
	data := inputs.Clone()
	delete(data, ActionTypeInput)
	delete(data, ActionAliasInput)
	delete(data, FailOnErrorInput)
	return data
}

// FailOnError reports whether a failed validation should fail the step.
// The flag defaults to on; only an explicit "false" disables it.
func FailOnError(inputs validation.InputSet) bool {
	return !strings.EqualFold(strings.TrimSpace(inputs.Get(FailOnErrorInput)), "false")
}

// IsGitHubActions reports whether the process runs inside an Actions job.
func IsGitHubActions() bool {
	return os.Getenv(constants.GitHubActionsEnvVar.String()) == "true"
}

// NewRunID returns a unique identifier for one validation run, included in
// the output record so job logs and annotations can be correlated.
func NewRunID() string {
	return uuid.NewString()
}
