package validation

import (
	"github.com/actionsmith/inputguard/pkg/constants"
	"github.com/actionsmith/inputguard/pkg/logger"
)

var engineLog = logger.New("validation:engine")

// Report is the outcome of validating one action's inputs.
type Report struct {
	Action        constants.ActionType
	Passed        bool
	Errors        []*ValidationError
	Warnings      []*ValidationError
	ChecksApplied int
}

// checksCounter is implemented by validators that track how many
// checks a run dispatched.
type checksCounter interface {
	ChecksApplied() int
}

// Run validates one action's inputs through the registry and returns
// the report. The inputs should carry the action's data fields only;
// engine-selection fields like action-type are the caller's concern.
// A fresh validator is constructed per call so concurrent runs never
// share an accumulator. Errors from Run itself are configuration
// problems; bad input data lands in the report instead.
func Run(registry *Registry, actionType constants.ActionType, inputs InputSet) (*Report, error) {
	validator, err := registry.GetFresh(actionType)
	if err != nil {
		return nil, err
	}

	errs := validator.ValidateInputs(inputs)
	report := &Report{
		Action:   actionType,
		Passed:   len(errs) == 0,
		Errors:   errs,
		Warnings: validator.Warnings(),
	}
	if counter, ok := validator.(checksCounter); ok {
		report.ChecksApplied = counter.ChecksApplied()
	} else {
		report.ChecksApplied = len(inputs)
	}

	engineLog.Printf("Run %q: passed=%t errors=%d warnings=%d checks=%d",
		actionType, report.Passed, len(report.Errors), len(report.Warnings), report.ChecksApplied)
	return report, nil
}
