// Package validation implements the input validation engine: the shared
// validation contract, the built-in per-type validators, convention-based
// field matching, and the registry that resolves which validator serves an
// action.
//
// Validators receive inputs as an explicit InputSet rather than reading the
// process environment, so the same validator can serve the CLI entry point,
// batch runs, and tests without global state.
package validation

import (
	"fmt"
	"slices"
	"strings"
)

// InputSet holds the inputs under validation, keyed by kebab-case input
// name as declared in action.yml.
type InputSet map[string]string

// Get returns the value for name, or "" when absent.
func (s InputSet) Get(name string) string {
	return s[name]
}

// Has reports whether name is present, even with an empty value.
func (s InputSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// HasValue reports whether name is present with a non-empty value.
func (s InputSet) HasValue(name string) bool {
	return s[name] != ""
}

// Names returns the input names in sorted order.
func (s InputSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Clone returns an independent copy of the set.
func (s InputSet) Clone() InputSet {
	out := make(InputSet, len(s))
	for name, value := range s {
		out[name] = value
	}
	return out
}

// ValidationError describes one failed check on one input field.
type ValidationError struct {
	Field   string // kebab-case input name
	Value   string // offending value, redacted for sensitive fields
	Message string // what was wrong
	Hint    string // optional guidance on fixing the value
}

// NewValidationError creates a validation error. Value may be empty when
// the offending value must not be echoed back.
func NewValidationError(field, value, message, hint string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message, Hint: hint}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Detail returns the full human-readable form including the offending
// value and hint when present.
func (e *ValidationError) Detail() string {
	var sb strings.Builder
	sb.WriteString(e.Error())
	if e.Value != "" {
		fmt.Fprintf(&sb, " (got %q)", e.Value)
	}
	if e.Hint != "" {
		fmt.Fprintf(&sb, ": %s", e.Hint)
	}
	return sb.String()
}

// Validator checks a set of inputs against the rules for one action.
// Errors and warnings accumulate over one ValidateInputs run; the run
// clears them on entry, so repeated calls on one instance report only
// the latest inputs.
type Validator interface {
	// ValidateInputs clears the accumulator, runs all checks, and
	// returns the errors from this call. A nil or empty result means
	// the inputs passed.
	ValidateInputs(inputs InputSet) []*ValidationError

	// Errors returns the errors accumulated since the last ClearErrors.
	Errors() []*ValidationError

	// Warnings returns the warnings accumulated since the last ClearErrors.
	Warnings() []*ValidationError

	// ClearErrors discards accumulated errors and warnings.
	ClearErrors()
}
