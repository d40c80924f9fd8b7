// Package rules defines the declarative per-action validation rules: which
// inputs are required, which validator grammar each field uses, and the
// per-field policies that make historically implicit behavior explicit.
// The loader reads rule documents at validation time; the generator and
// checker maintain them offline from action metadata.
package rules

import (
	"slices"

	"github.com/actionsmith/inputguard/pkg/constants"
)

// PathPolicy states how strictly a path-typed field is checked.
type PathPolicy string

const (
	// PathPolicyStrict rejects traversal segments and absolute paths.
	PathPolicyStrict PathPolicy = "strict"
	// PathPolicyPermissive allows traversal and absolute paths but still
	// rejects injection metacharacters.
	PathPolicyPermissive PathPolicy = "permissive"
)

func (p PathPolicy) String() string { return string(p) }

func (p PathPolicy) IsValid() bool {
	return p == PathPolicyStrict || p == PathPolicyPermissive
}

// BooleanCase states how a boolean field treats letter case.
type BooleanCase string

const (
	// BooleanCaseStrict accepts exactly "true" and "false".
	BooleanCaseStrict BooleanCase = "strict"
	// BooleanCaseInsensitive accepts any casing of true/false.
	BooleanCaseInsensitive BooleanCase = "insensitive"
)

func (b BooleanCase) String() string { return string(b) }

func (b BooleanCase) IsValid() bool {
	return b == BooleanCaseStrict || b == BooleanCaseInsensitive
}

// VersionPrefix states whether a version field takes a leading "v".
type VersionPrefix string

const (
	VersionPrefixAllow   VersionPrefix = "allow"
	VersionPrefixForbid  VersionPrefix = "forbid"
	VersionPrefixRequire VersionPrefix = "require"
)

func (v VersionPrefix) String() string { return string(v) }

func (v VersionPrefix) IsValid() bool {
	return v == VersionPrefixAllow || v == VersionPrefixForbid || v == VersionPrefixRequire
}

// FieldPolicy carries the explicit per-field choices a rule document must
// state for fields whose grammar is policy-sensitive. Zero values mean the
// document did not state a policy; the checker flags that at authoring
// time, and validators fall back to the strict default at run time.
type FieldPolicy struct {
	Path          PathPolicy    `yaml:"path,omitempty" json:"path,omitempty"`
	BooleanCase   BooleanCase   `yaml:"boolean_case,omitempty" json:"boolean_case,omitempty"`
	VersionPrefix VersionPrefix `yaml:"version_prefix,omitempty" json:"version_prefix,omitempty"`
}

// IsZero reports whether no policy choice is present.
func (p FieldPolicy) IsZero() bool {
	return p == FieldPolicy{}
}

// Constraint is a cross-field condition over the whole input set,
// expressed in expr syntax with an input(name) accessor that returns ""
// for absent inputs:
//
//	expr: input("registry") == "" || input("tag") != ""
//	message: tag is required when pushing to a registry
type Constraint struct {
	Expr    string `yaml:"expr" json:"expr"`
	Message string `yaml:"message" json:"message"`
}

// Rule is one action's declarative validation rule document.
type Rule struct {
	SchemaVersion  int                    `yaml:"schema_version" json:"schema_version"`
	Action         string                 `yaml:"action" json:"action"`
	Description    string                 `yaml:"description,omitempty" json:"description,omitempty"`
	RequiredInputs []string               `yaml:"required_inputs" json:"required_inputs"`
	OptionalInputs []string               `yaml:"optional_inputs,omitempty" json:"optional_inputs,omitempty"`
	Conventions    map[string]Tag         `yaml:"conventions,omitempty" json:"conventions,omitempty"`
	Policies       map[string]FieldPolicy `yaml:"policies,omitempty" json:"policies,omitempty"`
	Constraints    []Constraint           `yaml:"constraints,omitempty" json:"constraints,omitempty"`
}

// DefaultRule returns the rule used when an action has no rule document:
// no required inputs, no overrides, no constraints.
func DefaultRule(action string) *Rule {
	return &Rule{
		SchemaVersion: constants.RuleSchemaVersion,
		Action:        action,
	}
}

// IsRequired reports whether name is in the required-input set.
func (r *Rule) IsRequired(name string) bool {
	return slices.Contains(r.RequiredInputs, name)
}

// IsDeclared reports whether name appears as a required or optional input.
func (r *Rule) IsDeclared(name string) bool {
	return slices.Contains(r.RequiredInputs, name) || slices.Contains(r.OptionalInputs, name)
}

// DeclaredInputs returns the union of required and optional inputs, in
// document order with required inputs first.
func (r *Rule) DeclaredInputs() []string {
	out := make([]string, 0, len(r.RequiredInputs)+len(r.OptionalInputs))
	out = append(out, r.RequiredInputs...)
	for _, name := range r.OptionalInputs {
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

// TagOverride returns the explicit convention tag for name, if the
// document declares one.
func (r *Rule) TagOverride(name string) (Tag, bool) {
	tag, ok := r.Conventions[name]
	return tag, ok
}

// PolicyFor returns the field's policy record, zero when absent.
func (r *Rule) PolicyFor(name string) FieldPolicy {
	return r.Policies[name]
}

// PathPolicyFor returns the field's path policy, defaulting to strict
// when the document states none.
func (r *Rule) PathPolicyFor(name string) PathPolicy {
	if p := r.Policies[name].Path; p.IsValid() {
		return p
	}
	return PathPolicyStrict
}

// BooleanCaseFor returns the field's boolean case policy, defaulting to
// strict when the document states none.
func (r *Rule) BooleanCaseFor(name string) BooleanCase {
	if c := r.Policies[name].BooleanCase; c.IsValid() {
		return c
	}
	return BooleanCaseStrict
}

// VersionPrefixFor returns the field's leading-v policy, defaulting to
// allow when the document states none.
func (r *Rule) VersionPrefixFor(name string) VersionPrefix {
	if v := r.Policies[name].VersionPrefix; v.IsValid() {
		return v
	}
	return VersionPrefixAllow
}
