// Package constants centralizes the identifiers shared across packages:
// environment variable names, output record keys, default directories,
// and timeouts. Semantic string types keep different kinds of identifiers
// from being mixed accidentally.
package constants

import (
	"path/filepath"
	"strconv"
	"time"
)

// ActionType identifies which action's ruleset and validator apply.
type ActionType string

// OutputName is a key in the GITHUB_OUTPUT record.
type OutputName string

// EnvVarName is the name of an environment variable the engine reads.
type EnvVarName string

// CommandPrefix is the invocation prefix shown in CLI help examples.
type CommandPrefix string

// LineLength is a positive character count used for output formatting.
type LineLength int

func (a ActionType) String() string    { return string(a) }
func (a ActionType) IsValid() bool     { return a != "" }
func (o OutputName) String() string    { return string(o) }
func (o OutputName) IsValid() bool     { return o != "" }
func (e EnvVarName) String() string    { return string(e) }
func (e EnvVarName) IsValid() bool     { return e != "" }
func (c CommandPrefix) String() string { return string(c) }
func (c CommandPrefix) IsValid() bool  { return c != "" }
func (l LineLength) String() string    { return strconv.Itoa(int(l)) }
func (l LineLength) IsValid() bool     { return l > 0 }

const (
	// CLIPrefix is how users invoke the binary in documentation examples.
	CLIPrefix CommandPrefix = "inputguard"

	// InputEnvPrefix tags the environment variables carrying action inputs.
	InputEnvPrefix = "INPUT_"

	// ActionTypeEnvVar names the action whose ruleset applies.
	// ActionAliasEnvVar is accepted when the primary variable is absent.
	ActionTypeEnvVar  EnvVarName = "INPUT_ACTION_TYPE"
	ActionAliasEnvVar EnvVarName = "INPUT_ACTION"

	// GitHubOutputEnvVar points at the append-only KEY=VALUE record file
	// provided by the Actions runner.
	GitHubOutputEnvVar EnvVarName = "GITHUB_OUTPUT"

	// GitHubActionsEnvVar is "true" when running inside an Actions job.
	GitHubActionsEnvVar EnvVarName = "GITHUB_ACTIONS"

	// RulesDirEnvVar overrides the default rules directory.
	RulesDirEnvVar EnvVarName = "INPUTGUARD_RULES_DIR"

	// ProbePoolSizeEnvVar tunes the batch worker pool size.
	ProbePoolSizeEnvVar EnvVarName = "INPUTGUARD_POOL_SIZE"
)

// Output record keys written to GITHUB_OUTPUT after a run.
const (
	StatusOutput        OutputName = "status"
	ErrorsFoundOutput   OutputName = "errors_found"
	WarningsFoundOutput OutputName = "warnings_found"
	RulesAppliedOutput  OutputName = "rules_applied"
	RunIDOutput         OutputName = "run_id"
)

// Status values for the output record.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// RuleSchemaVersion is the schema_version written into generated rule
// documents and required of loaded ones.
const RuleSchemaVersion = 2

// Timeouts and limits.
const (
	// DefaultProbeTimeout bounds one docker manifest inspection.
	DefaultProbeTimeout = 10 * time.Second

	// DefaultWatchDebounce coalesces filesystem events during watch mode.
	DefaultWatchDebounce = 300 * time.Millisecond

	// DefaultPoolSize bounds batch generation/check concurrency.
	DefaultPoolSize = 4

	// MaxSummaryWidth caps the summary table width on wide terminals.
	MaxSummaryWidth LineLength = 100
)

// GetRulesDir returns the default rules directory relative to the
// repository root.
func GetRulesDir() string {
	return filepath.Join(".github", "validation-rules")
}

// GetActionsDir returns the default directory containing per-action
// subdirectories with action.yml metadata.
func GetActionsDir() string {
	return "actions"
}
