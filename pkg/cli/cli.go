// Package cli implements the inputguard command tree: validate inputs
// for one action, maintain the per-action rule documents, and serve the
// engine over MCP. Commands are thin cobra wiring; the behavior lives in
// pkg/validation and pkg/rules.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/actionsmith/inputguard/pkg/constants"
	"github.com/actionsmith/inputguard/pkg/envutil"
	"github.com/actionsmith/inputguard/pkg/logger"
	"github.com/actionsmith/inputguard/pkg/validation"
)

var cliLog = logger.New("cli:cli")

// parseInputFlags turns repeated --input name=value flags into an
// InputSet. Names are the kebab-case form declared in action.yml; values
// keep everything after the first "=", so values containing "=" survive.
func parseInputFlags(pairs []string) (validation.InputSet, error) {
	inputs := make(validation.InputSet, len(pairs))
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, fmt.Errorf("invalid --input %q: expected name=value", pair)
		}
		inputs[name] = value
	}
	return inputs, nil
}

// resolveRulesDir picks the rules directory: the flag when set, then the
// environment override, then the in-repo default.
func resolveRulesDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if dir := os.Getenv(constants.RulesDirEnvVar.String()); dir != "" {
		cliLog.Printf("Rules directory from %s: %s", constants.RulesDirEnvVar, dir)
		return dir
	}
	return constants.GetRulesDir()
}

// resolveActionsDir picks the directory holding per-action action.yml
// metadata.
func resolveActionsDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return constants.GetActionsDir()
}

// batchPoolSize reads the worker pool bound for batch operations.
func batchPoolSize() int {
	return envutil.GetIntFromEnv(constants.ProbePoolSizeEnvVar.String(), constants.DefaultPoolSize, 1, 64, cliLog)
}
