package rules

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/actionsmith/inputguard/pkg/constants"
	"github.com/actionsmith/inputguard/pkg/logger"
)

var loaderLog = logger.New("rules:loader")

// ConfigError reports broken engine or action setup: a malformed rule
// document, an unknown convention tag, a bad custom validator
// registration. It is distinct from a validation failure, which means the
// caller supplied bad input data.
type ConfigError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Path, e.Reason)
	}
	return "configuration error: " + e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Err }

// IsConfigError reports whether err is (or wraps) a configuration error.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// Loader reads per-action rule documents from one directory.
type Loader struct {
	dir string
}

// NewLoader creates a loader rooted at dir, falling back to the default
// rules directory when dir is empty.
func NewLoader(dir string) *Loader {
	if dir == "" {
		dir = constants.GetRulesDir()
	}
	return &Loader{dir: dir}
}

// Dir returns the directory the loader reads from.
func (l *Loader) Dir() string { return l.dir }

// RulePath returns where the rule document for action lives.
func (l *Loader) RulePath(action constants.ActionType) string {
	return filepath.Join(l.dir, action.String()+".yml")
}

// Load reads the rule document for action. A missing document is not an
// error: the action falls back to pure convention matching through
// DefaultRule. A document that exists but cannot be parsed, or that names
// a different action, is a ConfigError.
func (l *Loader) Load(action constants.ActionType) (*Rule, error) {
	path := l.RulePath(action)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		loaderLog.Printf("No rule document for action %q, using defaults", action)
		return DefaultRule(action.String()), nil
	}
	if err != nil {
		return nil, &ConfigError{Path: path, Reason: "reading rule document", Err: err}
	}

	rule, err := ParseRule(path, data)
	if err != nil {
		return nil, err
	}
	if rule.Action != "" && rule.Action != action.String() {
		return nil, &ConfigError{
			Path:   path,
			Reason: fmt.Sprintf("document is for action %q, not %q", rule.Action, action),
		}
	}
	loaderLog.Printf("Loaded rule for %q: required=%d, optional=%d, overrides=%d",
		action, len(rule.RequiredInputs), len(rule.OptionalInputs), len(rule.Conventions))
	return rule, nil
}

// LoadAll reads every rule document in the directory in lexical order.
// A missing directory yields no rules and no error.
func (l *Loader) LoadAll() ([]*Rule, error) {
	entries, err := os.ReadDir(l.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &ConfigError{Path: l.dir, Reason: "reading rules directory", Err: err}
	}

	var loaded []*Rule
	for _, entry := range entries {
		if entry.IsDir() || !isRuleFile(entry.Name()) {
			continue
		}
		path := filepath.Join(l.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &ConfigError{Path: path, Reason: "reading rule document", Err: err}
		}
		rule, err := ParseRule(path, data)
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, rule)
	}
	return loaded, nil
}

// ParseRule decodes one rule document and verifies its semantic
// invariants: a supported schema version, known convention tags, valid
// policy values, disjoint required/optional sets, and complete
// constraints.
func ParseRule(path string, data []byte) (*Rule, error) {
	var rule Rule
	if err := yaml.UnmarshalWithOptions(data, &rule, yaml.Strict()); err != nil {
		return nil, &ConfigError{
			Path:   path,
			Reason: "malformed rule document:\n" + yaml.FormatError(err, false, true),
			Err:    err,
		}
	}

	if rule.SchemaVersion != constants.RuleSchemaVersion {
		return nil, &ConfigError{
			Path:   path,
			Reason: fmt.Sprintf("unsupported schema_version %d (this engine reads version %d)", rule.SchemaVersion, constants.RuleSchemaVersion),
		}
	}

	for _, field := range sortedKeys(rule.Conventions) {
		if tag := rule.Conventions[field]; !tag.IsValid() {
			return nil, &ConfigError{
				Path:   path,
				Reason: fmt.Sprintf("conventions.%s: unknown validator tag %q", field, tag),
			}
		}
	}

	for _, field := range sortedKeys(rule.Policies) {
		policy := rule.Policies[field]
		if policy.Path != "" && !policy.Path.IsValid() {
			return nil, &ConfigError{
				Path:   path,
				Reason: fmt.Sprintf("policies.%s: unknown path policy %q", field, policy.Path),
			}
		}
		if policy.BooleanCase != "" && !policy.BooleanCase.IsValid() {
			return nil, &ConfigError{
				Path:   path,
				Reason: fmt.Sprintf("policies.%s: unknown case policy %q", field, policy.BooleanCase),
			}
		}
		if policy.VersionPrefix != "" && !policy.VersionPrefix.IsValid() {
			return nil, &ConfigError{
				Path:   path,
				Reason: fmt.Sprintf("policies.%s: unknown version prefix policy %q", field, policy.VersionPrefix),
			}
		}
	}

	for _, name := range rule.RequiredInputs {
		if slices.Contains(rule.OptionalInputs, name) {
			return nil, &ConfigError{
				Path:   path,
				Reason: fmt.Sprintf("input %q is listed as both required and optional", name),
			}
		}
	}

	for i, constraint := range rule.Constraints {
		if strings.TrimSpace(constraint.Expr) == "" {
			return nil, &ConfigError{Path: path, Reason: fmt.Sprintf("constraints[%d]: empty expr", i)}
		}
		if strings.TrimSpace(constraint.Message) == "" {
			return nil, &ConfigError{Path: path, Reason: fmt.Sprintf("constraints[%d]: empty message", i)}
		}
	}

	return &rule, nil
}

func isRuleFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yml" || ext == ".yaml"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
