package rules

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/actionsmith/inputguard/pkg/constants"
	"github.com/actionsmith/inputguard/pkg/fileutil"
	"github.com/actionsmith/inputguard/pkg/logger"
)

var generatorLog = logger.New("rules:generator")

// flexBool decodes the boolean-or-quoted-boolean values action.yml
// authors use for the required flag.
type flexBool bool

func (b *flexBool) UnmarshalYAML(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"'`)
	if s == "" {
		*b = false
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid boolean %q", s)
	}
	*b = flexBool(v)
	return nil
}

// ActionInput is one entry under inputs: in an action.yml document.
type ActionInput struct {
	Description string   `yaml:"description"`
	Required    flexBool `yaml:"required"`
	Default     any      `yaml:"default"`
}

// ActionMetadata is the slice of an action.yml document the generator
// reads. Other keys (runs, outputs, branding) are ignored.
type ActionMetadata struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description"`
	Inputs      map[string]ActionInput `yaml:"inputs"`
}

// FindActionFile returns the action definition file under dir, preferring
// action.yml over action.yaml.
func FindActionFile(dir string) (string, error) {
	for _, name := range []string{"action.yml", "action.yaml"} {
		path := filepath.Join(dir, name)
		if fileutil.FileExists(path) {
			return path, nil
		}
	}
	return "", &ConfigError{Path: dir, Reason: "no action.yml or action.yaml found"}
}

// LoadActionMetadata reads and decodes an action definition.
func LoadActionMetadata(path string) (*ActionMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Reason: "reading action definition", Err: err}
	}
	var meta ActionMetadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, &ConfigError{
			Path:   path,
			Reason: "malformed action definition:\n" + yaml.FormatError(err, false, true),
			Err:    err,
		}
	}
	return &meta, nil
}

// ListActions returns the names of subdirectories of actionsDir that
// contain an action definition, in lexical order.
func ListActions(actionsDir string) ([]string, error) {
	entries, err := os.ReadDir(actionsDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &ConfigError{Path: actionsDir, Reason: "reading actions directory", Err: err}
	}

	var actions []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := FindActionFile(filepath.Join(actionsDir, entry.Name())); err == nil {
			actions = append(actions, entry.Name())
		}
	}
	return actions, nil
}

// Generate derives a rule document from an action's declared inputs.
// Input names are normalized to kebab-case to match how the Actions
// runner surfaces them through the environment. Convention tags are
// resolved from names first; for names no table matches, the input's
// description and default provide a best-effort guess recorded as an
// explicit override. Every policy-sensitive field gets an explicit
// default policy so the document passes the authoring-time check.
func Generate(meta *ActionMetadata, action constants.ActionType) *Rule {
	rule := &Rule{
		SchemaVersion: constants.RuleSchemaVersion,
		Action:        action.String(),
		Description:   strings.TrimSpace(meta.Description),
	}

	normalized := make(map[string]ActionInput, len(meta.Inputs))
	for name, input := range meta.Inputs {
		normalized[normalizeInputName(name)] = input
	}

	for _, name := range sortedKeys(normalized) {
		input := normalized[name]
		if input.Required {
			rule.RequiredInputs = append(rule.RequiredInputs, name)
		} else {
			rule.OptionalInputs = append(rule.OptionalInputs, name)
		}

		tag, matched := MatchTag(name)
		if !matched {
			if guessed, ok := guessTag(input); ok {
				tag, matched = guessed, true
				if rule.Conventions == nil {
					rule.Conventions = make(map[string]Tag)
				}
				rule.Conventions[name] = tag
			}
		}
		if !matched {
			continue
		}

		if policy := DefaultPolicyFor(tag); !policy.IsZero() {
			if rule.Policies == nil {
				rule.Policies = make(map[string]FieldPolicy)
			}
			rule.Policies[name] = policy
		}
	}

	generatorLog.Printf("Generated rule for %q: required=%d, optional=%d, overrides=%d",
		action, len(rule.RequiredInputs), len(rule.OptionalInputs), len(rule.Conventions))
	return rule
}

// GenerateFromDir derives the rule document for one action directory.
func GenerateFromDir(actionsDir string, action constants.ActionType) (*Rule, error) {
	path, err := FindActionFile(filepath.Join(actionsDir, action.String()))
	if err != nil {
		return nil, err
	}
	meta, err := LoadActionMetadata(path)
	if err != nil {
		return nil, err
	}
	return Generate(meta, action), nil
}

// MarshalRule encodes a rule document exactly as WriteRule persists it,
// header comment included, so freshness checks can compare bytes.
func MarshalRule(rule *Rule) ([]byte, error) {
	doc := *rule
	if doc.RequiredInputs == nil {
		// required_inputs must serialize as a list, not null.
		doc.RequiredInputs = []string{}
	}
	data, err := yaml.MarshalWithOptions(&doc, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return nil, &ConfigError{Reason: "encoding rule document", Err: err}
	}

	header := fmt.Sprintf("# Validation rules for the %s action.\n# Generated by %s rules generate; edit by hand and re-run %s rules check.\n",
		rule.Action, constants.CLIPrefix, constants.CLIPrefix)
	return append([]byte(header), data...), nil
}

// WriteRule persists a rule document, creating the directory if needed.
func WriteRule(rule *Rule, path string) error {
	data, err := MarshalRule(rule)
	if err != nil {
		return &ConfigError{Path: path, Reason: "encoding rule document", Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &ConfigError{Path: path, Reason: "creating rules directory", Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &ConfigError{Path: path, Reason: "writing rule document", Err: err}
	}
	generatorLog.Printf("Wrote rule document: %s", path)
	return nil
}

// normalizeInputName converts an input name to the kebab-case form the
// runner's INPUT_ environment mapping produces.
func normalizeInputName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "-")
}

// guessTag infers a validator tag from an input's description and default
// when its name follows no convention.
func guessTag(input ActionInput) (Tag, bool) {
	if _, ok := input.Default.(bool); ok {
		return TagBoolean, true
	}
	if def, ok := input.Default.(string); ok {
		if def == "true" || def == "false" {
			return TagBoolean, true
		}
	}

	desc := strings.ToLower(input.Description)
	switch {
	case desc == "":
		return "", false
	case strings.Contains(desc, "true or false"), strings.Contains(desc, "boolean"):
		return TagBoolean, true
	case strings.Contains(desc, "semantic version"):
		return TagSemanticVersion, true
	case strings.Contains(desc, "version"):
		return TagFlexibleVersion, true
	case strings.Contains(desc, "docker image"):
		return TagDockerImage, true
	case strings.Contains(desc, "email"):
		return TagEmail, true
	case strings.Contains(desc, "url"), strings.Contains(desc, "endpoint"):
		return TagURL, true
	case strings.Contains(desc, "token"), strings.Contains(desc, "secret"):
		return TagToken, true
	case strings.Contains(desc, "path"), strings.Contains(desc, "file"), strings.Contains(desc, "directory"):
		return TagFilePath, true
	case strings.Contains(desc, "port"):
		return NumericRangeTag(1, 65535), true
	}
	return "", false
}

// DefaultPolicyFor returns the policy the generator writes for a
// policy-sensitive tag: the strict defaults, stated explicitly.
func DefaultPolicyFor(tag Tag) FieldPolicy {
	var policy FieldPolicy
	if tag.NeedsPathPolicy() {
		policy.Path = PathPolicyStrict
	}
	if tag.NeedsBooleanCase() {
		policy.BooleanCase = BooleanCaseStrict
	}
	if tag.NeedsVersionPrefix() {
		policy.VersionPrefix = VersionPrefixAllow
	}
	return policy
}
