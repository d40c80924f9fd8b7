package rules

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/actionsmith/inputguard/pkg/logger"
)

var checkerLog = logger.New("rules:checker")

// Finding is a single authoring problem discovered in a rule file.
// Findings are reported in batch so a rule author sees every problem
// in one pass instead of fixing them one compile cycle at a time.
type Finding struct {
	Path    string
	Field   string
	Message string
}

func (f Finding) String() string {
	if f.Field == "" {
		return fmt.Sprintf("%s: %s", f.Path, f.Message)
	}
	return fmt.Sprintf("%s: %s: %s", f.Path, f.Field, f.Message)
}

// Checker verifies rule files beyond what the runtime loader enforces.
// The loader only rejects rules it cannot use at all; the checker also
// flags omissions that would otherwise fall back to defaults, so that
// policy decisions are always written down in the rule file.
type Checker struct {
	loader *Loader
}

func NewChecker(dir string) *Checker {
	return &Checker{loader: NewLoader(dir)}
}

// CheckFile validates a single rule file and returns its findings.
// The returned error reports problems with the check itself (an
// unreadable file); rule problems are findings, not errors.
func (c *Checker) CheckFile(path string) ([]Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", err)
	}

	var findings []Finding
	if err := ValidateDocument(path, data); err != nil {
		findings = append(findings, Finding{Path: path, Message: err.Error()})
	}

	rule, err := ParseRule(path, data)
	if err != nil {
		// Without a parsed rule there is nothing further to inspect.
		findings = append(findings, Finding{Path: path, Message: err.Error()})
		return dedupeFindings(findings), nil
	}

	findings = append(findings, CheckRule(rule, path)...)
	return dedupeFindings(findings), nil
}

// CheckRule inspects a parsed rule for authoring omissions: inputs
// whose resolved tag requires an explicit policy but has none, stale
// convention or policy entries naming undeclared inputs, and
// constraints that do not compile.
func CheckRule(rule *Rule, path string) []Finding {
	var findings []Finding

	declared := make(map[string]bool)
	for _, name := range rule.DeclaredInputs() {
		declared[name] = true
	}

	for _, name := range rule.DeclaredInputs() {
		tag := effectiveTag(rule, name)
		policy := rule.PolicyFor(name)

		if tag.NeedsPathPolicy() && policy.Path == "" {
			findings = append(findings, Finding{
				Path:    path,
				Field:   name,
				Message: fmt.Sprintf("input resolves to %s and needs an explicit path policy (%s or %s)", tag, PathPolicyStrict, PathPolicyPermissive),
			})
		}
		if tag.NeedsBooleanCase() && policy.BooleanCase == "" {
			findings = append(findings, Finding{
				Path:    path,
				Field:   name,
				Message: fmt.Sprintf("input resolves to %s and needs an explicit case policy (%s or %s)", tag, BooleanCaseStrict, BooleanCaseInsensitive),
			})
		}
		if tag.NeedsVersionPrefix() && policy.VersionPrefix == "" {
			findings = append(findings, Finding{
				Path:    path,
				Field:   name,
				Message: fmt.Sprintf("input resolves to %s and needs an explicit version prefix policy (%s, %s, or %s)", tag, VersionPrefixAllow, VersionPrefixForbid, VersionPrefixRequire),
			})
		}
	}

	for _, name := range sortedKeys(rule.Conventions) {
		if !declared[name] {
			findings = append(findings, Finding{
				Path:    path,
				Field:   name,
				Message: "convention names an input that is not declared as required or optional",
			})
		}
	}
	for _, name := range sortedKeys(rule.Policies) {
		if !declared[name] {
			findings = append(findings, Finding{
				Path:    path,
				Field:   name,
				Message: "policy names an input that is not declared as required or optional",
			})
		}
	}

	for i, constraint := range rule.Constraints {
		if _, err := constraint.Compile(); err != nil {
			findings = append(findings, Finding{
				Path:    path,
				Field:   fmt.Sprintf("constraints[%d]", i),
				Message: err.Error(),
			})
		}
	}

	checkerLog.Printf("checked rule %s: %d finding(s)", rule.Action, len(findings))
	return findings
}

// CheckAll checks every rule file in the checker's directory. A missing
// directory means there is nothing to check.
func (c *Checker) CheckAll() ([]Finding, error) {
	entries, err := os.ReadDir(c.loader.Dir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read rules directory: %w", err)
	}

	var findings []Finding
	for _, entry := range entries {
		if entry.IsDir() || !isRuleFile(entry.Name()) {
			continue
		}
		fileFindings, err := c.CheckFile(filepath.Join(c.loader.Dir(), entry.Name()))
		if err != nil {
			return nil, err
		}
		findings = append(findings, fileFindings...)
	}
	return findings, nil
}

// effectiveTag resolves the tag the runtime would dispatch on for an
// input: an explicit convention override wins, then name matching, and
// anything unmatched gets the security scan fallback.
func effectiveTag(rule *Rule, name string) Tag {
	if tag, ok := rule.TagOverride(name); ok {
		return tag
	}
	if tag, ok := MatchTag(name); ok {
		return tag
	}
	return TagSecurityScan
}

func dedupeFindings(findings []Finding) []Finding {
	if len(findings) < 2 {
		return findings
	}
	seen := make(map[Finding]bool, len(findings))
	deduped := findings[:0]
	for _, f := range findings {
		if seen[f] {
			continue
		}
		seen[f] = true
		deduped = append(deduped, f)
	}
	return deduped
}
