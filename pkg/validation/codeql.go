package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// codeqlLanguages is the canonical lowercase set of supported analysis
// languages. Matching is case-insensitive against this set.
var codeqlLanguages = map[string]bool{
	"actions":    true,
	"cpp":        true,
	"csharp":     true,
	"go":         true,
	"java":       true,
	"javascript": true,
	"python":     true,
	"ruby":       true,
	"swift":      true,
}

// codeqlLanguageAliases maps accepted spellings onto the analysis
// language that actually runs them.
var codeqlLanguageAliases = map[string]string{
	"c":          "cpp",
	"typescript": "javascript",
	"kotlin":     "java",
}

// codeqlQuerySuites names the published suite identifiers.
var codeqlQuerySuites = map[string]bool{
	"default":               true,
	"code-scanning":         true,
	"security-extended":     true,
	"security-and-quality":  true,
	"security-experimental": true,
}

// codeqlCategoryPattern: a leading slash, then the category charset.
var codeqlCategoryPattern = regexp.MustCompile(`^/[A-Za-z0-9_:/-]*$`)

// CodeQLValidator checks static-analysis configuration inputs:
// language lists, query suites or query file paths, and SARIF
// categories.
type CodeQLValidator struct {
	*BaseValidator
}

func NewCodeQLValidator(base *BaseValidator) *CodeQLValidator {
	return &CodeQLValidator{BaseValidator: base}
}

// ValidateLanguages checks a comma-separated list of analysis
// languages.
func (v *CodeQLValidator) ValidateLanguages(value, field string) bool {
	if IsGitHubExpression(value) {
		return true
	}
	ok := true
	for _, segment := range strings.Split(value, ",") {
		language := strings.ToLower(strings.TrimSpace(segment))
		if language == "" {
			v.AddError(NewValidationError(field, value,
				"language list has an empty entry", "remove stray commas"))
			ok = false
			continue
		}
		if canonical, aliased := codeqlLanguageAliases[language]; aliased {
			language = canonical
		}
		if !codeqlLanguages[language] {
			v.AddError(NewValidationError(field, segment,
				"unsupported analysis language",
				fmt.Sprintf("supported languages: %s", joinSorted(codeqlLanguages))))
			ok = false
		}
	}
	return ok
}

// ValidateQuerySuite accepts a published suite name or a path to a
// custom .ql query or .qls suite.
func (v *CodeQLValidator) ValidateQuerySuite(value, field string) bool {
	if IsGitHubExpression(value) {
		return true
	}
	if codeqlQuerySuites[value] {
		return true
	}
	if strings.HasSuffix(value, ".ql") || strings.HasSuffix(value, ".qls") {
		if !v.ValidatePathSecurity(value, field) {
			return false
		}
		return v.ValidateSecurityPatterns(value, field, false)
	}
	v.AddError(NewValidationError(field, value,
		"not a known query suite or query file",
		fmt.Sprintf("use one of %s, or a path ending in .ql or .qls", joinSorted(codeqlQuerySuites))))
	return false
}

// ValidateCategory checks a SARIF category: a leading slash followed
// by letters, digits, and _:/- only.
func (v *CodeQLValidator) ValidateCategory(value, field string) bool {
	if IsGitHubExpression(value) {
		return true
	}
	if codeqlCategoryPattern.MatchString(value) {
		return true
	}
	v.AddError(NewValidationError(field, value,
		"not a valid analysis category",
		"start with / and use only letters, digits, and _:/-"))
	return false
}

func joinSorted(set map[string]bool) string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
