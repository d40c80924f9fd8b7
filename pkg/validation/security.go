package validation

import (
	"fmt"
	"math"
	"strings"
)

// injectionCategory groups markers under the label audit logs show.
type injectionCategory struct {
	label    string
	markers  []string
	foldCase bool
}

func (c injectionCategory) match(value string) (string, bool) {
	haystack := value
	if c.foldCase {
		haystack = strings.ToLower(value)
	}
	for _, marker := range c.markers {
		if strings.Contains(haystack, marker) {
			return marker, true
		}
	}
	return "", false
}

var injectionCategories = []injectionCategory{
	// No bare pipe here: this scan covers free-form fields where glob
	// alternation is legitimate. Fields with stricter grammars reject
	// pipes through their own validators.
	{label: "command injection", markers: []string{";", "&&", "||", "`", "$("}},
	{label: "SQL injection", markers: []string{"union select", "drop table", "insert into", "delete from", "' or '"}, foldCase: true},
	{label: "path traversal", markers: []string{"../", `..\`}},
	{label: "script injection", markers: []string{"<script", "javascript:", "onerror="}, foldCase: true},
}

const (
	// secretLengthFloor is the shortest value the credential heuristic
	// looks at.
	secretLengthFloor = 20
	// secretEntropyFloor is Shannon entropy in bits per character. A
	// 20-character string tops out near 4.32, so the floor sits just
	// under the random-credential region while prose stays well below.
	secretEntropyFloor = 4.0
)

// SecurityValidator is the cross-cutting scan for fields no grammar
// claims: injection markers fail the run, and credential-shaped values
// draw a warning without failing it.
type SecurityValidator struct {
	*BaseValidator
}

func NewSecurityValidator(base *BaseValidator) *SecurityValidator {
	return &SecurityValidator{BaseValidator: base}
}

// ValidateValue scans one free-form value. Each detected category adds
// one error naming itself; a clean value may still draw a
// secret-shaped warning.
func (v *SecurityValidator) ValidateValue(value, field string) bool {
	if IsGitHubExpression(value) {
		return true
	}
	ok := true
	for _, category := range injectionCategories {
		if marker, found := category.match(value); found {
			v.AddError(NewValidationError(field, value,
				fmt.Sprintf("%s pattern detected (%q)", category.label, marker), ""))
			ok = false
		}
	}
	if ok && looksLikeSecret(value) {
		v.AddWarning(NewValidationError(field, "",
			"value looks like a credential",
			"pass secrets through the secrets context instead of plain inputs"))
	}
	return ok
}

// looksLikeSecret reports whether value resembles a random credential:
// long, spaceless, and high-entropy.
func looksLikeSecret(value string) bool {
	if len(value) < secretLengthFloor || strings.ContainsAny(value, " \t\r\n") {
		return false
	}
	return shannonEntropy(value) >= secretEntropyFloor
}

func shannonEntropy(s string) float64 {
	if s == "" {
		return 0
	}
	freq := make(map[rune]int, len(s))
	total := 0
	for _, r := range s {
		freq[r]++
		total++
	}
	entropy := 0.0
	for _, count := range freq {
		p := float64(count) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}
