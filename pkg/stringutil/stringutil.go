// Package stringutil provides small string helpers shared across packages.
package stringutil

import "strings"

// Truncate shortens s to at most maxLen characters, using "..." when the
// budget allows it.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// NormalizeWhitespace strips trailing whitespace from each line and
// collapses trailing newlines to exactly one. Empty input stays empty.
func NormalizeWhitespace(content string) string {
	if content == "" {
		return ""
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	normalized := strings.Join(lines, "\n")
	normalized = strings.TrimRight(normalized, "\n")
	if normalized == "" {
		return ""
	}
	return normalized + "\n"
}

// InputNameToEnvVar maps a kebab-case input name to its environment
// variable form: "max-retries" -> "INPUT_MAX_RETRIES".
func InputNameToEnvVar(name string) string {
	upper := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	return "INPUT_" + upper
}

// EnvVarToInputName maps an INPUT_ environment variable back to the
// kebab-case input name: "INPUT_MAX_RETRIES" -> "max-retries".
// Returns false when the variable does not carry the prefix.
func EnvVarToInputName(envVar string) (string, bool) {
	rest, ok := strings.CutPrefix(envVar, "INPUT_")
	if !ok || rest == "" {
		return "", false
	}
	return strings.ToLower(strings.ReplaceAll(rest, "_", "-")), true
}

// IsKebabCase reports whether a name is lowercase alphanumeric with
// single hyphens as internal separators, the form action inputs use.
func IsKebabCase(name string) bool {
	if name == "" {
		return false
	}
	prevHyphen := true // leading hyphen is invalid
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			prevHyphen = false
		case r == '-':
			if prevHyphen {
				return false
			}
			prevHyphen = true
		default:
			return false
		}
	}
	return !prevHyphen
}
