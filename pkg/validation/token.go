package validation

import (
	"regexp"
)

// tokenShape pairs a credential kind with the exact grammar its issuer
// documents. The engine never echoes token values back in errors.
type tokenShape struct {
	kind    string
	pattern *regexp.Regexp
}

var tokenShapes = []tokenShape{
	{"GitHub token", regexp.MustCompile(`^gh[pousr]_[A-Za-z0-9]{36}$`)},
	{"GitHub fine-grained token", regexp.MustCompile(`^github_pat_[A-Za-z0-9_]{82}$`)},
	{"GitHub classic token", regexp.MustCompile(`^[a-f0-9]{40}$`)},
	{"npm token", regexp.MustCompile(`^npm_[A-Za-z0-9]{36}$`)},
	{"Docker personal access token", regexp.MustCompile(`^dckr_pat_[A-Za-z0-9_-]{27}$`)},
	{"1Password service account token", regexp.MustCompile(`^ops_[A-Za-z0-9+/=._-]{20,}$`)},
}

// githubTokenShapes is the subset of shapes GitHub issues, for fields
// that must carry a GitHub credential specifically.
var githubTokenShapes = tokenShapes[:3]

// TokenValidator checks credential-shaped inputs against the grammars
// of the providers the actions talk to. Values are redacted in every
// error it records.
type TokenValidator struct {
	*BaseValidator
}

func NewTokenValidator(base *BaseValidator) *TokenValidator {
	return &TokenValidator{BaseValidator: base}
}

// ValidateToken accepts any recognized provider token.
func (v *TokenValidator) ValidateToken(value, field string) bool {
	return v.validateShapes(value, field, tokenShapes,
		"expected a GitHub (ghp_/gho_/ghu_/ghs_/ghr_/github_pat_), npm (npm_), Docker (dckr_pat_), or 1Password (ops_) token")
}

// ValidateGitHubToken accepts only GitHub-issued tokens.
func (v *TokenValidator) ValidateGitHubToken(value, field string) bool {
	return v.validateShapes(value, field, githubTokenShapes,
		"expected a ghp_/gho_/ghu_/ghs_/ghr_ token, a github_pat_ token, or a 40-character classic token")
}

func (v *TokenValidator) validateShapes(value, field string, shapes []tokenShape, hint string) bool {
	if IsGitHubExpression(value) {
		// Tokens normally arrive as ${{ secrets.X }}; a literal token
		// in a workflow file is the unusual case.
		return true
	}
	if containsShellMetacharacters(value, false) {
		v.AddError(NewValidationError(field, "",
			"token value contains shell metacharacters", "the value was redacted from this message"))
		return false
	}
	for _, shape := range shapes {
		if shape.pattern.MatchString(value) {
			return true
		}
	}
	v.AddError(NewValidationError(field, "",
		"does not match any recognized token format", hint))
	return false
}
