package validation

import (
	"net/netip"
	"net/url"
	"regexp"
	"strings"
)

var (
	// emailPattern is deliberately loose: one @, non-blank local and
	// domain parts, at least one dot in the domain. Full RFC 5322
	// parsing buys nothing for CI inputs.
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	// hostnameLabelPattern is one RFC 1123 DNS label.
	hostnameLabelPattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?$`)
)

const maxHostnameLength = 253

// NetworkValidator checks URL, email, hostname, and IP address inputs.
type NetworkValidator struct {
	*BaseValidator
}

func NewNetworkValidator(base *BaseValidator) *NetworkValidator {
	return &NetworkValidator{BaseValidator: base}
}

// ValidateURL checks an http or https URL with a host.
func (v *NetworkValidator) ValidateURL(value, field string) bool {
	if IsGitHubExpression(value) {
		return true
	}
	parsed, err := url.Parse(value)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		v.AddError(NewValidationError(field, value,
			"not an http or https URL", "include the scheme, for example https://example.com"))
		return false
	}
	if parsed.Host == "" {
		v.AddError(NewValidationError(field, value, "URL has no host", ""))
		return false
	}
	return true
}

// ValidateEmail checks a local@domain address with a dotted domain.
func (v *NetworkValidator) ValidateEmail(value, field string) bool {
	if IsGitHubExpression(value) {
		return true
	}
	if emailPattern.MatchString(value) {
		return true
	}
	v.AddError(NewValidationError(field, value,
		"not an email address", "use local@domain with a dot in the domain"))
	return false
}

// ValidateHostname checks an RFC 1123 hostname: dot-separated labels
// of letters, digits, and interior hyphens, 253 characters at most.
func (v *NetworkValidator) ValidateHostname(value, field string) bool {
	if IsGitHubExpression(value) {
		return true
	}
	if isHostname(value) {
		return true
	}
	v.AddError(NewValidationError(field, value,
		"not a valid hostname",
		"use dot-separated labels of letters, digits, and interior hyphens"))
	return false
}

// ValidateIPAddress checks an IPv4 or IPv6 address.
func (v *NetworkValidator) ValidateIPAddress(value, field string) bool {
	if IsGitHubExpression(value) {
		return true
	}
	if _, err := netip.ParseAddr(value); err != nil {
		v.AddError(NewValidationError(field, value,
			"not an IPv4 or IPv6 address", ""))
		return false
	}
	return true
}

func isHostname(value string) bool {
	if value == "" || len(value) > maxHostnameLength {
		return false
	}
	for _, label := range strings.Split(value, ".") {
		if !hostnameLabelPattern.MatchString(label) {
			return false
		}
	}
	return true
}
