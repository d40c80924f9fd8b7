//go:build !integration

package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNetworkValidator(t *testing.T) *NetworkValidator {
	t.Helper()
	return NewNetworkValidator(NewBaseValidator("demo", nil))
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"https://example.com", true},
		{"http://example.com:8080/path?x=1", true},
		{"https://registry.example.com/v2/", true},
		{"ftp://example.com", false},
		{"example.com", false},
		{"https://", false},
		{"not a url", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v := newNetworkValidator(t)
			assert.Equal(t, tt.ok, v.ValidateURL(tt.value, "registry-url"))
		})
	}
}

func TestValidateURL_Messages(t *testing.T) {
	v := newNetworkValidator(t)

	v.ValidateURL("ftp://example.com", "registry-url")
	require.Len(t, v.Errors(), 1)
	assert.Equal(t, "not an http or https URL", v.Errors()[0].Message)

	v.ClearErrors()
	v.ValidateURL("https://", "registry-url")
	require.Len(t, v.Errors(), 1)
	assert.Equal(t, "URL has no host", v.Errors()[0].Message)
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"ci@example.com", true},
		{"first.last+tag@sub.example.co.uk", true},
		{"no-at-sign.example.com", false},
		{"two@@example.com", false},
		{"user@nodot", false},
		{"user@ example.com", false},
		{"@example.com", false},
		{"user@", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v := newNetworkValidator(t)
			assert.Equal(t, tt.ok, v.ValidateEmail(tt.value, "notify-email"))
		})
	}
}

func TestValidateHostname(t *testing.T) {
	longLabel := strings.Repeat("a", 63)
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"simple", "example.com", true},
		{"subdomain", "registry.example.com", true},
		{"single label", "localhost", true},
		{"interior hyphen", "my-registry.example.com", true},
		{"63-char label", longLabel + ".example.com", true},
		{"64-char label", longLabel + "a.example.com", false},
		{"leading hyphen", "-bad.example.com", false},
		{"trailing hyphen", "bad-.example.com", false},
		{"empty label", "double..dot.com", false},
		{"underscore", "my_host.example.com", false},
		{"too long overall", strings.Repeat(longLabel+".", 4) + "example.com", false},
		{"blank", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newNetworkValidator(t)
			assert.Equal(t, tt.ok, v.ValidateHostname(tt.value, "registry-host"))
		})
	}
}

func TestValidateIPAddress(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"192.168.1.10", true},
		{"10.0.0.1", true},
		{"::1", true},
		{"2001:db8::8a2e:370:7334", true},
		{"256.1.1.1", false},
		{"192.168.1", false},
		{"example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v := newNetworkValidator(t)
			assert.Equal(t, tt.ok, v.ValidateIPAddress(tt.value, "proxy-ip"))
		})
	}
}

func TestNetworkValidators_ExpressionPassthrough(t *testing.T) {
	v := newNetworkValidator(t)
	assert.True(t, v.ValidateURL("${{ inputs.registry-url }}", "registry-url"))
	assert.True(t, v.ValidateEmail("${{ inputs.email }}", "notify-email"))
	assert.True(t, v.ValidateHostname("${{ inputs.host }}", "registry-host"))
	assert.True(t, v.ValidateIPAddress("${{ inputs.ip }}", "proxy-ip"))
	assert.Empty(t, v.Errors())
}
