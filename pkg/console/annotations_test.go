//go:build !integration

package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatErrorAnnotation(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{
			name:     "plain message",
			message:  "tag: invalid format (expected semantic version)",
			expected: "::error::tag: invalid format (expected semantic version)",
		},
		{
			name:     "newlines escaped",
			message:  "image-name: invalid\nsecond line",
			expected: "::error::image-name: invalid%0Asecond line",
		},
		{
			name:     "carriage returns escaped",
			message:  "a\r\nb",
			expected: "::error::a%0D%0Ab",
		},
		{
			name:     "percent escaped first",
			message:  "value is 100%",
			expected: "::error::value is 100%25",
		},
		{
			name:     "empty message",
			message:  "",
			expected: "::error::",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatErrorAnnotation(tt.message))
		})
	}
}

func TestFormatWarningAndNoticeAnnotations(t *testing.T) {
	assert.Equal(t, "::warning::token: value has high entropy", FormatWarningAnnotation("token: value has high entropy"))
	assert.Equal(t, "::notice::3 rules applied", FormatNoticeAnnotation("3 rules applied"))
}
