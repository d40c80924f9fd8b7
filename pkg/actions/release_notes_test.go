//go:build !integration

package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actionsmith/inputguard/pkg/rules"
	"github.com/actionsmith/inputguard/pkg/validation"
)

func newReleaseNotes(t *testing.T) validation.Validator {
	t.Helper()
	v, err := NewReleaseNotesValidator("release-notes", rules.NewLoader(t.TempDir()))
	require.NoError(t, err)
	return v
}

func TestReleaseNotes_ValidInputsPass(t *testing.T) {
	v := newReleaseNotes(t)

	errs := v.ValidateInputs(validation.InputSet{
		"version":    "1.4.0",
		"notes-file": "docs/releases/1.4.0.md",
	})

	assert.Empty(t, errs)
}

func TestReleaseNotes_BothRequirementsListed(t *testing.T) {
	v := newReleaseNotes(t)

	errs := v.ValidateInputs(validation.InputSet{})

	require.Len(t, errs, 2)
	assert.Equal(t, "version", errs[0].Field)
	assert.Equal(t, "notes-file", errs[1].Field)
}

func TestReleaseNotes_VersionMustBeSemantic(t *testing.T) {
	tests := []struct {
		version string
		ok      bool
	}{
		{"1.4.0", true},
		{"1.4.0-rc.1", true},
		{"v1.4.0", true},
		{"2024.1.15", false},
		{"1.4", false},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			v := newReleaseNotes(t)
			errs := v.ValidateInputs(validation.InputSet{
				"version":    tt.version,
				"notes-file": "CHANGELOG.md",
			})
			if tt.ok {
				assert.Empty(t, errs)
			} else {
				require.Len(t, errs, 1)
				assert.Equal(t, "version", errs[0].Field)
			}
		})
	}
}

func TestReleaseNotes_NotesFileExtensions(t *testing.T) {
	tests := []struct {
		path string
		ok   bool
	}{
		{"CHANGELOG.md", true},
		{"notes/1.4.txt", true},
		{"docs/release.rst", true},
		{"notes.pdf", false},
		{"../CHANGELOG.md", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			v := newReleaseNotes(t)
			errs := v.ValidateInputs(validation.InputSet{
				"version":    "1.4.0",
				"notes-file": tt.path,
			})
			if tt.ok {
				assert.Empty(t, errs)
			} else {
				require.Len(t, errs, 1)
				assert.Equal(t, "notes-file", errs[0].Field)
			}
		})
	}
}

func TestReleaseNotes_UndeclaredFieldsGetScanned(t *testing.T) {
	v := newReleaseNotes(t)

	errs := v.ValidateInputs(validation.InputSet{
		"version":    "1.4.0",
		"notes-file": "CHANGELOG.md",
		"highlights": "see ../../etc/passwd",
	})

	require.Len(t, errs, 1)
	assert.Equal(t, "highlights", errs[0].Field)
	assert.Contains(t, errs[0].Message, "path traversal")
}
