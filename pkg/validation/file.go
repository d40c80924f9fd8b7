package validation

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

var (
	// readmeExtensions allowlists documentation-like fields.
	readmeExtensions = []string{".md", ".txt", ".rst"}
	// configExtensions allowlists configuration file fields.
	configExtensions = []string{".yml", ".yaml", ".json", ".toml", ".ini"}
)

// FileValidator checks path-shaped inputs: traversal and absolute
// prefixes under the field's path policy, shell metacharacters, and
// per-field extension allowlists.
type FileValidator struct {
	*BaseValidator
}

func NewFileValidator(base *BaseValidator) *FileValidator {
	return &FileValidator{BaseValidator: base}
}

// ValidateFilePath checks a general file or directory path. Relative
// paths, nested directories, and dotfiles all pass.
func (v *FileValidator) ValidateFilePath(value, field string) bool {
	if IsGitHubExpression(value) {
		return true
	}
	if !v.ValidatePathSecurity(value, field) {
		return false
	}
	return v.ValidateSecurityPatterns(value, field, false)
}

// ValidateFilePathWithExtensions checks a path that must carry one of
// the given extensions (lowercase, dot included).
func (v *FileValidator) ValidateFilePathWithExtensions(value, field string, extensions []string) bool {
	if IsGitHubExpression(value) {
		return true
	}
	if !v.ValidateFilePath(value, field) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(value))
	if slices.Contains(extensions, ext) {
		return true
	}
	v.AddError(NewValidationError(field, value,
		fmt.Sprintf("must end in %s", strings.Join(extensions, ", ")), ""))
	return false
}

// ValidateReadmePath checks a documentation file path.
func (v *FileValidator) ValidateReadmePath(value, field string) bool {
	return v.ValidateFilePathWithExtensions(value, field, readmeExtensions)
}

// ValidateConfigPath checks a configuration file path.
func (v *FileValidator) ValidateConfigPath(value, field string) bool {
	return v.ValidateFilePathWithExtensions(value, field, configExtensions)
}
