package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/actionsmith/inputguard/pkg/rules"
)

var (
	semanticVersionPattern = regexp.MustCompile(`^(0|[1-9][0-9]*)\.(0|[1-9][0-9]*)\.(0|[1-9][0-9]*)(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?$`)
	calendarVersionPattern = regexp.MustCompile(`^20[2-9][0-9]\.(0?[1-9]|1[0-2])\.(0?[1-9]|[12][0-9]|3[01])$`)
	goVersionPattern       = regexp.MustCompile(`^[0-9]+\.[0-9]+(\.[0-9]+)?$`)
	phpVersionPattern      = regexp.MustCompile(`^[0-9]+(\.[0-9]+){0,2}$`)
)

// goVersionWindow bounds the Go releases the engine accepts, both ends
// inclusive at the minor level so patch releases of the newest line
// still pass. The window moves with the toolchains the actions install.
var goVersionWindow = struct {
	major    int
	minMinor int
	maxMinor int
}{1, 18, 30}

// phpSupportedMajors lists the PHP release lines still in service.
var phpSupportedMajors = []int{7, 8}

// VersionValidator checks version-shaped inputs: strict semantic
// versions, calendar versions, the flexible union of both, and the
// per-tool windows for Go and PHP.
type VersionValidator struct {
	*BaseValidator
}

func NewVersionValidator(base *BaseValidator) *VersionValidator {
	return &VersionValidator{BaseValidator: base}
}

// consumeVersionPrefix applies the field's version prefix policy and
// returns the value with any leading v removed. The second result is
// false when the policy already failed the value.
func (v *VersionValidator) consumeVersionPrefix(value, field string) (string, bool) {
	policy := v.Rule().VersionPrefixFor(field)
	trimmed := strings.TrimPrefix(value, "v")
	hasPrefix := trimmed != value
	switch {
	case policy == rules.VersionPrefixForbid && hasPrefix:
		v.AddError(NewValidationError(field, value,
			`leading "v" is not accepted here`, "drop the v prefix"))
		return "", false
	case policy == rules.VersionPrefixRequire && !hasPrefix:
		v.AddError(NewValidationError(field, value,
			`must start with "v"`, "add the v prefix"))
		return "", false
	}
	return trimmed, true
}

// isSemanticVersion reports whether rest is a full MAJOR.MINOR.PATCH
// version. The pattern enforces the three-part core that semver.IsValid
// alone would not (it fills in missing segments); semver.IsValid then
// enforces the prerelease and build grammar the pattern is loose about,
// such as empty dotted identifiers and leading zeros.
func isSemanticVersion(rest string) bool {
	return semanticVersionPattern.MatchString(rest) && semver.IsValid("v"+rest)
}

// ValidateSemanticVersion checks a full MAJOR.MINOR.PATCH version with
// optional -prerelease and +build suffixes.
func (v *VersionValidator) ValidateSemanticVersion(value, field string) bool {
	if IsGitHubExpression(value) {
		return true
	}
	rest, ok := v.consumeVersionPrefix(value, field)
	if !ok {
		return false
	}
	if isSemanticVersion(rest) {
		return true
	}
	v.AddError(NewValidationError(field, value,
		"not a semantic version",
		"use MAJOR.MINOR.PATCH with optional -prerelease and +build suffixes"))
	return false
}

// ValidateCalendarVersion checks a YYYY.M.D or YYYY.MM.DD version with
// the year in 2020-2099.
func (v *VersionValidator) ValidateCalendarVersion(value, field string) bool {
	if IsGitHubExpression(value) {
		return true
	}
	rest, ok := v.consumeVersionPrefix(value, field)
	if !ok {
		return false
	}
	if calendarVersionPattern.MatchString(rest) {
		return true
	}
	v.AddError(NewValidationError(field, value,
		"not a calendar version",
		"use YYYY.M.D or YYYY.MM.DD with the year in 2020-2099"))
	return false
}

// ValidateFlexibleVersion accepts either the semantic or the calendar
// grammar.
func (v *VersionValidator) ValidateFlexibleVersion(value, field string) bool {
	if IsGitHubExpression(value) {
		return true
	}
	rest, ok := v.consumeVersionPrefix(value, field)
	if !ok {
		return false
	}
	if isSemanticVersion(rest) || calendarVersionPattern.MatchString(rest) {
		return true
	}
	v.AddError(NewValidationError(field, value,
		"not a recognized version",
		"use MAJOR.MINOR.PATCH or YYYY.M.D"))
	return false
}

// ValidateGoVersion checks a Go release inside the supported window.
// Go versions omit the patch segment more often than not, so the
// grammar is MAJOR.MINOR with an optional .PATCH.
func (v *VersionValidator) ValidateGoVersion(value, field string) bool {
	if IsGitHubExpression(value) {
		return true
	}
	rest, ok := v.consumeVersionPrefix(value, field)
	if !ok {
		return false
	}
	if !goVersionPattern.MatchString(rest) {
		v.AddError(NewValidationError(field, value,
			"not a Go version",
			"use MAJOR.MINOR, for example 1.22"))
		return false
	}
	low := fmt.Sprintf("v%d.%d", goVersionWindow.major, goVersionWindow.minMinor)
	highExclusive := fmt.Sprintf("v%d.%d", goVersionWindow.major, goVersionWindow.maxMinor+1)
	canonical := "v" + rest
	if !semver.IsValid(canonical) ||
		semver.Compare(canonical, low) < 0 ||
		semver.Compare(canonical, highExclusive) >= 0 {
		v.AddError(NewValidationError(field, value,
			fmt.Sprintf("unsupported Go version, expected %d.%d through %d.%d",
				goVersionWindow.major, goVersionWindow.minMinor,
				goVersionWindow.major, goVersionWindow.maxMinor),
			"pick a Go release the runner images still ship"))
		return false
	}
	return true
}

// ValidatePHPVersion checks a PHP release on a supported major line.
func (v *VersionValidator) ValidatePHPVersion(value, field string) bool {
	if IsGitHubExpression(value) {
		return true
	}
	rest, ok := v.consumeVersionPrefix(value, field)
	if !ok {
		return false
	}
	if !phpVersionPattern.MatchString(rest) {
		v.AddError(NewValidationError(field, value,
			"not a PHP version",
			"use MAJOR or MAJOR.MINOR, for example 8.3"))
		return false
	}
	majorText, _, _ := strings.Cut(rest, ".")
	major, err := strconv.Atoi(majorText)
	if err != nil || !supportedPHPMajor(major) {
		v.AddError(NewValidationError(field, value,
			"unsupported PHP major version",
			"only PHP 7 and 8 are supported"))
		return false
	}
	return true
}

func supportedPHPMajor(major int) bool {
	for _, m := range phpSupportedMajors {
		if m == major {
			return true
		}
	}
	return false
}
