package rules

import (
	"fmt"
	"strconv"
	"strings"
)

// Tag selects which validator grammar applies to a field. Tags appear in
// rule files under conventions: and are resolved from input names through
// the pattern tables below when no explicit entry exists.
type Tag string

const (
	TagBoolean Tag = "boolean"

	TagSemanticVersion Tag = "semantic_version"
	TagCalendarVersion Tag = "calendar_version"
	TagFlexibleVersion Tag = "flexible_version"
	TagGoVersion       Tag = "go_version"
	TagPHPVersion      Tag = "php_version"

	TagGitHubToken Tag = "github_token"
	TagToken       Tag = "token"

	TagFilePath   Tag = "file_path"
	TagReadmePath Tag = "readme_path"
	TagConfigPath Tag = "config_path"

	TagURL       Tag = "url"
	TagEmail     Tag = "email"
	TagHostname  Tag = "hostname"
	TagIPAddress Tag = "ip_address"

	TagDockerImage    Tag = "docker_image"
	TagDockerTag      Tag = "docker_tag"
	TagDockerPlatform Tag = "docker_platform"

	TagCodeQLLanguage   Tag = "codeql_language"
	TagCodeQLQuerySuite Tag = "codeql_query_suite"
	TagCodeQLCategory   Tag = "codeql_category"

	// TagSecurityScan is the fallback for fields no table matches: the
	// generic injection-pattern scan, never silent acceptance.
	TagSecurityScan Tag = "security_scan"
)

// numericRangePrefix starts parametric tags of the form
// numeric_range_<min>_<max>, e.g. numeric_range_1_10.
const numericRangePrefix = "numeric_range_"

func (t Tag) String() string { return string(t) }

// IsValid reports whether the tag names a known validator grammar,
// including well-formed parametric numeric ranges.
func (t Tag) IsValid() bool {
	switch t {
	case TagBoolean,
		TagSemanticVersion, TagCalendarVersion, TagFlexibleVersion, TagGoVersion, TagPHPVersion,
		TagGitHubToken, TagToken,
		TagFilePath, TagReadmePath, TagConfigPath,
		TagURL, TagEmail, TagHostname, TagIPAddress,
		TagDockerImage, TagDockerTag, TagDockerPlatform,
		TagCodeQLLanguage, TagCodeQLQuerySuite, TagCodeQLCategory,
		TagSecurityScan:
		return true
	}
	_, _, ok := t.NumericRange()
	return ok
}

// NeedsPathPolicy reports whether fields with this tag must state an
// explicit path policy in their rule document.
func (t Tag) NeedsPathPolicy() bool {
	return t == TagFilePath || t == TagReadmePath || t == TagConfigPath
}

// NeedsBooleanCase reports whether fields with this tag must state an
// explicit boolean case policy.
func (t Tag) NeedsBooleanCase() bool {
	return t == TagBoolean
}

// NeedsVersionPrefix reports whether fields with this tag must state an
// explicit leading-v policy.
func (t Tag) NeedsVersionPrefix() bool {
	switch t {
	case TagSemanticVersion, TagCalendarVersion, TagFlexibleVersion, TagGoVersion, TagPHPVersion:
		return true
	}
	return false
}

// NumericRangeTag builds the parametric tag for an inclusive [min,max]
// integer range.
func NumericRangeTag(min, max int) Tag {
	return Tag(fmt.Sprintf("%s%d_%d", numericRangePrefix, min, max))
}

// NumericRange parses a parametric numeric_range_<min>_<max> tag. ok is
// false for any other tag or a malformed range.
func (t Tag) NumericRange() (min, max int, ok bool) {
	rest, found := strings.CutPrefix(string(t), numericRangePrefix)
	if !found {
		return 0, 0, false
	}
	minStr, maxStr, found := strings.Cut(rest, "_")
	if !found {
		return 0, 0, false
	}
	min, err := strconv.Atoi(minStr)
	if err != nil {
		return 0, 0, false
	}
	max, err = strconv.Atoi(maxStr)
	if err != nil {
		return 0, 0, false
	}
	if min > max {
		return 0, 0, false
	}
	return min, max, true
}

// pattern pairs one name pattern with the tag it selects. Tables are
// ordered; the first matching entry wins.
type pattern struct {
	match string
	tag   Tag
}

// The four convention tables, checked in priority order: an exact match
// beats a prefix match beats a suffix match beats a substring match.
var (
	exactPatterns = []pattern{
		{"push", TagBoolean},
		{"force", TagBoolean},
		{"dry-run", TagBoolean},
		{"verbose", TagBoolean},
		{"debug", TagBoolean},
		{"fail-on-error", TagBoolean},
		{"no-cache", TagBoolean},
		{"version", TagFlexibleVersion},
		{"go-version", TagGoVersion},
		{"php-version", TagPHPVersion},
		{"token", TagGitHubToken},
		{"github-token", TagGitHubToken},
		{"tag", TagDockerTag},
		{"image", TagDockerImage},
		{"image-name", TagDockerImage},
		{"platform", TagDockerPlatform},
		{"platforms", TagDockerPlatform},
		{"registry", TagHostname},
		{"email", TagEmail},
		{"url", TagURL},
		{"host", TagHostname},
		{"ip", TagIPAddress},
		{"ip-address", TagIPAddress},
		{"language", TagCodeQLLanguage},
		{"languages", TagCodeQLLanguage},
		{"queries", TagCodeQLQuerySuite},
		{"query-suite", TagCodeQLQuerySuite},
		{"category", TagCodeQLCategory},
		{"readme", TagReadmePath},
		{"config", TagConfigPath},
		{"port", NumericRangeTag(1, 65535)},
		{"max-retries", NumericRangeTag(0, 10)},
		{"quality", NumericRangeTag(0, 100)},
		{"retention-days", NumericRangeTag(1, 365)},
	}

	prefixPatterns = []pattern{
		{"is-", TagBoolean},
		{"enable-", TagBoolean},
		{"disable-", TagBoolean},
		{"skip-", TagBoolean},
		{"use-", TagBoolean},
		{"with-", TagBoolean},
	}

	suffixPatterns = []pattern{
		{"-version", TagFlexibleVersion},
		{"-token", TagToken},
		{"-enabled", TagBoolean},
		{"-disabled", TagBoolean},
		{"-image", TagDockerImage},
		{"-tag", TagDockerTag},
		{"-platforms", TagDockerPlatform},
		{"-platform", TagDockerPlatform},
		{"-url", TagURL},
		{"-uri", TagURL},
		{"-email", TagEmail},
		{"-hostname", TagHostname},
		{"-host", TagHostname},
		{"-port", NumericRangeTag(1, 65535)},
		{"-retries", NumericRangeTag(0, 10)},
		{"-attempts", NumericRangeTag(0, 10)},
		{"-count", NumericRangeTag(0, 1000)},
		{"-days", NumericRangeTag(1, 365)},
		{"-file", TagFilePath},
		{"-path", TagFilePath},
		{"-dir", TagFilePath},
		{"-directory", TagFilePath},
	}

	substringPatterns = []pattern{
		{"version", TagFlexibleVersion},
		{"token", TagToken},
		{"timeout", NumericRangeTag(1, 3600)},
		{"percent", NumericRangeTag(0, 100)},
		{"image", TagDockerImage},
		{"path", TagFilePath},
		{"file", TagFilePath},
		{"url", TagURL},
		{"email", TagEmail},
	}
)

// MatchTag resolves an input name to a validator tag through the ordered
// convention tables. ok is false when no table matches; the caller falls
// back to the generic security scan.
func MatchTag(name string) (Tag, bool) {
	for _, p := range exactPatterns {
		if name == p.match {
			return p.tag, true
		}
	}
	for _, p := range prefixPatterns {
		if strings.HasPrefix(name, p.match) {
			return p.tag, true
		}
	}
	for _, p := range suffixPatterns {
		if strings.HasSuffix(name, p.match) {
			return p.tag, true
		}
	}
	for _, p := range substringPatterns {
		if strings.Contains(name, p.match) {
			return p.tag, true
		}
	}
	return "", false
}
