package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// dockerImagePattern covers the repository reference without a tag:
	// lowercase alphanumerics with ., _, -, / strictly between them.
	dockerImagePattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9._/-]*[a-z0-9])?$`)

	// dockerTagPattern is the registry's tag grammar.
	dockerTagPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{0,127}$`)
)

// dockerPlatforms enumerates the build platforms the actions target.
var dockerPlatforms = []string{
	"linux/amd64",
	"linux/arm64",
	"linux/arm/v7",
	"linux/arm/v6",
	"linux/386",
	"linux/ppc64le",
	"linux/s390x",
}

// DockerValidator checks image references, tags, and platform lists.
type DockerValidator struct {
	*BaseValidator
}

func NewDockerValidator(base *BaseValidator) *DockerValidator {
	return &DockerValidator{BaseValidator: base}
}

// ValidateImageName checks a repository reference such as "myapp" or
// "registry.example.com/team/myapp". Tags travel in their own input.
func (v *DockerValidator) ValidateImageName(value, field string) bool {
	if IsGitHubExpression(value) {
		return true
	}
	if dockerImagePattern.MatchString(value) {
		return true
	}
	v.AddError(NewValidationError(field, value,
		"not a valid image name",
		"use lowercase letters, digits, and ., _, -, / between them; put the tag in its own input"))
	return false
}

// ValidateTag checks an image tag.
func (v *DockerValidator) ValidateTag(value, field string) bool {
	if IsGitHubExpression(value) {
		return true
	}
	if dockerTagPattern.MatchString(value) {
		return true
	}
	v.AddError(NewValidationError(field, value,
		"not a valid image tag",
		"tags start with a letter or digit and use up to 128 of [A-Za-z0-9._-]"))
	return false
}

// ValidatePlatforms checks a comma-separated list of build platforms,
// each segment on its own so one bad entry names itself.
func (v *DockerValidator) ValidatePlatforms(value, field string) bool {
	if IsGitHubExpression(value) {
		return true
	}
	ok := true
	for _, segment := range strings.Split(value, ",") {
		platform := strings.TrimSpace(segment)
		if platform == "" {
			v.AddError(NewValidationError(field, value,
				"platform list has an empty entry", "remove stray commas"))
			ok = false
			continue
		}
		if !isDockerPlatform(platform) {
			v.AddError(NewValidationError(field, platform,
				"unsupported platform",
				fmt.Sprintf("supported platforms: %s", strings.Join(dockerPlatforms, ", "))))
			ok = false
		}
	}
	return ok
}

func isDockerPlatform(platform string) bool {
	for _, p := range dockerPlatforms {
		if p == platform {
			return true
		}
	}
	return false
}
