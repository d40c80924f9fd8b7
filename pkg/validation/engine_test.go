//go:build !integration

package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actionsmith/inputguard/pkg/rules"
)

func writeRuleDocument(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestRun_DockerBuildTagPasses(t *testing.T) {
	registry := NewRegistry(rules.NewLoader(t.TempDir()))

	report, err := Run(registry, "docker-build", InputSet{"tag": "v1.0.0"})

	require.NoError(t, err)
	assert.True(t, report.Passed)
	assert.Empty(t, report.Errors)
	assert.Equal(t, 1, report.ChecksApplied)
}

func TestRun_DockerBuildTagInjectionFails(t *testing.T) {
	registry := NewRegistry(rules.NewLoader(t.TempDir()))

	report, err := Run(registry, "docker-build", InputSet{"tag": "v1.0.0; rm -rf /"})

	require.NoError(t, err)
	assert.False(t, report.Passed)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0].Error(), "tag")
}

func TestRun_GoVersionWindow(t *testing.T) {
	dir := t.TempDir()
	writeRuleDocument(t, dir, "go-version-detect.yml", `schema_version: 2
action: go-version-detect
description: Pin the detector to supported Go releases.
required_inputs:
  - default-version
conventions:
  default-version: go_version
policies:
  default-version:
    version_prefix: allow
`)
	registry := NewRegistry(rules.NewLoader(dir))

	tests := []struct {
		version string
		passed  bool
	}{
		{"1.18", true},
		{"1.17", false},
		{"1.30", true},
		{"1.31", false},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			report, err := Run(registry, "go-version-detect", InputSet{"default-version": tt.version})
			require.NoError(t, err)
			assert.Equal(t, tt.passed, report.Passed)
			if !tt.passed {
				require.Len(t, report.Errors, 1)
				assert.Equal(t, "default-version", report.Errors[0].Field)
			}
		})
	}
}

func TestRun_CustomValidatorListsMissingField(t *testing.T) {
	registry := NewRegistry(rules.NewLoader(t.TempDir()))
	require.NoError(t, registry.RegisterCustom("deploy-notify", newListFactory("webhook-url", "channel")))

	report, err := Run(registry, "deploy-notify", InputSet{"webhook-url": "https://hooks.example.com"})

	require.NoError(t, err)
	assert.False(t, report.Passed)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "channel", report.Errors[0].Field)
}

func TestRun_MissingRequiredInputFails(t *testing.T) {
	dir := t.TempDir()
	writeRuleDocument(t, dir, "docker-publish.yml", `schema_version: 2
action: docker-publish
description: Publishing needs a target image.
required_inputs:
  - image-name
`)
	registry := NewRegistry(rules.NewLoader(dir))

	report, err := Run(registry, "docker-publish", InputSet{"tag": "v1.0.0"})

	require.NoError(t, err)
	assert.False(t, report.Passed)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "image-name", report.Errors[0].Field)
}

func TestRun_ConstraintViolation(t *testing.T) {
	dir := t.TempDir()
	writeRuleDocument(t, dir, "docker-publish.yml", `schema_version: 2
action: docker-publish
description: Registry pushes carry an explicit tag.
required_inputs:
  - image-name
constraints:
  - expr: input("registry") == "" || input("tag") != ""
    message: pushing to a registry requires an explicit tag
`)
	registry := NewRegistry(rules.NewLoader(dir))

	report, err := Run(registry, "docker-publish", InputSet{
		"image-name": "myapp",
		"registry":   "ghcr.io",
	})

	require.NoError(t, err)
	assert.False(t, report.Passed)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "pushing to a registry requires an explicit tag", report.Errors[0].Message)
}

func TestRun_ConfigProblemIsAnError(t *testing.T) {
	dir := t.TempDir()
	writeRuleDocument(t, dir, "docker-build.yml", "schema_version: [unclosed")
	registry := NewRegistry(rules.NewLoader(dir))

	report, err := Run(registry, "docker-build", InputSet{"tag": "v1.0.0"})

	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, rules.IsConfigError(err), "rule problems never masquerade as input failures")
}

func TestRun_WarningsDoNotFail(t *testing.T) {
	registry := NewRegistry(rules.NewLoader(t.TempDir()))

	report, err := Run(registry, "issue-triage", InputSet{
		"label": "abcdefghijklmnopqrst",
	})

	require.NoError(t, err)
	assert.True(t, report.Passed)
	assert.Empty(t, report.Errors)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "value looks like a credential", report.Warnings[0].Message)
}

func TestRun_FreshValidatorPerCall(t *testing.T) {
	registry := NewRegistry(rules.NewLoader(t.TempDir()))

	first, err := Run(registry, "docker-build", InputSet{"tag": ".bad"})
	require.NoError(t, err)
	require.Len(t, first.Errors, 1)

	second, err := Run(registry, "docker-build", InputSet{"tag": "v1.0.0"})
	require.NoError(t, err)
	assert.True(t, second.Passed, "a failed run leaves nothing behind for the next one")
	assert.Empty(t, second.Errors)
}
