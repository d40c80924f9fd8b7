//go:build !integration

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actionsmith/inputguard/pkg/constants"
	"github.com/actionsmith/inputguard/pkg/rules"
)

func writeActionMetadata(t *testing.T, actionsDir, action, content string) {
	t.Helper()
	dir := filepath.Join(actionsDir, action)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "action.yml"), []byte(content), 0o644))
}

const dockerBuildMetadata = `name: Docker Build
description: Build a container image.
inputs:
  image-name:
    description: Docker image name
    required: true
  tag:
    description: Image tag
    required: false
`

func TestGenerateRules_WritesDocuments(t *testing.T) {
	actionsDir := t.TempDir()
	rulesDir := t.TempDir()
	writeActionMetadata(t, actionsDir, "docker-build", dockerBuildMetadata)
	writeActionMetadata(t, actionsDir, "go-setup", `name: Go Setup
inputs:
  go-version:
    description: Go toolchain version
    required: true
`)

	err := generateRules(actionsDir, rulesDir, []string{"docker-build", "go-setup"}, false)

	require.NoError(t, err)
	rule, loadErr := rules.NewLoader(rulesDir).Load("docker-build")
	require.NoError(t, loadErr)
	assert.Equal(t, []string{"image-name"}, rule.RequiredInputs)
	assert.Equal(t, []string{"tag"}, rule.OptionalInputs)

	rule, loadErr = rules.NewLoader(rulesDir).Load("go-setup")
	require.NoError(t, loadErr)
	assert.Equal(t, []string{"go-version"}, rule.RequiredInputs)
}

func TestGenerateRules_CheckFreshPasses(t *testing.T) {
	actionsDir := t.TempDir()
	rulesDir := t.TempDir()
	writeActionMetadata(t, actionsDir, "docker-build", dockerBuildMetadata)
	require.NoError(t, generateRules(actionsDir, rulesDir, []string{"docker-build"}, false))

	assert.NoError(t, generateRules(actionsDir, rulesDir, []string{"docker-build"}, true))
}

func TestGenerateRules_CheckFlagsStaleDocument(t *testing.T) {
	actionsDir := t.TempDir()
	rulesDir := t.TempDir()
	writeActionMetadata(t, actionsDir, "docker-build", dockerBuildMetadata)
	require.NoError(t, generateRules(actionsDir, rulesDir, []string{"docker-build"}, false))

	path := rules.NewLoader(rulesDir).RulePath("docker-build")
	edited, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, append(edited, []byte("# drift\n")...), 0o644))

	err = generateRules(actionsDir, rulesDir, []string{"docker-build"}, true)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of date")
}

func TestGenerateRules_CheckFlagsMissingDocument(t *testing.T) {
	actionsDir := t.TempDir()
	writeActionMetadata(t, actionsDir, "docker-build", dockerBuildMetadata)

	err := generateRules(actionsDir, t.TempDir(), []string{"docker-build"}, true)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of date")
}

func TestGenerateRules_ReportsActionsWithoutMetadata(t *testing.T) {
	err := generateRules(t.TempDir(), t.TempDir(), []string{"ghost-action"}, false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1")
}

func TestGenerateOne_PathFollowsLoaderLayout(t *testing.T) {
	actionsDir := t.TempDir()
	rulesDir := t.TempDir()
	writeActionMetadata(t, actionsDir, "docker-build", dockerBuildMetadata)

	outcome := generateOne(actionsDir, rulesDir, "docker-build", false)

	require.NoError(t, outcome.Err)
	assert.Equal(t, rules.NewLoader(rulesDir).RulePath(constants.ActionType("docker-build")), outcome.Path)
	assert.FileExists(t, outcome.Path)
}

// TestNewRulesGenerateCommand tests that the generate command is created correctly
func TestNewRulesGenerateCommand(t *testing.T) {
	cmd := NewRulesGenerateCommand()

	require.NotNil(t, cmd)
	assert.Equal(t, "generate", cmd.Name())
	require.NotNil(t, cmd.Flags().Lookup("all"), "generate command should have an --all flag")
	require.NotNil(t, cmd.Flags().Lookup("check"), "generate command should have a --check flag")
	require.NotNil(t, cmd.Flags().Lookup("watch"), "generate command should have a --watch flag")
	require.NotNil(t, cmd.Flags().Lookup("actions-dir"), "generate command should have an --actions-dir flag")
	require.NotNil(t, cmd.Flags().Lookup("rules-dir"), "generate command should have a --rules-dir flag")
}
