//go:build !integration

package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCommandGroupAssignments verifies that commands are assigned to appropriate groups
func TestCommandGroupAssignments(t *testing.T) {
	tests := []struct {
		name            string
		commandName     string
		expectedGroup   string
		shouldHaveGroup bool
	}{
		{name: "validate command in validation group", commandName: "validate", expectedGroup: "validation", shouldHaveGroup: true},
		{name: "actions command in validation group", commandName: "actions", expectedGroup: "validation", shouldHaveGroup: true},
		{name: "rules command in authoring group", commandName: "rules", expectedGroup: "authoring", shouldHaveGroup: true},
		{name: "mcp-server command in utilities group", commandName: "mcp-server", expectedGroup: "utilities", shouldHaveGroup: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var foundCmd *cobra.Command
			for _, cmd := range rootCmd.Commands() {
				if cmd.Name() == tt.commandName {
					foundCmd = cmd
					break
				}
			}
			require.NotNil(t, foundCmd, "command %q should be registered on the root command", tt.commandName)

			if tt.shouldHaveGroup {
				assert.Equal(t, tt.expectedGroup, foundCmd.GroupID)
			} else {
				assert.Empty(t, foundCmd.GroupID)
			}
		})
	}
}

// TestRootCommandSurface verifies the root command's identity and help text
func TestRootCommandSurface(t *testing.T) {
	assert.Equal(t, "inputguard", rootCmd.Name())
	assert.NotEmpty(t, rootCmd.Short)
	assert.Contains(t, rootCmd.Long, "GITHUB_OUTPUT")
	assert.True(t, rootCmd.SilenceUsage, "failed validation should not dump usage text")

	groups := make(map[string]bool)
	for _, group := range rootCmd.Groups() {
		groups[group.ID] = true
	}
	for _, want := range []string{"validation", "authoring", "utilities"} {
		assert.True(t, groups[want], "root command should declare the %s group", want)
	}
}
