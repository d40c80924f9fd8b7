package cli

import (
	"github.com/spf13/cobra"

	"github.com/actionsmith/inputguard/pkg/actions"
	"github.com/actionsmith/inputguard/pkg/constants"
	"github.com/actionsmith/inputguard/pkg/logger"
	"github.com/actionsmith/inputguard/pkg/mcpserver"
	"github.com/actionsmith/inputguard/pkg/rules"
	"github.com/actionsmith/inputguard/pkg/validation"
)

var mcpServerLog = logger.New("cli:mcp_server_command")

// NewMCPServerCommand creates the mcp-server command
func NewMCPServerCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp-server",
		Short: "Serve the validation engine over the Model Context Protocol",
		Long: `Run an MCP server on stdio exposing validate_inputs, list_rules, and
get_rule, so agents can validate action inputs and inspect the rules in
play without shelling out to the CLI.

Examples:
  ` + string(constants.CLIPrefix) + ` mcp-server
  ` + string(constants.CLIPrefix) + ` mcp-server --rules-dir custom/rules`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rulesDir, _ := cmd.Flags().GetString("rules-dir")

			registry := validation.NewRegistry(rules.NewLoader(resolveRulesDir(rulesDir)))
			if err := actions.RegisterBuiltins(registry); err != nil {
				return err
			}

			mcpServerLog.Printf("Starting MCP server, version %s", version)
			return mcpserver.New(registry, version).Serve(cmd.Context())
		},
	}

	cmd.Flags().String("rules-dir", "", "Rules directory (default: "+constants.GetRulesDir()+")")

	return cmd
}
