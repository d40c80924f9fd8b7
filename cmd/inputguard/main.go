// Command inputguard validates GitHub Actions inputs against per-action
// rule documents before those inputs reach a shell, a registry, or a
// workflow expression.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/actionsmith/inputguard/pkg/cli"
	"github.com/actionsmith/inputguard/pkg/constants"
)

// version is stamped at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   string(constants.CLIPrefix),
	Short: "Validate GitHub Actions inputs before they are used",
	Long: `inputguard checks the inputs of a GitHub Actions step against the rules
for its action type: required inputs, per-field grammars, path and shell
injection screening, and cross-field constraints. Every problem is
reported in one run.

Inside a workflow, findings become error annotations and the outcome is
appended to $GITHUB_OUTPUT. The same engine is available to agents over
MCP and to rule authors through the rules subcommands.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: "validation", Title: "Validation Commands:"},
		&cobra.Group{ID: "authoring", Title: "Rule Authoring Commands:"},
		&cobra.Group{ID: "utilities", Title: "Utilities:"},
	)

	validateCmd := cli.NewValidateCommand()
	validateCmd.GroupID = "validation"
	actionsCmd := cli.NewActionsCommand()
	actionsCmd.GroupID = "validation"
	rulesCmd := cli.NewRulesCommand()
	rulesCmd.GroupID = "authoring"
	mcpServerCmd := cli.NewMCPServerCommand(version)
	mcpServerCmd.GroupID = "utilities"

	rootCmd.AddCommand(validateCmd, actionsCmd, rulesCmd, mcpServerCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
