package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/actionsmith/inputguard/pkg/console"
	"github.com/actionsmith/inputguard/pkg/constants"
	"github.com/actionsmith/inputguard/pkg/logger"
	"github.com/actionsmith/inputguard/pkg/rules"
)

var rulesLog = logger.New("cli:rules_command")

// NewRulesCommand creates the rules command with its subcommands
func NewRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Maintain the per-action validation rule documents",
		Long: `Maintain the YAML rule documents that drive validation: generate them
from action.yml metadata, lint them for schema and policy completeness,
author one interactively, or list what is in play.

Examples:
  ` + string(constants.CLIPrefix) + ` rules generate --all        # Generate rules for every action
  ` + string(constants.CLIPrefix) + ` rules generate docker-build # Generate rules for one action
  ` + string(constants.CLIPrefix) + ` rules check                 # Lint all rule documents
  ` + string(constants.CLIPrefix) + ` rules init my-action        # Author a rule interactively
  ` + string(constants.CLIPrefix) + ` rules list                  # Show the rules in play`,
	}

	cmd.AddCommand(NewRulesGenerateCommand())
	cmd.AddCommand(NewRulesCheckCommand())
	cmd.AddCommand(NewRulesInitCommand())
	cmd.AddCommand(NewRulesListCommand())

	return cmd
}

// NewRulesListCommand creates the rules list subcommand
func NewRulesListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [action]",
		Short: "List the rule documents in the rules directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rulesDir, _ := cmd.Flags().GetString("rules-dir")
			if len(args) > 0 {
				return showRule(resolveRulesDir(rulesDir), args[0])
			}
			return listRules(resolveRulesDir(rulesDir))
		},
	}

	cmd.Flags().String("rules-dir", "", "Rules directory (default: "+constants.GetRulesDir()+")")

	return cmd
}

func listRules(rulesDir string) error {
	loader := rules.NewLoader(rulesDir)
	loaded, err := loader.LoadAll()
	if err != nil {
		return err
	}
	rulesLog.Printf("Listing %d rule documents from %s", len(loaded), rulesDir)

	if len(loaded) == 0 {
		fmt.Fprintln(os.Stderr, console.FormatInfoMessage(
			fmt.Sprintf("No rule documents in %s; run %s rules generate to create them", rulesDir, constants.CLIPrefix)))
		return nil
	}

	rows := make([][]string, 0, len(loaded))
	for _, rule := range loaded {
		rows = append(rows, []string{
			rule.Action,
			strconv.Itoa(len(rule.RequiredInputs)),
			strconv.Itoa(len(rule.OptionalInputs)),
			strconv.Itoa(len(rule.Conventions)),
			strconv.Itoa(len(rule.Constraints)),
		})
	}

	table := console.TableConfig{
		Title:   fmt.Sprintf("Rule documents in %s", rulesDir),
		Headers: []string{"Action", "Required", "Optional", "Overrides", "Constraints"},
		Rows:    rows,
	}
	fmt.Fprint(os.Stdout, console.RenderTable(table))
	return nil
}

// showRule renders the effective rule for one action, which is the
// built-in default when no document exists on disk.
func showRule(rulesDir, name string) error {
	loader := rules.NewLoader(rulesDir)
	rule, err := loader.Load(constants.ActionType(name))
	if err != nil {
		return err
	}
	rulesLog.Printf("Showing effective rule for %q from %s", name, rulesDir)
	fmt.Fprint(os.Stdout, console.RenderStruct(rule))
	return nil
}
