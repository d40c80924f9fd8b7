package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/actionsmith/inputguard/pkg/console"
	"github.com/actionsmith/inputguard/pkg/constants"
	"github.com/actionsmith/inputguard/pkg/logger"
	"github.com/actionsmith/inputguard/pkg/rules"
)

var checkLog = logger.New("cli:rules_check")

// NewRulesCheckCommand creates the rules check subcommand
func NewRulesCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Lint every rule document for schema and policy completeness",
		Long: `Check all rule documents against the embedded schema and the authoring
rules the runtime loader does not enforce: every policy-sensitive field
must state its policy, convention overrides must name declared inputs,
and constraints must compile.

All findings across all documents are reported in one pass.

Examples:
  ` + string(constants.CLIPrefix) + ` rules check
  ` + string(constants.CLIPrefix) + ` rules check --rules-dir custom/rules`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rulesDir, _ := cmd.Flags().GetString("rules-dir")
			return checkRules(resolveRulesDir(rulesDir))
		},
	}

	cmd.Flags().String("rules-dir", "", "Rules directory (default: "+constants.GetRulesDir()+")")

	return cmd
}

func checkRules(rulesDir string) error {
	checker := rules.NewChecker(rulesDir)
	findings, err := checker.CheckAll()
	if err != nil {
		return err
	}
	checkLog.Printf("Checked rules in %s: %d finding(s)", rulesDir, len(findings))

	if len(findings) == 0 {
		fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(
			fmt.Sprintf("All rule documents in %s are well formed", rulesDir)))
		return nil
	}

	for _, finding := range findings {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(finding.String()))
	}
	return fmt.Errorf("%d problem(s) in rule documents under %s", len(findings), rulesDir)
}
