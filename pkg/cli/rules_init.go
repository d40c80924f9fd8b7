package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/actionsmith/inputguard/pkg/console"
	"github.com/actionsmith/inputguard/pkg/constants"
	"github.com/actionsmith/inputguard/pkg/fileutil"
	"github.com/actionsmith/inputguard/pkg/logger"
	"github.com/actionsmith/inputguard/pkg/rules"
)

var initLog = logger.New("cli:rules_init")

// NewRulesInitCommand creates the rules init subcommand
func NewRulesInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [action]",
		Short: "Author a rule document interactively",
		Long: `Create a rule document for one action by answering prompts: required and
optional inputs, and an optional cross-field constraint. Inputs whose
names match the built-in conventions get their tags and strict default
policies written out so the document passes ` + string(constants.CLIPrefix) + ` rules check.

Examples:
  ` + string(constants.CLIPrefix) + ` rules init my-action
  ` + string(constants.CLIPrefix) + ` rules init my-action --rules-dir custom/rules`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rulesDir, _ := cmd.Flags().GetString("rules-dir")
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return initRule(resolveRulesDir(rulesDir), name)
		},
	}

	cmd.Flags().String("rules-dir", "", "Rules directory (default: "+constants.GetRulesDir()+")")

	return cmd
}

func initRule(rulesDir, name string) error {
	var err error
	if name == "" {
		console.ShowWelcomeBanner("Answer a few prompts to author a rule document for one action.")
		name, err = chooseActionName(resolveActionsDir(""))
		if err != nil {
			return err
		}
	}
	if err := validateActionName(name); err != nil {
		return err
	}

	loader := rules.NewLoader(rulesDir)
	path := loader.RulePath(constants.ActionType(name))
	if fileutil.FileExists(path) {
		overwrite, err := console.PromptConfirm("Overwrite existing rule document?", path)
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(os.Stderr, console.FormatInfoMessage("Keeping "+path))
			return nil
		}
	}

	description, err := console.PromptInput("Description", "One line on what the action does (optional)", "", nil)
	if err != nil {
		return err
	}
	required, err := promptInputNames("Required inputs", "Comma-separated input names that must be set")
	if err != nil {
		return err
	}
	optional, err := promptInputNames("Optional inputs", "Comma-separated input names that may be set")
	if err != nil {
		return err
	}

	rule := &rules.Rule{
		SchemaVersion:  constants.RuleSchemaVersion,
		Action:         name,
		Description:    strings.TrimSpace(description),
		RequiredInputs: required,
		OptionalInputs: optional,
	}
	for _, input := range append(append([]string{}, required...), optional...) {
		tag, matched := rules.MatchTag(input)
		if !matched {
			continue
		}
		if policy := rules.DefaultPolicyFor(tag); !policy.IsZero() {
			if rule.Policies == nil {
				rule.Policies = make(map[string]rules.FieldPolicy)
			}
			rule.Policies[input] = policy
		}
	}

	if err := promptConstraint(rule); err != nil {
		return err
	}

	if err := rules.WriteRule(rule, path); err != nil {
		return err
	}
	initLog.Printf("Initialized rule document %s: required=%d, optional=%d", path, len(required), len(optional))
	fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Wrote "+path))

	if findings := rules.CheckRule(rule, path); len(findings) > 0 {
		for _, finding := range findings {
			fmt.Fprintln(os.Stderr, console.FormatWarningMessage(finding.String()))
		}
	}
	return nil
}

// chooseActionName picks the action interactively: a filterable list of
// the actions discovered under actionsDir, or a free-form prompt when
// nothing is discoverable there.
func chooseActionName(actionsDir string) (string, error) {
	discovered, err := rules.ListActions(actionsDir)
	if err != nil {
		initLog.Printf("Action discovery under %s failed: %v", actionsDir, err)
	}
	if len(discovered) > 0 {
		items := make([]console.ListItem, len(discovered))
		for i, action := range discovered {
			items[i] = console.NewListItem(action, "discovered under "+actionsDir, action)
		}
		choice, err := console.ShowInteractiveList("Which action is this rule document for?", items)
		if err != nil {
			return "", err
		}
		if choice != "" {
			return choice, nil
		}
	}
	return console.PromptInput("Action name", "The action this rule document applies to", "docker-build", validateActionName)
}

func validateActionName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("action name is required")
	}
	if strings.ContainsAny(name, " \t/\\") {
		return fmt.Errorf("action name must not contain spaces or path separators")
	}
	return nil
}

func promptInputNames(title, description string) ([]string, error) {
	raw, err := console.PromptInput(title, description, "image-name, tag", nil)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// promptConstraint optionally adds one cross-field constraint, compiling
// the expression up front so a broken one never lands in the document.
func promptConstraint(rule *rules.Rule) error {
	add, err := console.PromptConfirm("Add a cross-field constraint?", `An expression over the inputs, e.g. input("registry") == "" || input("tag") != ""`)
	if err != nil {
		return err
	}
	if !add {
		return nil
	}

	expr, err := console.PromptInput("Constraint expression", "Must evaluate to a boolean", `input("registry") == "" || input("tag") != ""`, func(value string) error {
		_, err := rules.Constraint{Expr: value}.Compile()
		return err
	})
	if err != nil {
		return err
	}
	message, err := console.PromptInput("Violation message", "Reported when the expression is false", "tag is required when pushing to a registry", func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("a violation message is required")
		}
		return nil
	})
	if err != nil {
		return err
	}

	rule.Constraints = append(rule.Constraints, rules.Constraint{Expr: expr, Message: message})
	return nil
}
