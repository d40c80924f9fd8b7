package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/actionsmith/inputguard/pkg/console"
	"github.com/actionsmith/inputguard/pkg/constants"
	"github.com/actionsmith/inputguard/pkg/logger"
	"github.com/actionsmith/inputguard/pkg/rules"
)

var generateLog = logger.New("cli:rules_generate")

// generateOutcome is the result of generating or freshness-checking one
// action's rule document.
type generateOutcome struct {
	Action string
	Path   string
	Stale  bool
	Err    error
}

// NewRulesGenerateCommand creates the rules generate subcommand
func NewRulesGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [action]...",
		Short: "Generate rule documents from action.yml metadata",
		Long: `Generate a rule document for each named action from its action.yml,
deriving required inputs, convention tags, and default policies.

With --check, nothing is written; instead each existing document is
compared against what generation would produce, and stale or missing
documents fail the command. With --watch, the actions directory is
watched and documents regenerate as action files change.

Examples:
  ` + string(constants.CLIPrefix) + ` rules generate docker-build          # One action
  ` + string(constants.CLIPrefix) + ` rules generate --all                 # Every action with metadata
  ` + string(constants.CLIPrefix) + ` rules generate --all --check         # CI freshness gate
  ` + string(constants.CLIPrefix) + ` rules generate --all --watch         # Regenerate on change`,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			check, _ := cmd.Flags().GetBool("check")
			watch, _ := cmd.Flags().GetBool("watch")
			actionsDirFlag, _ := cmd.Flags().GetString("actions-dir")
			rulesDirFlag, _ := cmd.Flags().GetString("rules-dir")
			actionsDir := resolveActionsDir(actionsDirFlag)
			rulesDir := resolveRulesDir(rulesDirFlag)

			if watch {
				return watchAndGenerate(cmd.Context(), actionsDir, rulesDir)
			}

			names := args
			if all {
				discovered, err := rules.ListActions(actionsDir)
				if err != nil {
					return err
				}
				if len(discovered) == 0 {
					fmt.Fprintln(os.Stderr, console.FormatInfoMessage(
						fmt.Sprintf("No actions with metadata under %s", actionsDir)))
					return nil
				}
				names = discovered
			}
			if len(names) == 0 {
				return fmt.Errorf("name at least one action or pass --all")
			}

			return generateRules(actionsDir, rulesDir, names, check)
		},
	}

	cmd.Flags().Bool("all", false, "Generate for every action under the actions directory")
	cmd.Flags().Bool("check", false, "Verify documents are up to date without writing")
	cmd.Flags().Bool("watch", false, "Watch the actions directory and regenerate on change")
	cmd.Flags().String("actions-dir", "", "Actions directory (default: "+constants.GetActionsDir()+")")
	cmd.Flags().String("rules-dir", "", "Rules directory (default: "+constants.GetRulesDir()+")")

	return cmd
}

// generateRules fans the actions out over a bounded pool and aggregates
// the outcomes. In check mode a stale or missing document is a failure;
// otherwise documents are written in place.
func generateRules(actionsDir, rulesDir string, names []string, checkOnly bool) error {
	generateLog.Printf("Generating rules: actions=%d, checkOnly=%t, pool=%d", len(names), checkOnly, batchPoolSize())

	label := "rule documents generated"
	if checkOnly {
		label = "rule documents checked"
	}
	bar := console.NewProgressBar(label, len(names))

	outcomes := make([]generateOutcome, len(names))
	workers := pool.New().WithMaxGoroutines(batchPoolSize())
	for i, name := range names {
		workers.Go(func() {
			outcomes[i] = generateOne(actionsDir, rulesDir, name, checkOnly)
			bar.Advance()
		})
	}
	workers.Wait()
	bar.Finish()

	var failed, stale int
	for _, outcome := range outcomes {
		switch {
		case outcome.Err != nil:
			failed++
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(
				fmt.Sprintf("%s: %v", outcome.Action, outcome.Err)))
		case outcome.Stale:
			stale++
			fmt.Fprintln(os.Stderr, console.FormatWarningMessage(
				fmt.Sprintf("%s: rule document is stale, run %s rules generate", outcome.Action, constants.CLIPrefix)))
		case checkOnly:
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(outcome.Action+": up to date"))
		default:
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(outcome.Action+": wrote "+outcome.Path))
		}
	}

	if failed > 0 {
		return fmt.Errorf("rule generation failed for %d of %d action(s)", failed, len(names))
	}
	if stale > 0 {
		return fmt.Errorf("%d of %d rule document(s) out of date", stale, len(names))
	}
	return nil
}

func generateOne(actionsDir, rulesDir, name string, checkOnly bool) generateOutcome {
	action := constants.ActionType(name)
	path := rules.NewLoader(rulesDir).RulePath(action)
	outcome := generateOutcome{Action: name, Path: path}

	rule, err := rules.GenerateFromDir(actionsDir, action)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	if checkOnly {
		want, err := rules.MarshalRule(rule)
		if err != nil {
			outcome.Err = err
			return outcome
		}
		have, err := os.ReadFile(path)
		outcome.Stale = err != nil || !bytes.Equal(have, want)
		return outcome
	}

	outcome.Err = rules.WriteRule(rule, path)
	return outcome
}

// watchAndGenerate regenerates one action's document whenever its
// metadata changes. Blocks until the context is done.
func watchAndGenerate(ctx context.Context, actionsDir, rulesDir string) error {
	fmt.Fprintln(os.Stderr, console.FormatInfoMessage(
		fmt.Sprintf("Watching %s for action changes (Ctrl+C to stop)", actionsDir)))

	return rules.WatchActions(ctx, actionsDir, constants.DefaultWatchDebounce, func(name string) {
		outcome := generateOne(actionsDir, rulesDir, name, false)
		if outcome.Err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(
				fmt.Sprintf("%s: %v", outcome.Action, outcome.Err)))
			return
		}
		fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(outcome.Action+": wrote "+outcome.Path))
	})
}
