package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/actionsmith/inputguard/pkg/actionenv"
	"github.com/actionsmith/inputguard/pkg/actions"
	"github.com/actionsmith/inputguard/pkg/console"
	"github.com/actionsmith/inputguard/pkg/constants"
	"github.com/actionsmith/inputguard/pkg/logger"
	"github.com/actionsmith/inputguard/pkg/rules"
	"github.com/actionsmith/inputguard/pkg/validation"
)

var validateLog = logger.New("cli:validate_command")

// ValidateConfig carries everything one validation run needs. Zero
// values mean "read the GitHub Actions environment", which is how the
// action entry point invokes the engine.
type ValidateConfig struct {
	ActionType  string
	Inputs      validation.InputSet // nil reads INPUT_* from the environment
	RulesDir    string
	ProbeImages bool
	Quiet       bool
	FailOnError *bool // nil defers to the fail-on-error input
}

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate action inputs against the action's ruleset",
		Long: `Validate a set of action inputs against the rules for one action type.

Inputs come from INPUT_* environment variables the way the Actions runner
provides them, or from explicit --input flags. All checks run and every
problem is reported in one pass; inside a workflow each finding becomes an
error annotation and the run's outcome is appended to $GITHUB_OUTPUT.

Examples:
  ` + string(constants.CLIPrefix) + ` validate                                      # Validate from INPUT_* environment
  ` + string(constants.CLIPrefix) + ` validate -a docker-build -i tag=v1.2.3        # Validate explicit inputs
  ` + string(constants.CLIPrefix) + ` validate -a docker-publish -i image-name=app -i tag=v1 --probe-images
  ` + string(constants.CLIPrefix) + ` validate --rules-dir custom/rules             # Load rules from a custom directory
  ` + string(constants.CLIPrefix) + ` validate --fail-on-error=false                # Report failure in the record only`,
		RunE: func(cmd *cobra.Command, args []string) error {
			actionType, _ := cmd.Flags().GetString("action-type")
			inputPairs, _ := cmd.Flags().GetStringArray("input")
			rulesDir, _ := cmd.Flags().GetString("rules-dir")
			probeImages, _ := cmd.Flags().GetBool("probe-images")
			quiet, _ := cmd.Flags().GetBool("quiet")

			config := ValidateConfig{
				ActionType:  actionType,
				RulesDir:    rulesDir,
				ProbeImages: probeImages,
				Quiet:       quiet,
			}
			if len(inputPairs) > 0 {
				inputs, err := parseInputFlags(inputPairs)
				if err != nil {
					return err
				}
				config.Inputs = inputs
			}
			if cmd.Flags().Changed("fail-on-error") {
				failOnError, _ := cmd.Flags().GetBool("fail-on-error")
				config.FailOnError = &failOnError
			}

			return RunValidate(cmd.Context(), config)
		},
	}

	cmd.Flags().StringP("action-type", "a", "", "Action whose ruleset applies (default: INPUT_ACTION_TYPE)")
	cmd.Flags().StringArrayP("input", "i", nil, "Input as name=value; repeatable (default: INPUT_* environment)")
	cmd.Flags().String("rules-dir", "", "Rules directory (default: "+constants.GetRulesDir()+")")
	cmd.Flags().Bool("fail-on-error", true, "Exit non-zero when validation fails")
	cmd.Flags().Bool("probe-images", false, "Check that image references resolve in their registry")
	cmd.Flags().BoolP("quiet", "q", false, "Suppress the summary, report findings only")

	return cmd
}

// RunValidate executes one validation run end to end: resolve the action
// and inputs, run every check, emit findings, append the output record,
// and decide the exit outcome.
func RunValidate(ctx context.Context, config ValidateConfig) error {
	inputs := config.Inputs
	if inputs == nil {
		inputs = actionenv.CurrentInputs()
	}

	actionType := constants.ActionType(strings.TrimSpace(config.ActionType))
	if !actionType.IsValid() {
		resolved, ok := actionenv.ResolveActionType(inputs)
		if !ok {
			return fmt.Errorf("action type is required: pass --action-type or set %s", constants.ActionTypeEnvVar)
		}
		actionType = resolved
	}

	failOnError := actionenv.FailOnError(inputs)
	if config.FailOnError != nil {
		failOnError = *config.FailOnError
	}

	data := actionenv.DataInputs(inputs)
	validateLog.Printf("Validating %q: %d inputs, failOnError=%t, probe=%t",
		actionType, len(data), failOnError, config.ProbeImages)

	registry := validation.NewRegistry(rules.NewLoader(resolveRulesDir(config.RulesDir)))
	if err := actions.RegisterBuiltins(registry); err != nil {
		return err
	}

	report, err := validation.Run(registry, actionType, data)
	if err != nil {
		return err
	}

	if config.ProbeImages {
		probeImageReference(ctx, data, report)
	}

	emitFindings(report)

	result := actionenv.Result{
		Status:        constants.StatusSuccess,
		ErrorsFound:   len(report.Errors),
		WarningsFound: len(report.Warnings),
		RulesApplied:  report.ChecksApplied,
		RunID:         actionenv.NewRunID(),
	}
	if !report.Passed {
		result.Status = constants.StatusFailure
	}
	if path := os.Getenv(constants.GitHubOutputEnvVar.String()); path != "" {
		if err := actionenv.WriteResult(path, result); err != nil {
			return err
		}
	}

	if !config.Quiet {
		printSummary(report, result)
	}

	if !report.Passed && failOnError {
		return fmt.Errorf("validation failed for %q: %d error(s)", actionType, len(report.Errors))
	}
	return nil
}

// probeImageReference resolves the run's image reference against its
// registry when the inputs carry one. A definitive registry miss is a
// validation error; a probe that could not complete is only a warning.
func probeImageReference(ctx context.Context, inputs validation.InputSet, report *validation.Report) {
	name := strings.TrimSpace(inputs.Get("image-name"))
	if name == "" || validation.IsGitHubExpression(name) {
		return
	}
	reference := name
	if tag := strings.TrimSpace(inputs.Get("tag")); tag != "" && !validation.IsGitHubExpression(tag) {
		reference = name + ":" + tag
	}

	probe := validation.NewImageProbe(constants.DefaultProbeTimeout)
	spin := console.NewSpinner("Probing " + reference + " in its registry")
	spin.Start()
	err := probe.Probe(ctx, reference)
	spin.Stop()
	if err == nil {
		return
	}
	if validation.IsImageNotFound(err) {
		report.Errors = append(report.Errors, validation.NewValidationError(
			"image-name", reference, "image reference does not exist in its registry", err.Error()))
		report.Passed = false
		return
	}
	report.Warnings = append(report.Warnings, validation.NewValidationError(
		"image-name", "", "image probe was inconclusive", err.Error()))
}
