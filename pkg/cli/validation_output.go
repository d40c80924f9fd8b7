package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/actionsmith/inputguard/pkg/actionenv"
	"github.com/actionsmith/inputguard/pkg/console"
	"github.com/actionsmith/inputguard/pkg/logger"
	"github.com/actionsmith/inputguard/pkg/validation"
)

var outputLog = logger.New("cli:validation_output")

// emitFindings writes one diagnostic line per finding to stderr. Inside
// a workflow each line carries a workflow-command prefix so the runner
// turns it into an annotation; elsewhere the console styles apply.
func emitFindings(report *validation.Report) {
	onActions := actionenv.IsGitHubActions()
	outputLog.Printf("Emitting findings: errors=%d, warnings=%d, annotations=%t",
		len(report.Errors), len(report.Warnings), onActions)

	for _, finding := range report.Errors {
		if onActions {
			fmt.Fprintln(os.Stderr, console.FormatErrorAnnotation(finding.Detail()))
		} else {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(finding.Detail()))
		}
	}
	for _, finding := range report.Warnings {
		if onActions {
			fmt.Fprintln(os.Stderr, console.FormatWarningAnnotation(finding.Detail()))
		} else {
			fmt.Fprintln(os.Stderr, console.FormatWarningMessage(finding.Detail()))
		}
	}
}

// printSummary reports the run outcome on stdout: a table for humans at
// a terminal, a single line inside a workflow where the output record
// already carries the data.
func printSummary(report *validation.Report, result actionenv.Result) {
	if actionenv.IsGitHubActions() {
		line := fmt.Sprintf("%s: %s (%d errors, %d warnings, %d checks, run %s)",
			report.Action, result.Status, result.ErrorsFound, result.WarningsFound, result.RulesApplied, result.RunID)
		if result.Succeeded() {
			fmt.Fprintln(os.Stdout, console.FormatSuccessMessage(line))
		} else {
			fmt.Fprintln(os.Stdout, console.FormatErrorMessage(line))
		}
		return
	}

	table := console.TableConfig{
		Title:   fmt.Sprintf("Validation of %s (run %s)", report.Action, result.RunID),
		Headers: []string{"Status", "Errors", "Warnings", "Checks"},
		Rows: [][]string{{
			result.Status,
			strconv.Itoa(result.ErrorsFound),
			strconv.Itoa(result.WarningsFound),
			strconv.Itoa(result.RulesApplied),
		}},
	}
	fmt.Fprint(os.Stdout, console.RenderTable(table))
}
