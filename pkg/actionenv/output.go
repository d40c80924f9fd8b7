package actionenv

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/actionsmith/inputguard/pkg/constants"
)

// Result is the outcome of one validation run as reported to the workflow
// through GITHUB_OUTPUT.
type Result struct {
	Status        string
	ErrorsFound   int
	WarningsFound int
	RulesApplied  int
	RunID         string
}

// Succeeded reports whether the run found no errors.
func (r Result) Succeeded() bool {
	return r.Status == constants.StatusSuccess
}

// WriteResult appends the run's output record to the GITHUB_OUTPUT file at
// path. Keys are written in a stable order so downstream steps can rely on
// it.
func WriteResult(path string, result Result) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries := []struct {
		name  constants.OutputName
		value string
	}{
		{constants.StatusOutput, result.Status},
		{constants.ErrorsFoundOutput, strconv.Itoa(result.ErrorsFound)},
		{constants.WarningsFoundOutput, strconv.Itoa(result.WarningsFound)},
		{constants.RulesAppliedOutput, strconv.Itoa(result.RulesApplied)},
		{constants.RunIDOutput, result.RunID},
	}

	var sb strings.Builder
	for _, entry := range entries {
		writeOutputEntry(&sb, entry.name, entry.value)
	}

	if _, err := io.WriteString(f, sb.String()); err != nil {
		return fmt.Errorf("writing output record: %w", err)
	}
	log.Printf("Wrote output record: path=%s, status=%s", path, result.Status)
	return nil
}

// AppendOutput appends a single KEY=VALUE entry to the GITHUB_OUTPUT file
// at path.
func AppendOutput(path string, name constants.OutputName, value string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var sb strings.Builder
	writeOutputEntry(&sb, name, value)
	if _, err := io.WriteString(f, sb.String()); err != nil {
		return fmt.Errorf("writing output entry: %w", err)
	}
	return nil
}

// writeOutputEntry writes one entry in the runner's file command syntax.
// Multiline values use the heredoc form with a collision-proof delimiter,
// matching what actions/toolkit does.
func writeOutputEntry(sb *strings.Builder, name constants.OutputName, value string) {
	if !strings.ContainsAny(value, "\r\n") {
		fmt.Fprintf(sb, "%s=%s\n", name, value)
		return
	}
	delimiter := "ghadelimiter_" + uuid.NewString()
	fmt.Fprintf(sb, "%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
}
