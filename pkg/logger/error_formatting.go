package logger

import (
	"regexp"
	"strings"
)

// maxExtractedMessageLength caps messages pulled out of external tool
// output before they are embedded in diagnostics.
const maxExtractedMessageLength = 200

var (
	// Leading timestamp forms seen in tool output. Only the first match
	// is stripped; anything after it is part of the message.
	timestampPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(?:\.\d+)?\]\s+`),
		regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}(?:\.\d+)?\]\s+`),
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})?\s+`),
		regexp.MustCompile(`^\d{2}:\d{2}:\d{2}(?:\.\d+)?\s+`),
	}

	logLevelPattern = regexp.MustCompile(`(?i)^\[?(error|warning|warn|info|debug)\]?:?\s+`)
)

// ExtractErrorMessage cleans one line of external tool output for use in
// a diagnostic: strips a single leading timestamp, strips a leading log
// level marker, and truncates long messages to a readable length.
func ExtractErrorMessage(line string) string {
	msg := strings.TrimSpace(line)

	for _, p := range timestampPatterns {
		if loc := p.FindStringIndex(msg); loc != nil {
			msg = msg[loc[1]:]
			break
		}
	}

	if loc := logLevelPattern.FindStringIndex(msg); loc != nil {
		msg = msg[loc[1]:]
	}

	msg = strings.TrimSpace(msg)
	if len(msg) > maxExtractedMessageLength {
		msg = msg[:maxExtractedMessageLength-3] + "..."
	}
	return msg
}
