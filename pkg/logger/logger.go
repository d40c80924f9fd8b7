// Package logger provides namespace-scoped debug loggers gated by the
// DEBUG environment variable, following https://www.npmjs.com/package/debug
// conventions:
//
//	DEBUG=*                  - enables every logger
//	DEBUG=validation:*       - enables all loggers under a namespace
//	DEBUG=ns1,ns2            - enables specific namespaces
//	DEBUG=rules:*,-rules:gen - enables a namespace but excludes patterns
//
// Output goes to stderr with the elapsed time since the namespace last
// logged, so timing gaps are visible without timestamps.
package logger

import (
	"fmt"
	"hash/fnv"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/actionsmith/inputguard/pkg/timeutil"
	"github.com/actionsmith/inputguard/pkg/tty"
)

// Logger is a debug logger bound to one namespace. The enabled state is
// fixed at construction from DEBUG; a disabled logger's methods are no-ops.
type Logger struct {
	namespace string
	enabled   bool
	color     string

	mu      sync.Mutex
	lastLog time.Time
}

var (
	debugEnv    = os.Getenv("DEBUG")
	debugColors = os.Getenv("DEBUG_COLORS") != "0"
	stderrIsTTY = tty.IsStderrTerminal()

	// ANSI 256-color codes, readable on light and dark backgrounds.
	palette = []string{
		"\033[38;5;33m",  // blue
		"\033[38;5;35m",  // green
		"\033[38;5;166m", // orange
		"\033[38;5;125m", // purple
		"\033[38;5;37m",  // cyan
		"\033[38;5;161m", // magenta
		"\033[38;5;136m", // yellow
		"\033[38;5;124m", // red
		"\033[38;5;28m",  // dark green
		"\033[38;5;63m",  // light blue
		"\033[38;5;95m",  // brown
		"\033[38;5;21m",  // dark blue
	}

	colorReset = "\033[0m"
)

// New creates a Logger for the given namespace. Namespaces follow a
// "package:file" convention, e.g. "validation:docker".
func New(namespace string) *Logger {
	return &Logger{
		namespace: namespace,
		enabled:   namespaceEnabled(namespace),
		color:     namespaceColor(namespace),
		lastLog:   time.Now(),
	}
}

// Enabled reports whether this logger writes anything.
func (l *Logger) Enabled() bool {
	return l.enabled
}

// Printf logs a formatted message with a trailing newline.
func (l *Logger) Printf(format string, args ...any) {
	if !l.enabled {
		return
	}
	l.emit(fmt.Sprintf(format, args...))
}

// Print logs a message with a trailing newline.
func (l *Logger) Print(args ...any) {
	if !l.enabled {
		return
	}
	l.emit(fmt.Sprint(args...))
}

func (l *Logger) emit(message string) {
	l.mu.Lock()
	now := time.Now()
	diff := now.Sub(l.lastLog)
	l.lastLog = now
	l.mu.Unlock()

	if l.color != "" {
		fmt.Fprintf(os.Stderr, "%s%s%s %s +%s\n", l.color, l.namespace, colorReset, message, timeutil.FormatDuration(diff))
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s +%s\n", l.namespace, message, timeutil.FormatDuration(diff))
}

// namespaceColor picks a stable per-namespace color via FNV-1a, matching
// how the debug npm package assigns colors.
func namespaceColor(namespace string) string {
	if !debugColors || !stderrIsTTY {
		return ""
	}
	h := fnv.New32a()
	if _, err := h.Write([]byte(namespace)); err != nil {
		return ""
	}
	return palette[h.Sum32()%uint32(len(palette))]
}

// namespaceEnabled evaluates the DEBUG patterns against a namespace.
// Exclusion patterns (leading -) take precedence over matches.
func namespaceEnabled(namespace string) bool {
	enabled := false
	for pattern := range strings.SplitSeq(debugEnv, ",") {
		pattern = strings.TrimSpace(pattern)
		if exclude, ok := strings.CutPrefix(pattern, "-"); ok {
			if matchPattern(namespace, exclude) {
				return false
			}
			continue
		}
		if matchPattern(namespace, pattern) {
			enabled = true
		}
	}
	return enabled
}

// matchPattern supports exact matches and a single * wildcard at either
// end or in the middle of the pattern.
func matchPattern(namespace, pattern string) bool {
	if pattern == "*" || pattern == namespace {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return false
	}
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(namespace, prefix)
	}
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok {
		return strings.HasSuffix(namespace, suffix)
	}
	parts := strings.SplitN(pattern, "*", 2)
	return strings.HasPrefix(namespace, parts[0]) && strings.HasSuffix(namespace, parts[1])
}
