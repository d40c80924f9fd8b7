package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// SlogHandler adapts a Logger to slog.Handler so libraries that take a
// *slog.Logger can route through the DEBUG-gated namespace loggers.
type SlogHandler struct {
	logger *Logger
}

// NewSlogHandler wraps an existing Logger.
func NewSlogHandler(logger *Logger) *SlogHandler {
	return &SlogHandler{logger: logger}
}

// Enabled reports whether records at any level are handled. Level
// filtering is DEBUG-pattern based, not severity based.
func (h *SlogHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return h.logger.Enabled()
}

// Handle renders the record as "message key=value ..." with a severity
// prefix and forwards it to the wrapped Logger.
func (h *SlogHandler) Handle(_ context.Context, r slog.Record) error {
	if !h.logger.Enabled() {
		return nil
	}

	var msg strings.Builder
	msg.WriteString(r.Message)
	r.Attrs(func(a slog.Attr) bool {
		msg.WriteString(" " + a.Key + "=" + formatSlogValue(a.Value))
		return true
	})

	prefix := ""
	switch r.Level {
	case slog.LevelDebug:
		prefix = "[DEBUG] "
	case slog.LevelInfo:
		prefix = "[INFO] "
	case slog.LevelWarn:
		prefix = "[WARN] "
	case slog.LevelError:
		prefix = "[ERROR] "
	}

	h.logger.Print(prefix + msg.String())
	return nil
}

// WithAttrs returns the handler unchanged; attributes are not persisted.
func (h *SlogHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

// WithGroup returns the handler unchanged; groups are not persisted.
func (h *SlogHandler) WithGroup(_ string) slog.Handler {
	return h
}

func formatSlogValue(v any) string {
	if val, ok := v.(slog.Value); ok {
		return val.String()
	}
	return fmt.Sprint(v)
}

// NewSlogLogger creates a *slog.Logger backed by a namespace Logger.
func NewSlogLogger(namespace string) *slog.Logger {
	return slog.New(NewSlogHandler(New(namespace)))
}

// Discard returns a slog.Logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
