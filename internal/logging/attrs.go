package logging

import (
	"log/slog"
	"time"
)

// Keys shared by parser and probe records.
const (
	FieldCommand  = "command"
	FieldArgs     = "args"
	FieldExitCode = "exit_code"
	FieldElapsed  = "elapsed"
	FieldTimeout  = "timeout"
	FieldPath     = "path"
)

type Attr = slog.Attr

func String(key, value string) Attr { return slog.String(key, value) }

func Any(key string, value any) Attr { return slog.Any(key, value) }

func Command(name string) Attr { return slog.String(FieldCommand, name) }

// CommandArgs records a copy of args so later mutation by the caller does not
// change the logged value.
func CommandArgs(args []string) Attr {
	return slog.Any(FieldArgs, append([]string{}, args...))
}

func ExitCode(code int) Attr { return slog.Int(FieldExitCode, code) }

func Elapsed(d time.Duration) Attr { return slog.Duration(FieldElapsed, d) }

func Timeout(d time.Duration) Attr { return slog.Duration(FieldTimeout, d) }

func Path(path string) Attr { return slog.String(FieldPath, path) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// Args converts attrs into the variadic form accepted by slog.Logger methods.
func Args(attrs ...Attr) []any {
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}
	return args
}

// NewComponentLogger tags logger with a component name. A nil logger yields
// a no-op logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// WarnEvent logs a categorized warning. Every record carries event_type,
// error_hint and impact; empty hint or impact fall back to generic text.
func WarnEvent(logger *slog.Logger, msg, eventType, hint, impact string, attrs ...Attr) {
	if logger == nil {
		return
	}
	if hint == "" {
		hint = "check logs for details"
	}
	if impact == "" {
		impact = "operation completed with warnings"
	}
	attrs = append(attrs,
		String(FieldEventType, eventType),
		String(FieldErrorHint, hint),
		String(FieldImpact, impact),
	)
	logger.Warn(msg, Args(attrs...)...)
}
