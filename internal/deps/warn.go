package deps

import (
	"log/slog"

	"scmutil/internal/logging"
)

// Category classifies a non-fatal warning.
type Category string

// CategoryToolNotFound is emitted when a probed tool is unavailable.
const CategoryToolNotFound Category = "tool_not_found"

// Warner receives non-fatal warnings. Implementations must not block.
type Warner interface {
	Warn(category Category, message string)
}

// LogWarner reports warnings as WARN records on Logger.
type LogWarner struct {
	Logger *slog.Logger
}

func (w LogWarner) Warn(category Category, message string) {
	logging.WarnEvent(w.Logger, message, string(category),
		"install the tool or add it to PATH",
		"features that depend on the tool are unavailable",
	)
}
