package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"scmutil/internal/config"
)

// LogFileName is the JSON log written inside the configured log directory.
const LogFileName = "scmutil.log"

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Writer receives records in Format. Nil means stderr.
	Writer io.Writer
	// JSONFile, when set, also appends every record as a JSON line to this
	// path regardless of Format.
	JSONFile string
}

// CloseFunc releases the files a logger writes to.
type CloseFunc func() error

func noClose() error { return nil }

// New constructs a slog logger using the provided options. The returned
// CloseFunc must be called once the logger is no longer used; it is never nil.
func New(opts Options) (*slog.Logger, CloseFunc, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	var handler slog.Handler
	switch format := strings.ToLower(strings.TrimSpace(opts.Format)); format {
	case "json":
		handler = newJSONHandler(writer, level)
	case "console", "":
		handler = newPrettyHandler(writer, level)
	default:
		return nil, nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	path := strings.TrimSpace(opts.JSONFile)
	if path == "" {
		return slog.New(handler), noClose, nil
	}
	file, err := openLogFile(path)
	if err != nil {
		return nil, nil, err
	}
	handler = &mirrorHandler{primary: handler, file: newJSONHandler(file, level)}
	return slog.New(handler), file.Close, nil
}

// NewFromConfig creates a logger from the logging section of cfg. Records are
// written to w (stdout stays free for command output) and, when a log
// directory is configured, mirrored as JSON to LogFileName inside it.
func NewFromConfig(cfg *config.Config, w io.Writer) (*slog.Logger, CloseFunc, error) {
	opts := Options{Level: "info", Format: "console", Writer: w}
	if cfg != nil {
		opts.Level = cfg.Logging.Level
		opts.Format = cfg.Logging.Format
		if cfg.Logging.Dir != "" {
			opts.JSONFile = filepath.Join(cfg.Logging.Dir, LogFileName)
		}
	}
	return New(opts)
}

// ParseLevel maps a textual level onto slog levels. An empty value means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "info", "":
		return slog.LevelInfo, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log level: unsupported value %q", level)
	}
}
