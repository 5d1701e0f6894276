package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"scmutil/internal/config"
	"scmutil/internal/logging"
)

func mustNew(t *testing.T, opts logging.Options) *slog.Logger {
	t.Helper()
	logger, closeLog, err := logging.New(opts)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := closeLog(); err != nil {
			t.Errorf("close logger: %v", err)
		}
	})
	return logger
}

func decodeJSONLines(t *testing.T, data []byte) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Fatalf("decode json line %q: %v", line, err)
		}
		records = append(records, record)
	}
	return records
}

func TestConsoleLoggerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := mustNew(t, logging.Options{Level: "info", Format: "console", Writer: &buf})

	logging.NewComponentLogger(logger, "deps").Warn("command missing",
		logging.Command("hg"),
		logging.Error(errors.New("exec: not found")),
	)

	out := buf.String()
	if !strings.Contains(out, "WARN deps: command missing") {
		t.Fatalf("expected level, component, and message, got %q", out)
	}
	if !strings.Contains(out, "command=hg") {
		t.Fatalf("expected command attr, got %q", out)
	}
	if !strings.Contains(out, `error="exec: not found"`) {
		t.Fatalf("expected quoted error, got %q", out)
	}
}

func TestConsoleLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := mustNew(t, logging.Options{Level: "warn", Writer: &buf})
	logger.Info("hidden")
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}
}

func TestConsoleLoggerFormatsStringMapsAndArgs(t *testing.T) {
	var buf bytes.Buffer
	logger := mustNew(t, logging.Options{Level: "debug", Writer: &buf})

	args := []string{"help"}
	logger.Debug("mime data",
		logging.Any("data", map[string]string{"b": "2", "a": "1"}),
		logging.CommandArgs(args),
	)
	args[0] = "mutated"

	want := `data="{\"a\": \"1\", \"b\": \"2\"}"`
	if !strings.Contains(buf.String(), want) {
		t.Fatalf("expected sorted map rendering %s, got %q", want, buf.String())
	}
	if !strings.Contains(buf.String(), "args=[help]") {
		t.Fatalf("expected args rendering, got %q", buf.String())
	}
}

func TestJSONLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	logger := mustNew(t, logging.Options{Level: "debug", Format: "json", Writer: &buf})
	logger.Warn("command timed out", logging.Command("slow"), logging.Timeout(2*time.Second), logging.ExitCode(-1))

	records := decodeJSONLines(t, buf.Bytes())
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	record := records[0]
	if record["level"] != "warn" {
		t.Fatalf("expected lowercase level, got %v", record["level"])
	}
	if record["msg"] != "command timed out" {
		t.Fatalf("unexpected msg %v", record["msg"])
	}
	ts, ok := record["ts"].(string)
	if !ok {
		t.Fatalf("expected string ts field, got %v", record["ts"])
	}
	if _, err := time.Parse(time.RFC3339Nano, ts); err != nil {
		t.Fatalf("ts %q is not RFC3339: %v", ts, err)
	}
	if _, ok := record["time"]; ok {
		t.Fatal("expected time key to be renamed to ts")
	}
	if record["timeout"] != "2s" {
		t.Fatalf("expected duration rendered as string, got %v", record["timeout"])
	}
	if record["command"] != "slow" || record["exit_code"] != float64(-1) {
		t.Fatalf("unexpected attrs %v", record)
	}
}

func TestNewRejectsUnknownFormatAndLevel(t *testing.T) {
	if _, _, err := logging.New(logging.Options{Format: "xml", Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if _, _, err := logging.New(logging.Options{Level: "chatty", Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unsupported level")
	}
}

func TestNewFromConfigWritesToWriterAndLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Dir = filepath.Join(t.TempDir(), "logs")

	var buf bytes.Buffer
	logger, closeLog, err := logging.NewFromConfig(&cfg, &buf)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.With(logging.Command("git")).Warn("written to file")
	logger.Debug("filtered")
	if err := closeLog(); err != nil {
		t.Fatalf("close logger: %v", err)
	}

	if !strings.Contains(buf.String(), "written to file command=git") {
		t.Fatalf("expected console record on writer, got %q", buf.String())
	}
	content, err := os.ReadFile(filepath.Join(cfg.Logging.Dir, logging.LogFileName))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	records := decodeJSONLines(t, content)
	if len(records) != 1 {
		t.Fatalf("expected one JSON record, got %d: %q", len(records), content)
	}
	if records[0]["msg"] != "written to file" || records[0]["command"] != "git" {
		t.Fatalf("unexpected file record %v", records[0])
	}
}

func TestCloseStopsFileWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	var buf bytes.Buffer
	logger, closeLog, err := logging.New(logging.Options{Writer: &buf, JSONFile: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("before close")
	if err := closeLog(); err != nil {
		t.Fatalf("close logger: %v", err)
	}
	if err := closeLog(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	logger.Info("after close")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(content), "after close") {
		t.Fatalf("expected no writes after close, got %q", content)
	}
	if !strings.Contains(buf.String(), "after close") {
		t.Fatalf("expected primary sink to keep working, got %q", buf.String())
	}
}

func TestNewWithoutFileHasNoopClose(t *testing.T) {
	_, closeLog, err := logging.New(logging.Options{Writer: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if closeLog == nil {
		t.Fatal("expected non-nil close func")
	}
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestWithContextAddsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	logger := mustNew(t, logging.Options{Level: "info", Writer: &buf})

	ctx := logging.WithCorrelationID(context.Background(), "run-123")
	logging.WithContext(ctx, logger).Info("tagged")

	if !strings.Contains(buf.String(), "correlation_id=run-123") {
		t.Fatalf("expected correlation id, got %q", buf.String())
	}
	if id, ok := logging.CorrelationIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("unexpected correlation id %q (%v)", id, ok)
	}
	if _, ok := logging.CorrelationIDFromContext(context.Background()); ok {
		t.Fatal("expected no correlation id on empty context")
	}
}

func TestWarnEventFillsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := mustNew(t, logging.Options{Level: "info", Writer: &buf})
	logging.WarnEvent(logger, "degraded", "probe_failed", "", "custom")

	out := buf.String()
	for _, want := range []string{"event_type=probe_failed", `error_hint="check logs for details"`, "impact=custom"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("expected nop logger to be disabled")
	}
	logging.WarnEvent(nil, "ignored", "none", "", "")
}
