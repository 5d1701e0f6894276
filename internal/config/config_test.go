package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"scmutil/internal/config"
)

func TestLoadDefaultsWhenConfigMissing(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	want := filepath.Join(tempHome, ".config", "scmutil", "config.toml")
	if resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.ProbeTimeout() != 5*time.Second {
		t.Fatalf("expected 5s probe timeout, got %s", cfg.ProbeTimeout())
	}
	if args := cfg.ProbeArgs(); len(args) != 1 || args[0] != "help" {
		t.Fatalf("unexpected default probe args: %v", args)
	}
	if !cfg.Probe.Warn {
		t.Fatal("expected warnings enabled by default")
	}
	if len(cfg.Tools) == 0 {
		t.Fatal("expected default tools")
	}
}

func TestLoadExplicitFileReplacesTools(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[logging]
format = "JSON"
level = "Debug"

[probe]
timeout_seconds = 2
default_args = ["--version"]
warn = false

[[tools]]
name = "make"
description = "  builds things  "
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected explicit path to resolve, got %q exists=%v", resolved, exists)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging, got %+v", cfg.Logging)
	}
	if cfg.ProbeTimeout() != 2*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.ProbeTimeout())
	}
	if cfg.Probe.Warn {
		t.Fatal("expected warn=false from file")
	}
	if len(cfg.Tools) != 1 {
		t.Fatalf("expected file tools to replace defaults, got %+v", cfg.Tools)
	}
	tool := cfg.Tools[0]
	if tool.Command != "make" {
		t.Fatalf("expected command to default to name, got %q", tool.Command)
	}
	if tool.Description != "builds things" {
		t.Fatalf("expected trimmed description, got %q", tool.Description)
	}
}

func TestProbeArgsReturnsCopy(t *testing.T) {
	cfg := config.Default()
	args := cfg.ProbeArgs()
	args[0] = "mutated"
	if cfg.Probe.DefaultArgs[0] != "help" {
		t.Fatalf("ProbeArgs leaked backing array: %v", cfg.Probe.DefaultArgs)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "warn")
	t.Setenv(config.EnvProbeTimeout, "9")
	path := filepath.Join(t.TempDir(), "missing.toml")

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected missing file")
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected env log level, got %q", cfg.Logging.Level)
	}
	if cfg.ProbeTimeout() != 9*time.Second {
		t.Fatalf("expected env timeout, got %s", cfg.ProbeTimeout())
	}
}

func TestEnvOverrideRejectsBadTimeout(t *testing.T) {
	t.Setenv(config.EnvProbeTimeout, "soon")
	if _, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for non-numeric timeout")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "defaults"},
		{
			name:    "zero timeout",
			mutate:  func(c *config.Config) { c.Probe.TimeoutSeconds = 0 },
			wantErr: "probe.timeout_seconds",
		},
		{
			name:    "bad format",
			mutate:  func(c *config.Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
		{
			name:    "bad level",
			mutate:  func(c *config.Config) { c.Logging.Level = "loud" },
			wantErr: "logging.level",
		},
		{
			name: "duplicate tool",
			mutate: func(c *config.Config) {
				c.Tools = append(c.Tools, config.Tool{Name: "git", Command: "git"})
			},
			wantErr: "duplicated",
		},
		{
			name:    "unnamed tool",
			mutate:  func(c *config.Config) { c.Tools = []config.Tool{{Command: "git"}} },
			wantErr: "tools[0].name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateSampleProducesLoadableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample is not valid TOML: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if len(cfg.Tools) != len(decoded.Tools) {
		t.Fatalf("tool count mismatch: %d vs %d", len(cfg.Tools), len(decoded.Tools))
	}
}

func TestExpandPathHandlesTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := config.ExpandPath("~/logs")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "logs") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}
