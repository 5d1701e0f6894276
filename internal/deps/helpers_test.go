package deps

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
)

type fakeRunner struct {
	mu          sync.Mutex
	outcome     Outcome
	err         error
	invocations []Invocation
}

func (f *fakeRunner) Run(_ context.Context, inv Invocation) (Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invocations = append(f.invocations, inv)
	return f.outcome, f.err
}

func (f *fakeRunner) last(t *testing.T) Invocation {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.invocations) == 0 {
		t.Fatal("runner was not invoked")
	}
	return f.invocations[len(f.invocations)-1]
}

type warning struct {
	category Category
	message  string
}

type recordingWarner struct {
	mu       sync.Mutex
	warnings []warning
}

func (r *recordingWarner) Warn(category Category, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, warning{category: category, message: message})
}

func (r *recordingWarner) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.warnings)
}

// writeScript writes an executable shell stub into a temp dir and returns its path.
func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), name)
	script := []byte("#!/bin/sh\n" + body + "\n")
	if err := os.WriteFile(path, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

const absentCommand = "scmutil-clearly-not-present-binary"
