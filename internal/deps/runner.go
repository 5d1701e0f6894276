package deps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"syscall"
	"time"
)

// waitDelay bounds how long Run waits for output pipes after the child has
// been killed; grandchildren may still hold them open.
const waitDelay = 500 * time.Millisecond

// OutcomeKind classifies a finished invocation.
type OutcomeKind int

const (
	// OutcomeExited means the process ran and exited; ExitCode is meaningful.
	OutcomeExited OutcomeKind = iota
	// OutcomeNotFound means the binary is missing or cannot be launched.
	OutcomeNotFound
	// OutcomeTimedOut means the process was killed after exceeding the timeout.
	OutcomeTimedOut
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeExited:
		return "exited"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeTimedOut:
		return "timed_out"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Invocation describes a single external command run.
type Invocation struct {
	Name    string
	Args    []string
	Dir     string
	Timeout time.Duration
}

// Outcome is the classified result of an invocation. Err is set for
// OutcomeNotFound and OutcomeTimedOut and wraps ErrCommandNotFound or
// ErrCommandTimedOut respectively.
type Outcome struct {
	Kind     OutcomeKind
	ExitCode int
	Err      error
	Stdout   []byte
	Stderr   []byte
	Elapsed  time.Duration
}

// Runner executes invocations. The error return is reserved for failures that
// are neither "not found", "timed out", nor a normal exit.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (Outcome, error)
}

// ExecRunner runs invocations on the local host with os/exec.
type ExecRunner struct{}

// Run starts the command, waits for it, and classifies the result. When the
// timeout fires the child (and on Unix its whole process group) is killed and
// reaped before Run returns.
func (ExecRunner) Run(ctx context.Context, inv Invocation) (Outcome, error) {
	runCtx := ctx
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, inv.Name, inv.Args...) //nolint:gosec
	cmd.Dir = inv.Dir
	if cmd.Dir == "" {
		cmd.Dir = "."
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	configureProcessGroup(cmd)

	start := time.Now()
	err := cmd.Run()
	outcome := Outcome{
		Stdout:  stdout.Bytes(),
		Stderr:  stderr.Bytes(),
		Elapsed: time.Since(start),
	}

	if err == nil {
		outcome.Kind = OutcomeExited
		return outcome, nil
	}

	if cmd.Process == nil && isLaunchFailure(err) {
		outcome.Kind = OutcomeNotFound
		outcome.Err = fmt.Errorf("%w: %w", ErrCommandNotFound, err)
		return outcome, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return outcome, ctxErr
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		outcome.Kind = OutcomeTimedOut
		outcome.ExitCode = exitCode(cmd)
		outcome.Err = fmt.Errorf("%w after %s", ErrCommandTimedOut, inv.Timeout)
		return outcome, nil
	}
	if cmd.Process == nil {
		return outcome, fmt.Errorf("start %s: %w", inv.Name, err)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		outcome.Kind = OutcomeExited
		outcome.ExitCode = exitErr.ExitCode()
		return outcome, nil
	}
	if errors.Is(err, exec.ErrWaitDelay) {
		// Exited but a descendant kept the output pipes open.
		outcome.Kind = OutcomeExited
		outcome.ExitCode = exitCode(cmd)
		return outcome, nil
	}
	return outcome, fmt.Errorf("run %s: %w", inv.Name, err)
}

func exitCode(cmd *exec.Cmd) int {
	if cmd.ProcessState == nil {
		return -1
	}
	return cmd.ProcessState.ExitCode()
}

// isLaunchFailure reports whether a start error means the binary is absent or
// not executable.
func isLaunchFailure(err error) bool {
	var execErr *exec.Error
	switch {
	case errors.As(err, &execErr):
		return true
	case errors.Is(err, exec.ErrNotFound),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission),
		errors.Is(err, syscall.ENOEXEC):
		return true
	default:
		return false
	}
}
