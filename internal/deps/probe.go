package deps

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"scmutil/internal/logging"
)

const (
	// DefaultTimeout bounds a single probe.
	DefaultTimeout = 5 * time.Second
	// DefaultProbeArg is the argument passed when none are requested.
	DefaultProbeArg = "help"

	maxOutputTail = 200
)

// Prober checks whether external commands can be launched successfully.
type Prober struct {
	runner      Runner
	logger      *slog.Logger
	warner      Warner
	timeout     time.Duration
	defaultArgs []string
}

// Option configures a Prober.
type Option func(*Prober)

// WithRunner replaces the process runner.
func WithRunner(r Runner) Option {
	return func(p *Prober) {
		if r != nil {
			p.runner = r
		}
	}
}

// WithLogger sets the logger used for probe diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Prober) {
		p.logger = logger
	}
}

// WithWarner sets the destination for "tool not found" warnings.
func WithWarner(w Warner) Option {
	return func(p *Prober) {
		p.warner = w
	}
}

// WithTimeout sets the per-probe timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithDefaultArgs sets the arguments used when a probe does not pass Args.
func WithDefaultArgs(args ...string) Option {
	return func(p *Prober) {
		p.defaultArgs = append([]string(nil), args...)
	}
}

// NewProber returns a Prober that runs commands with ExecRunner, a 5 second
// timeout, and "help" as the only argument.
func NewProber(opts ...Option) *Prober {
	p := &Prober{
		runner:      ExecRunner{},
		timeout:     DefaultTimeout,
		defaultArgs: []string{DefaultProbeArg},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logging.NewComponentLogger(p.logger, "deps")
	if p.warner == nil {
		p.warner = LogWarner{Logger: p.logger}
	}
	return p
}

// Timeout returns the per-probe timeout.
func (p *Prober) Timeout() time.Duration {
	return p.timeout
}

type probeOptions struct {
	args    []string
	hasArgs bool
	noWarn  bool
}

// ProbeOption adjusts a single HasCommand call.
type ProbeOption func(*probeOptions)

// Args overrides the arguments passed to the command. Args() with no values
// runs the command bare.
func Args(args ...string) ProbeOption {
	return func(o *probeOptions) {
		o.args = append([]string(nil), args...)
		o.hasArgs = true
	}
}

// NoWarn suppresses the "tool not found" warning for this call.
func NoWarn() ProbeOption {
	return func(o *probeOptions) {
		o.noWarn = true
	}
}

// HasCommand runs name once and reports whether it exited with status zero.
// A missing binary or a timeout yields false with a nil error; only failures
// the runner cannot classify are returned. Unless NoWarn is given, a false
// result also emits one CategoryToolNotFound warning.
func (p *Prober) HasCommand(ctx context.Context, name string, opts ...ProbeOption) (bool, error) {
	var po probeOptions
	for _, opt := range opts {
		opt(&po)
	}
	args := po.args
	if !po.hasArgs {
		args = append([]string(nil), p.defaultArgs...)
	}

	logger := logging.WithContext(ctx, p.logger)
	outcome, err := p.runner.Run(ctx, Invocation{
		Name:    name,
		Args:    args,
		Dir:     ".",
		Timeout: p.timeout,
	})
	if err != nil {
		return false, fmt.Errorf("probe %s: %w", name, err)
	}

	var available bool
	switch outcome.Kind {
	case OutcomeNotFound:
		logger.Warn("command missing",
			logging.Command(name),
			logging.Error(outcome.Err),
		)
	case OutcomeTimedOut:
		logger.Warn("command timed out",
			logging.Command(name),
			logging.Timeout(p.timeout),
			logging.Error(outcome.Err),
		)
	case OutcomeExited:
		available = outcome.ExitCode == 0
		attrs := []logging.Attr{
			logging.Command(name),
			logging.CommandArgs(args),
			logging.ExitCode(outcome.ExitCode),
			logging.Elapsed(outcome.Elapsed),
		}
		if !available {
			if detail := outputTail(outcome); detail != "" {
				attrs = append(attrs, logging.String("output", detail))
			}
		}
		logger.Debug("command probed", logging.Args(attrs...)...)
	default:
		return false, fmt.Errorf("probe %s: unexpected outcome %s", name, outcome.Kind)
	}

	if !available && !po.noWarn {
		p.warner.Warn(CategoryToolNotFound, fmt.Sprintf("%q was not found", name))
	}
	return available, nil
}

// RequireCommand returns a *MissingCommandError when name is unavailable. It
// probes without a warning since the error already reports the problem.
func (p *Prober) RequireCommand(ctx context.Context, name string) error {
	ok, err := p.HasCommand(ctx, name, NoWarn())
	if err != nil {
		return err
	}
	if !ok {
		return &MissingCommandError{Name: name}
	}
	return nil
}

// outputTail returns the last non-empty line the command wrote, preferring
// stderr, so a failed probe shows why the tool refused to run.
func outputTail(outcome Outcome) string {
	for _, stream := range [][]byte{outcome.Stderr, outcome.Stdout} {
		lines := strings.Split(strings.TrimSpace(string(stream)), "\n")
		if last := strings.TrimSpace(lines[len(lines)-1]); last != "" {
			return truncate(last, maxOutputTail)
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
