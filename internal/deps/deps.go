package deps

import (
	"context"
	"fmt"
	"strings"
)

// Requirement defines an external tool scmutil relies on.
type Requirement struct {
	Name        string
	Command     string
	Args        []string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries probes each requirement once, without warnings, and reports
// availability. A nil Args uses the prober's default arguments.
func CheckBinaries(ctx context.Context, prober *Prober, requirements []Requirement) ([]Status, error) {
	if prober == nil {
		prober = NewProber()
	}
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}

		opts := []ProbeOption{NoWarn()}
		if req.Args != nil {
			opts = append(opts, Args(req.Args...))
		}
		ok, err := prober.HasCommand(ctx, cmd, opts...)
		if err != nil {
			return results, fmt.Errorf("check %s: %w", req.Name, err)
		}
		status.Available = ok
		if !ok {
			status.Detail = fmt.Sprintf("binary %q not available", cmd)
		}
		results = append(results, status)
	}
	return results, nil
}

// MissingRequired returns the non-optional statuses that are unavailable.
func MissingRequired(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}
