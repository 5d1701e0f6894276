package deps

import (
	"errors"
	"fmt"
)

var (
	// ErrCommandNotFound marks an outcome where the binary does not exist or
	// cannot be launched.
	ErrCommandNotFound = errors.New("command not found")
	// ErrCommandTimedOut marks an outcome where the invocation exceeded its timeout.
	ErrCommandTimedOut = errors.New("command timed out")
	// ErrRequiredCommandMissing matches every MissingCommandError.
	ErrRequiredCommandMissing = errors.New("required command missing")
)

// MissingCommandError is returned by RequireCommand when a tool is unavailable.
type MissingCommandError struct {
	Name string
}

func (e *MissingCommandError) Error() string {
	return fmt.Sprintf("%q was not found", e.Name)
}

// Is reports whether target is ErrRequiredCommandMissing.
func (e *MissingCommandError) Is(target error) bool {
	return target == ErrRequiredCommandMissing
}
