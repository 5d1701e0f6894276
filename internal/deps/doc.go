// Package deps checks whether the external tools scmutil relies on can be
// launched.
//
// A probe runs the tool once (by default as "<name> help") from the current
// directory under a hard timeout. A missing binary or a timeout is an expected
// outcome: it is logged, optionally reported as a "tool not found" warning, and
// surfaced as false rather than as an error. Only failures the runner cannot
// classify propagate to the caller. RequireCommand turns an unavailable tool
// into a MissingCommandError, and CheckBinaries evaluates a list of
// requirements for status output.
package deps
