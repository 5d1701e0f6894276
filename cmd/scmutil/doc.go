// Package main hosts the scmutil CLI entrypoint and command graph.
//
// The Cobra-based command tree exposes the metadata parser and the external
// tool probes to the terminal: reading pseudo-MIME files, checking whether a
// single tool can be launched, requiring a set of tools, and rendering the
// status of every tool listed in the configuration. It centralizes config
// resolution and structured logging setup so subcommands stay small.
package main
