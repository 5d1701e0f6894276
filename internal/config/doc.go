// Package config loads, normalizes, and validates scmutil configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// SCMUTIL_LOG_LEVEL. The Config type centralizes the logging and probe knobs
// the CLI needs along with the list of external tools that `scmutil check`
// verifies.
package config
