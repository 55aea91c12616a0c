// Package config loads, normalizes, and validates organize configuration.
//
// It supplies defaults (current directory for source and destination, move as
// the action, the built-in RAW/video rules), expands user paths including
// tilde shortcuts, reads optional TOML files, and honours ORGANIZE_LOG_LEVEL
// and ORGANIZE_LOG_FORMAT. Command-line flags are layered on top by the CLI.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical extension sets, and clear validation errors.
package config
