// Package config loads, normalizes, and validates vencode configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes the encoder
// binaries, the initial encoding parameters offered to the operator, and the
// control loop's timing knobs so the CLI, the session, and the encoder runner
// all agree on a single source of values.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical option values, and clear validation errors.
package config
