// Package config loads, normalizes, and validates multicam configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MULTICAM_LOG_LEVEL. Detection thresholds, sanitizer and dilution durations,
// track-to-angle mapping, and the project frame rate all live here so the
// pipeline never hardcodes a tuning value.
//
// A Config is built once per run and treated as read-only afterwards.
package config
