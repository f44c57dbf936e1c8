// Package config loads, normalizes, and validates studioctl configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// STUDIOCTL_API_TOKEN. The Config type centralizes every knob the CLI and
// dashboard need, so backend connection details and local cache locations are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
