// Package config loads, normalizes, and validates nex configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// NEX_LOG_LEVEL. The Config type centralizes the knobs the organizer needs:
// exclusion patterns, project detection, duplicate hashing, lock and log
// locations.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
