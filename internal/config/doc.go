// Package config loads, normalizes, and validates tablehash configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from an explicit --config path, the
// default ~/.config/tablehash/config.toml, or a project-local tablehash.toml.
// Always obtain settings through this package so downstream code receives
// sanitized paths and validated values.
package config
