// Package config loads, normalizes, and validates gamematch configuration
// data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and layers GAMEMATCH_* environment overrides
// on top, including per-trust and per-source threshold variables. The Config
// type centralizes every knob the CLI needs.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical policy names, and clear validation errors.
package config
