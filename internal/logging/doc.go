// Package logging assembles the structured slog loggers used across
// gamematch commands.
//
// It owns the configurable console/JSON handlers and centralizes level and
// output plumbing. The console handler pulls a "component" attribute forward
// into the message prefix so batch runs stay readable.
//
// Prefer these constructors over hand-rolled slog setup so every command
// emits data with the same shape.
package logging
