// Package mlfilter applies a machine-learned ensemble on top of the
// heuristic match decision.
//
// The model artifact is a JSON file holding a logistic head and, optionally,
// a tree ensemble; it is loaded once, validated against an embedded schema,
// and shared immutably across all match calls. Features are extracted by
// parsing the heuristic scorer's reason strings through the signal package's
// rule table, so the textual trace is the only coupling between the two
// layers.
//
// A missing or corrupt artifact yields a nil *Filter, and a nil filter's
// Apply is a no-op: the heuristic result is then authoritative.
package mlfilter
