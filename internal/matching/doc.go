// Package matching decides whether a scraped release title is a specific
// catalog item.
//
// The pipeline runs strictly forward: Classify derives named boolean signals
// from the candidate title, ShouldReject applies the hard-reject rules and
// aborts with a zero score on any hit, and Score accumulates a bounded
// integer from independent heuristic signal groups, appending one reason
// string per signal that fires. The reasons list is a wire contract: the
// model filter and offline tooling parse it back into features, so formats
// rendered here come from the signal package.
//
// Every function is pure; a match call never errors, blocks, or touches I/O.
package matching
