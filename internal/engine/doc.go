// Package engine is the facade over the match pipeline: rejection gate,
// heuristic scorer, and model filter, in that order, with no feedback
// between stages inside one call.
package engine
