package engine

import (
	"gamematch/internal/matching"
	"gamematch/internal/mlfilter"
)

// Engine ties the rejection gate, the heuristic scorer, and the model filter
// into one match call. Construct once and share; it holds only the immutable
// filter handle, so concurrent calls are safe.
type Engine struct {
	filter *mlfilter.Filter
}

// New builds an engine. A nil filter disables the model stage; the heuristic
// result is then authoritative.
func New(filter *mlfilter.Filter) *Engine {
	return &Engine{filter: filter}
}

// Match evaluates one candidate title against the reference in ctx. Data
// flows strictly forward: gate, scorer, filter. A gate rejection returns
// score zero and the accumulated reject reasons; the scorer never runs.
func (e *Engine) Match(title string, ctx *matching.MatchContext) matching.MatchResult {
	if decision := matching.ShouldReject(title, ctx); decision.Rejected {
		return matching.MatchResult{Matches: false, Score: 0, Reasons: decision.Reasons}
	}
	result := matching.Score(title, ctx)
	e.filter.Apply(&result)
	return result
}
