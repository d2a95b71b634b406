package matching

import (
	"gamematch/internal/signal"
)

// Score runs the additive/subtractive heuristic over a candidate that
// survived the rejection gate. Every signal that fires appends one reason;
// the final score is clamped to [0, 150] and compared against the context's
// minimum match score.
func Score(title string, ctx *MatchContext) MatchResult {
	var res MatchResult
	sig, _ := Classify(title, ctx)

	scoreNameSignals(&res, title, ctx)
	scoreWordSignals(&res, title, ctx)
	scoreSequelSignals(&res, title, ctx, sig)
	scoreTemporalSignals(&res, title, ctx)
	scoreDescriptionSignals(&res, ctx)
	scorePlatformSignals(&res, title, ctx)
	scoreSizeSignals(&res, ctx)
	appendSourceTraces(&res, ctx)

	if res.Score < scoreFloor {
		res.Score = scoreFloor
	}
	if res.Score > scoreCeil {
		res.Score = scoreCeil
	}
	res.Matches = res.Score >= ctx.minScore()
	return res
}

// appendSourceTraces records source identity and availability counters for
// the downstream feature extractor. These traces never influence the
// heuristic score.
func appendSourceTraces(res *MatchResult, ctx *MatchContext) {
	if ctx.TrustLevel != "" {
		res.note(signal.SourceTrust(ctx.TrustLevel))
	}
	if ctx.SourceKey != "" {
		res.note(signal.SourceKey(ctx.SourceKey))
	}
	if ctx.Seeders > 0 {
		res.note(signal.Seeders(ctx.Seeders))
	}
	if ctx.Leechers > 0 {
		res.note(signal.Leechers(ctx.Leechers))
	}
	if ctx.Grabs > 0 {
		res.note(signal.Grabs(ctx.Grabs))
	}
}
