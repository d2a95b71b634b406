package matching

import (
	"regexp"
	"strings"

	"gamematch/internal/normalize"
)

// scoreSequelSignals awards sequel-number agreement and franchise-sibling
// penalties.
func scoreSequelSignals(res *MatchResult, title string, ctx *MatchContext, sig CandidateSignals) {
	ref := normalize.ExtractSequelInfo(ctx.Reference.Name)
	cand := normalize.ExtractSequelInfo(title)

	numberFlagged := false
	switch {
	case ref.Number != 0 && cand.Number != 0 && ref.Number == cand.Number:
		res.add(25, "sequel numbers match")
	case ref.Number != 0 && cand.Number != 0:
		res.add(-25, "sequel number mismatch")
		numberFlagged = true
	case ref.Number == 0 && cand.Number != 0:
		res.add(-30, "sequel number only in candidate")
		numberFlagged = true
	}

	if !numberFlagged && normalize.IsDifferentSequel(ctx.Reference.Name, title) {
		res.add(-35, "different sequel")
	}

	scoreFranchiseSiblings(res, title, ctx, sig)
}

// scoreFranchiseSiblings penalizes candidates that name a related-but-
// different entry in the franchise. A candidate that is merely an edition
// variant of the reference gets a small bonus instead. The classifier's
// multi-game signal escalates a single sibling hit to the bundle penalty.
func scoreFranchiseSiblings(res *MatchResult, title string, ctx *MatchContext, sig CandidateSignals) {
	candNorm := normalize.NormalizeName(title)
	refNorm := normalize.NormalizeName(ctx.Reference.Name)

	if normalize.IsSameGameVariant(ctx.Reference.Name, title) {
		if candNorm != refNorm {
			res.add(10, "edition variant of same game")
		}
		return
	}

	matched := countSiblingMatches(candNorm, title, ctx, refNorm)
	if matched == 0 {
		return
	}
	if matched > 1 || sig.MultiGame {
		res.add(-90, "franchise bundle match")
		return
	}
	res.add(-60, "franchise sibling match")
}

func countSiblingMatches(candNorm, title string, ctx *MatchContext, refNorm string) int {
	matched := 0
	seen := make(map[string]struct{})

	names := make([]string, 0, len(ctx.RelatedGameNames)+len(ctx.Reference.FranchiseSiblingNames))
	names = append(names, ctx.RelatedGameNames...)
	names = append(names, ctx.Reference.FranchiseSiblingNames...)
	for _, name := range names {
		n := normalize.NormalizeName(name)
		if n == "" || n == refNorm {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		if phraseContains(candNorm, n) {
			seen[n] = struct{}{}
			matched++
		}
	}

	for _, pattern := range ctx.RelatedGamePatterns {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			// Caller-supplied patterns are loosely validated; a bad one is
			// no signal, not a fault.
			continue
		}
		if re.MatchString(title) || re.MatchString(candNorm) {
			key := "pattern:" + strings.ToLower(pattern)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			matched++
		}
	}
	return matched
}
