package matching

import (
	"strings"

	"gamematch/internal/normalize"
)

// scoreNameSignals awards the name-containment signal group.
func scoreNameSignals(res *MatchResult, title string, ctx *MatchContext) {
	refNorm := normalize.NormalizeName(ctx.Reference.Name)
	candNorm := normalize.NormalizeName(title)
	if refNorm == "" || candNorm == "" {
		return
	}

	if refNorm == candNorm {
		res.add(50, "exact name match")
	} else if phraseContains(candNorm, refNorm) {
		refWords := strings.Fields(refNorm)
		if len(refWords) <= 2 {
			// Short names are weak evidence on their own; scale by how much
			// of the candidate the name occupies.
			occupancy := float64(len(refNorm)) / float64(len(candNorm))
			switch {
			case occupancy >= 0.8:
				res.add(35, "name occupies most of title")
			case occupancy >= 0.5:
				res.add(20, "name occupies half of title")
			default:
				res.add(10, "name contained in longer title")
			}
		} else {
			res.add(25, "title contains game name")
		}
		if strings.HasPrefix(candNorm, refNorm) {
			res.add(10, "title starts with game name")
		}
	} else if phraseContains(candNorm, " s "+refNorm) {
		// "Brand's Name" releases keep the publisher prefix the catalog
		// drops.
		res.add(15, "prefixed brand match")
	}

	scoreColonSubtitle(res, refNorm, candNorm, title, ctx)
	scoreAlternateNames(res, candNorm, ctx)
	scoreEditionTitles(res, candNorm, ctx)
}

// scoreColonSubtitle credits candidates that carry only the part before the
// colon of a "Name: Subtitle" reference. It must not fire when the remainder
// names a different numbered sequel.
func scoreColonSubtitle(res *MatchResult, refNorm, candNorm, title string, ctx *MatchContext) {
	colon := strings.Index(ctx.Reference.Name, ":")
	if colon <= 0 {
		return
	}
	head := normalize.NormalizeName(ctx.Reference.Name[:colon])
	if head == "" || head == refNorm || !phraseContains(candNorm, head) {
		return
	}
	if normalize.IsDifferentSequel(ctx.Reference.Name, title) {
		return
	}
	res.add(20, "colon subtitle match")
}

// scoreAlternateNames credits a match on any catalog alias long enough to be
// meaningful: at least three words, against a candidate of comparable length.
func scoreAlternateNames(res *MatchResult, candNorm string, ctx *MatchContext) {
	if len(strings.Fields(candNorm)) < 3 {
		return
	}
	for _, alt := range ctx.Reference.AlternativeNames {
		altNorm := normalize.NormalizeName(alt.Name)
		if len(strings.Fields(altNorm)) < 3 {
			continue
		}
		if phraseContains(candNorm, altNorm) {
			res.add(30, "matches alternate name")
			return
		}
	}
}

func scoreEditionTitles(res *MatchResult, candNorm string, ctx *MatchContext) {
	for _, edition := range ctx.Reference.EditionTitles {
		edNorm := normalize.NormalizeName(edition)
		if edNorm == "" {
			continue
		}
		if candNorm == edNorm || phraseContains(candNorm, edNorm) {
			res.add(20, "matches edition title")
			return
		}
	}
}

// phraseContains reports whether needle occurs in hay on word boundaries.
func phraseContains(hay, needle string) bool {
	if hay == "" || needle == "" {
		return false
	}
	return strings.Contains(" "+hay+" ", " "+strings.TrimSpace(needle)+" ")
}
