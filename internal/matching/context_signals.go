package matching

import (
	"gamematch/internal/normalize"
	"gamematch/internal/signal"
)

// scoreTemporalSignals awards year proximity between the reference release
// date and any year embedded in the candidate title, and traces the
// reference's release status for the downstream filter.
func scoreTemporalSignals(res *MatchResult, title string, ctx *MatchContext) {
	release := ctx.Reference.ReleaseDate
	if release == nil {
		return
	}

	refYear := release.Year()
	if years := normalize.YearsInTitle(title); len(years) > 0 {
		best := -1
		for _, y := range years {
			diff := y - refYear
			if diff < 0 {
				diff = -diff
			}
			if best < 0 || diff < best {
				best = diff
			}
		}
		switch {
		case best == 0:
			res.add(20, "release year match")
		case best == 1:
			res.add(10, "release year within 1 year")
		case best <= 3:
			res.add(-5, "release year 2-3 years off")
		case best <= 5:
			res.add(-25, "release year 4-5 years off")
		default:
			res.add(-40, "release year more than 5 years off")
		}
	}

	now := ctx.now()
	if release.After(now) {
		days := int(release.Sub(now).Hours() / 24)
		res.add(-12, signal.ReleaseStatusUpcoming(days))
		return
	}
	if days := int(now.Sub(*release).Hours() / 24); days <= ctx.newReleaseWindow() {
		res.note(signal.ReleaseStatusNew(days))
	}
}

// scorePlatformSignals awards platform consistency between the candidate
// title and the reference's known platform list.
func scorePlatformSignals(res *MatchResult, title string, ctx *MatchContext) {
	if console, ok := normalize.DetectedConsoleToken(title); ok {
		if !referenceHasPlatform(ctx.Reference.Platforms, console) {
			if normalize.IsEmulatorRelease(title) {
				res.add(-5, "platform mismatch (emulator)")
			} else {
				res.add(-20, "platform conflicts with reference")
			}
			return
		}
	}
	if normalize.HasPlatformToken(title) {
		res.add(5, "platform keywords present")
	}
}

func referenceHasPlatform(platforms []string, token string) bool {
	for _, p := range platforms {
		if normalize.NormalizeName(p) == token {
			return true
		}
	}
	return false
}

// Size-ratio tiers, candidate size as a fraction of the authoritative
// reference size.
const (
	sizeNotAGameBelow   = 0.01
	sizeFarTooSmallBelow = 0.05
	sizeSmallBelow      = 0.20
	sizeExcellentUpTo   = 0.70
	sizeFullUpTo        = 1.00
	sizeCloseUpTo       = 1.30
)

// scoreSizeSignals validates the candidate's size against the authoritative
// reference size. Runs only when a reference size is known; a missing
// candidate size is itself a penalty then.
func scoreSizeSignals(res *MatchResult, ctx *MatchContext) {
	refSize := ctx.ReferenceSizeBytes
	if refSize <= 0 {
		return
	}
	candSize := ctx.CandidateSizeBytes
	if candSize <= 0 {
		res.add(-10, "candidate size unknown")
		return
	}

	ratio := float64(candSize) / float64(refSize)
	pct := ratio * 100
	switch {
	case ratio < sizeNotAGameBelow:
		res.add(-100, signal.SizeRatio("not a game", pct))
	case ratio < sizeFarTooSmallBelow:
		res.add(-50, signal.SizeRatio("far too small", pct))
	case ratio < sizeSmallBelow:
		res.add(-15, signal.SizeRatio("smaller than expected", pct))
	case ratio <= sizeExcellentUpTo:
		res.add(20, signal.SizeRatio("excellent repack size", pct))
	case ratio <= sizeFullUpTo:
		res.add(10, signal.SizeRatio("plausible full size", pct))
	case ratio <= sizeCloseUpTo:
		res.add(5, signal.SizeRatio("close to full size", pct))
	default:
		res.add(-20, signal.SizeRatio("suspiciously large", pct))
	}
}
