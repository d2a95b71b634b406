package matching

import (
	"fmt"
	"strings"
	"time"

	"gamematch/internal/normalize"
)

// RejectDecision is the outcome of the rejection gate. A non-empty reason
// list aborts the pipeline before the heuristic scorer runs.
type RejectDecision struct {
	Rejected bool
	Reasons  []string
}

const (
	// unreleasedGuardWindow is how far in the future a release date must be
	// before scene/repack candidates are treated as fakes.
	unreleasedGuardWindow = 21 * 24 * time.Hour

	// updateDismissSize: archives above this are full-game rips that merely
	// mention an included update.
	updateDismissSize = int64(5_000_000_000)

	// yearGapRejectYears is the minimum distance of every in-title year from
	// the reference year before the candidate is considered a different
	// game's release.
	yearGapRejectYears = 8

	// lowPlatformConfidence marks detector output too weak to reject on in
	// non-strict mode.
	lowPlatformConfidence = 0.5
)

// ShouldReject evaluates the hard-reject rules in order, accumulating every
// reason that applies. Category flags on the reference suppress the matching
// rule: a reference that is itself an update must not reject update-looking
// candidates.
func ShouldReject(title string, ctx *MatchContext) RejectDecision {
	var d RejectDecision
	sig, ref := Classify(title, ctx)

	if reason, ok := platformMismatch(ctx); ok {
		d.Reasons = append(d.Reasons, reason)
	}

	if normalize.IsMalwarePattern(title, ctx.CandidateSizeBytes) {
		d.Reasons = append(d.Reasons, "malware pattern")
	}

	// Companion-content rules, each suppressed when a full-bundle indicator
	// marks the release as containing the game itself.
	if !sig.Bundle {
		if sig.NonGame {
			d.Reasons = append(d.Reasons, "non game content")
		}
		if sig.NonGameMedia {
			d.Reasons = append(d.Reasons, "non game media")
		}
		if sig.LanguagePack {
			d.Reasons = append(d.Reasons, "language pack only")
		}
		if sig.CrackFix {
			d.Reasons = append(d.Reasons, "crack fix only")
		}
	}

	if sig.Update && !ref.IsUpdate && !sig.Bundle && ctx.CandidateSizeBytes <= updateDismissSize {
		d.Reasons = append(d.Reasons, "update only release")
	}

	if sig.DLC && !ref.IsDLC && !containsAnyReferenceName(title, ctx) {
		d.Reasons = append(d.Reasons, "dlc only release")
	}

	if sig.EpisodeOnly && !ref.IsEpisodic {
		d.Reasons = append(d.Reasons, "episode or season only")
	}

	if sig.Mod && !ref.IsMod && !((sig.Emulator || sig.Bundle) && containsAnyReferenceName(title, ctx)) {
		d.Reasons = append(d.Reasons, "mod or fan content")
	}

	if sig.Demo && ctx.Reference.Category.IsMainGameLike() {
		d.Reasons = append(d.Reasons, "demo or test build")
	}

	d.Reasons = append(d.Reasons, unreleasedGuardReasons(title, ctx, sig)...)

	if reason, ok := yearGapReject(title, ctx); ok {
		d.Reasons = append(d.Reasons, reason)
	}

	if reason, ok := singleWordExtraWordsReject(title, ctx); ok {
		d.Reasons = append(d.Reasons, reason)
	}

	d.Rejected = len(d.Reasons) > 0
	return d
}

func platformMismatch(ctx *MatchContext) (string, bool) {
	if ctx.PreferredPlatform == "" || ctx.DetectedPlatform == nil {
		return "", false
	}
	det := ctx.DetectedPlatform
	if det.Platform == "" || strings.EqualFold(det.Platform, ctx.PreferredPlatform) {
		return "", false
	}
	if det.Confidence < lowPlatformConfidence && !ctx.StrictPlatform {
		return "", false
	}
	return fmt.Sprintf("platform mismatch (%s)", det.Platform), true
}

// containsAnyReferenceName reports whether the candidate names the reference
// itself, by primary name, alternate name, or explicit inclusion language.
func containsAnyReferenceName(title string, ctx *MatchContext) bool {
	cand := " " + normalize.NormalizeName(title) + " "
	if n := normalize.NormalizeName(ctx.Reference.Name); n != "" && strings.Contains(cand, " "+n+" ") {
		return true
	}
	for _, alt := range ctx.Reference.AlternativeNames {
		if n := normalize.NormalizeName(alt.Name); n != "" && strings.Contains(cand, " "+n+" ") {
			return true
		}
	}
	for _, marker := range []string{" incl ", " includes ", " included ", " with all "} {
		if strings.Contains(cand, marker) {
			return true
		}
	}
	return false
}

// unreleasedGuardReasons rejects scene, repack, and crack releases for a
// reference whose release date is still in the future: nobody repacks a game
// that does not exist yet. Candidates carrying an explicit pre-release marker
// are allowed through; a third-party source wearing a known repacker's name
// for an unreleased game is always rejected.
func unreleasedGuardReasons(title string, ctx *MatchContext, sig CandidateSignals) []string {
	release := ctx.Reference.ReleaseDate
	if release == nil || !release.After(ctx.now().Add(unreleasedGuardWindow)) {
		return nil
	}
	var reasons []string
	if group, ok := normalize.RepackGroupInTitle(title); ok {
		if !strings.Contains(strings.ToLower(ctx.SourceKey), group) {
			reasons = append(reasons, "impersonated repacker for unreleased game")
		}
	}
	if (sig.Scene || sig.Repack || sig.CrackFix) && !sig.PreRelease {
		reasons = append(reasons, "scene release for unreleased game")
	}
	return reasons
}

func yearGapReject(title string, ctx *MatchContext) (string, bool) {
	refYear := ctx.Reference.Year()
	if refYear == 0 {
		return "", false
	}
	years := normalize.YearsInTitle(title)
	if len(years) == 0 {
		return "", false
	}
	farOff := 0
	for _, y := range years {
		diff := y - refYear
		if diff < 0 {
			diff = -diff
		}
		if diff <= 2 {
			return "", false
		}
		if diff >= yearGapRejectYears {
			farOff = y
		}
	}
	if farOff == 0 {
		return "", false
	}
	return fmt.Sprintf("release year too far (%d)", farOff), true
}

// singleWordExtraWordsReject guards one-word reference names: "Stray Souls"
// is not "Stray" no matter how well the word matches.
func singleWordExtraWordsReject(title string, ctx *MatchContext) (string, bool) {
	refWords := normalize.Words(ctx.Reference.Name)
	if len(refWords) != 1 {
		return "", false
	}
	candWords := normalize.Words(title)
	extras := make([]string, 0, len(candWords))
	for _, w := range candWords {
		if w == refWords[0] {
			continue
		}
		extras = append(extras, w)
	}
	if len(normalize.MeaningfulWords(extras)) == 0 {
		return "", false
	}
	if normalize.AllWordsPresentIsSafe(ctx.Reference.Name, title) {
		return "", false
	}
	return "single word title with extra words", true
}
