package matching

import (
	"strings"
	"testing"
	"time"
)

func date(year, month, day int) *time.Time {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &t
}

func testNow() time.Time {
	return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
}

func hasReason(reasons []string, want string) bool {
	for _, r := range reasons {
		if r == want {
			return true
		}
	}
	return false
}

func hasReasonPrefix(reasons []string, prefix string) bool {
	for _, r := range reasons {
		if strings.HasPrefix(r, prefix) {
			return true
		}
	}
	return false
}

func TestScoreWitcherCompleteEdition(t *testing.T) {
	ctx := &MatchContext{
		Reference: ReferenceItem{
			Name:        "The Witcher 3: Wild Hunt",
			ReleaseDate: date(2015, 5, 19),
		},
		Now: testNow(),
	}
	title := "The Witcher 3: Wild Hunt – Complete Edition"

	if d := ShouldReject(title, ctx); d.Rejected {
		t.Fatalf("gate should pass, got reasons %v", d.Reasons)
	}
	res := Score(title, ctx)
	if !res.Matches {
		t.Fatalf("expected match, score %d reasons %v", res.Score, res.Reasons)
	}
	if !hasReason(res.Reasons, "title contains game name") {
		t.Fatalf("missing containment reason: %v", res.Reasons)
	}
	if !hasReason(res.Reasons, "edition variant of same game") {
		t.Fatalf("missing edition-variant bonus: %v", res.Reasons)
	}
	if hasReason(res.Reasons, "sequel number mismatch") || hasReason(res.Reasons, "different sequel") {
		t.Fatalf("unexpected sequel penalty: %v", res.Reasons)
	}
}

func TestGateRejectsStraySouls(t *testing.T) {
	ctx := &MatchContext{
		Reference: ReferenceItem{Name: "Stray", Category: CategoryMainGame},
		Now:       testNow(),
	}
	d := ShouldReject("Stray Souls Repack", ctx)
	if !d.Rejected {
		t.Fatal("expected rejection")
	}
	if !hasReason(d.Reasons, "single word title with extra words") {
		t.Fatalf("unexpected reasons %v", d.Reasons)
	}
}

func TestGateAllowsDecoratedSingleWordTitle(t *testing.T) {
	ctx := &MatchContext{
		Reference: ReferenceItem{Name: "Stray", Category: CategoryMainGame},
		Now:       testNow(),
	}
	if d := ShouldReject("Stray v1.4 GOG", ctx); d.Rejected {
		t.Fatalf("decoration-only extras should pass, got %v", d.Reasons)
	}
}

func TestSizeRatioOverridesNameMatch(t *testing.T) {
	ctx := &MatchContext{
		Reference:          ReferenceItem{Name: "Elden Ring"},
		ReferenceSizeBytes: 40_000_000_000,
		CandidateSizeBytes: 50_000_000,
		Now:                testNow(),
	}
	res := Score("Elden Ring", ctx)
	if res.Matches {
		t.Fatalf("50MB against 40GB must not match, score %d", res.Score)
	}
	if !hasReasonPrefix(res.Reasons, "not a game (") {
		t.Fatalf("missing size-tier reason: %v", res.Reasons)
	}
}

func TestScoreBounds(t *testing.T) {
	ctx := &MatchContext{
		Reference: ReferenceItem{
			Name:                  "Hades",
			ReleaseDate:           date(2020, 9, 17),
			FranchiseSiblingNames: []string{"Hades II"},
		},
		Now: testNow(),
	}
	titles := []string{
		"Hades",
		"Hades II Trilogy Collection 1998",
		"Completely Unrelated Thing 2004",
		"Hades Deluxe Edition v1.0 GOG",
	}
	for _, title := range titles {
		res := Score(title, ctx)
		if res.Score < 0 || res.Score > 150 {
			t.Fatalf("score out of bounds for %q: %d", title, res.Score)
		}
	}
}

func TestRejectImpliesZeroScore(t *testing.T) {
	ctx := &MatchContext{
		Reference:          ReferenceItem{Name: "Stray"},
		CandidateSizeBytes: 2_000_000,
		Now:                testNow(),
	}
	d := ShouldReject("Stray", ctx)
	if !d.Rejected || !hasReason(d.Reasons, "malware pattern") {
		t.Fatalf("tiny candidate should reject as malware, got %v", d.Reasons)
	}
}

func TestUpdateOnlySuppressedForLargeArchives(t *testing.T) {
	ctx := &MatchContext{
		Reference:          ReferenceItem{Name: "Cyberpunk 2077"},
		CandidateSizeBytes: 70_000_000_000,
		Now:                testNow(),
	}
	if d := ShouldReject("Cyberpunk 2077 Update v2.01", ctx); d.Rejected {
		t.Fatalf("70GB archive is a full rip, got %v", d.Reasons)
	}
	ctx.CandidateSizeBytes = 900_000_000
	d := ShouldReject("Cyberpunk 2077 Update v2.01", ctx)
	if !hasReason(d.Reasons, "update only release") {
		t.Fatalf("small update archive should reject, got %v", d.Reasons)
	}
}

func TestUpdateAllowedWhenReferenceIsUpdate(t *testing.T) {
	ctx := &MatchContext{
		Reference:          ReferenceItem{Name: "Cyberpunk 2077 Update", Category: CategoryUpdate},
		CandidateSizeBytes: 900_000_000,
		Now:                testNow(),
	}
	if d := ShouldReject("Cyberpunk 2077 Update v2.01", ctx); hasReason(d.Reasons, "update only release") {
		t.Fatalf("reference that is an update must not reject updates, got %v", d.Reasons)
	}
}

func TestDemoRejectedOnlyForMainGames(t *testing.T) {
	main := &MatchContext{Reference: ReferenceItem{Name: "Silksong", Category: CategoryMainGame}, Now: testNow()}
	if d := ShouldReject("Silksong Demo", main); !hasReason(d.Reasons, "demo or test build") {
		t.Fatalf("demo should reject for main game, got %v", d.Reasons)
	}
	dlc := &MatchContext{Reference: ReferenceItem{Name: "Silksong Pack", Category: CategoryDLC}, Now: testNow()}
	if d := ShouldReject("Silksong Pack Demo", dlc); hasReason(d.Reasons, "demo or test build") {
		t.Fatalf("demo rule only applies to main-game references, got %v", d.Reasons)
	}
}

func TestUnreleasedGuard(t *testing.T) {
	ctx := &MatchContext{
		Reference: ReferenceItem{Name: "Future Game", ReleaseDate: date(2026, 12, 25)},
		SourceKey: "randomsite",
		Now:       testNow(),
	}
	d := ShouldReject("Future.Game-CODEX", ctx)
	if !hasReason(d.Reasons, "scene release for unreleased game") {
		t.Fatalf("scene release for unreleased reference should reject, got %v", d.Reasons)
	}

	d = ShouldReject("Future Game FitGirl Repack", ctx)
	if !hasReason(d.Reasons, "impersonated repacker for unreleased game") {
		t.Fatalf("impersonated repacker should reject, got %v", d.Reasons)
	}

	if d := ShouldReject("Future Game Preload", ctx); d.Rejected {
		t.Fatalf("explicit pre-release marker should pass, got %v", d.Reasons)
	}
}

func TestYearGapReject(t *testing.T) {
	ctx := &MatchContext{
		Reference: ReferenceItem{Name: "Hitman", ReleaseDate: date(2016, 3, 11)},
		Now:       testNow(),
	}
	d := ShouldReject("Hitman 2002 Classic", ctx)
	if !hasReasonPrefix(d.Reasons, "release year too far") {
		t.Fatalf("14-year gap should reject, got %v", d.Reasons)
	}
	if d := ShouldReject("Hitman 2002 Remaster 2016", ctx); d.Rejected {
		t.Fatalf("a year within range suppresses the gap rule, got %v", d.Reasons)
	}
}

func TestSequelPenalties(t *testing.T) {
	ctx := &MatchContext{
		Reference: ReferenceItem{Name: "Hades", ReleaseDate: date(2020, 9, 17)},
		Now:       testNow(),
	}
	res := Score("Hades II", ctx)
	if !hasReason(res.Reasons, "sequel number only in candidate") {
		t.Fatalf("missing sequel penalty: %v", res.Reasons)
	}
	if res.Matches {
		t.Fatalf("Hades II must not match Hades, score %d", res.Score)
	}
}

func TestFranchiseSiblingPenalties(t *testing.T) {
	ctx := &MatchContext{
		Reference: ReferenceItem{
			Name:                  "Grand Theft Auto IV",
			FranchiseSiblingNames: []string{"Grand Theft Auto San Andreas", "Grand Theft Auto Vice City"},
		},
		Now: testNow(),
	}
	res := Score("Grand Theft Auto San Andreas", ctx)
	if !hasReason(res.Reasons, "franchise sibling match") {
		t.Fatalf("missing sibling penalty: %v", res.Reasons)
	}

	res = Score("Grand Theft Auto Trilogy San Andreas Vice City", ctx)
	if !hasReason(res.Reasons, "franchise bundle match") {
		t.Fatalf("missing bundle penalty: %v", res.Reasons)
	}

	// A single sibling joined with "+" is a bundle, not a lone sibling.
	res = Score("Grand Theft Auto IV + Grand Theft Auto San Andreas", ctx)
	if !hasReason(res.Reasons, "franchise bundle match") {
		t.Fatalf("joined sibling should escalate to bundle penalty: %v", res.Reasons)
	}
	if hasReason(res.Reasons, "franchise sibling match") {
		t.Fatalf("bundle must replace the sibling penalty: %v", res.Reasons)
	}

	variant := &MatchContext{
		Reference: ReferenceItem{
			Name:                  "Grand Theft Auto IV",
			FranchiseSiblingNames: []string{"Grand Theft Auto V"},
		},
		Now: testNow(),
	}
	res = Score("Grand Theft Auto IV Complete Edition", variant)
	if !hasReason(res.Reasons, "edition variant of same game") {
		t.Fatalf("edition variant should suppress sibling penalty: %v", res.Reasons)
	}
	if hasReason(res.Reasons, "franchise sibling match") {
		t.Fatalf("unexpected sibling penalty: %v", res.Reasons)
	}
}

func TestRelatedPatternPenalty(t *testing.T) {
	ctx := &MatchContext{
		Reference:           ReferenceItem{Name: "Dark Souls"},
		RelatedGamePatterns: []string{`dark\s+souls\s+(ii|iii|2|3)`, `[`},
		Now:                 testNow(),
	}
	res := Score("Dark Souls III Deluxe", ctx)
	if !hasReason(res.Reasons, "franchise sibling match") && !hasReason(res.Reasons, "franchise bundle match") {
		t.Fatalf("pattern should penalize sibling: %v", res.Reasons)
	}
}

func TestDescriptionSimilarityTiers(t *testing.T) {
	desc := "an action roguelike where you battle out of the underworld of greek myth"
	ctx := &MatchContext{
		Reference:            ReferenceItem{Name: "Hades"},
		Description:          desc,
		CandidateDescription: desc,
		Now:                  testNow(),
	}
	res := Score("Hades", ctx)
	if !hasReason(res.Reasons, "description similarity excellent") {
		t.Fatalf("identical descriptions should tier excellent: %v", res.Reasons)
	}
	if !hasReasonPrefix(res.Reasons, "trigram jaccard ") || !hasReasonPrefix(res.Reasons, "len ratio ") {
		t.Fatalf("missing similarity traces: %v", res.Reasons)
	}

	ctx.CandidateDescription = "completely different text about farming simulators and tractors plowing endless fields"
	ctx.DescriptionAuthoritative = true
	res = Score("Hades", ctx)
	if !hasReason(res.Reasons, "description mismatch") {
		t.Fatalf("disjoint descriptions should mismatch: %v", res.Reasons)
	}
}

func TestPlatformSignals(t *testing.T) {
	ctx := &MatchContext{
		Reference: ReferenceItem{Name: "Persona 5", Platforms: []string{"Windows"}},
		Now:       testNow(),
	}
	res := Score("Persona 5 PS4", ctx)
	if !hasReason(res.Reasons, "platform conflicts with reference") {
		t.Fatalf("console token should conflict: %v", res.Reasons)
	}

	res = Score("Persona 5 PS4 RPCS3 Emulator", ctx)
	if !hasReason(res.Reasons, "platform mismatch (emulator)") {
		t.Fatalf("emulator softens the penalty: %v", res.Reasons)
	}

	res = Score("Persona 5 PC", ctx)
	if !hasReason(res.Reasons, "platform keywords present") {
		t.Fatalf("pc token is an informational bonus: %v", res.Reasons)
	}
}

func TestSourceTraces(t *testing.T) {
	ctx := &MatchContext{
		Reference:  ReferenceItem{Name: "Hades"},
		SourceKey:  "hydra.fitgirl",
		TrustLevel: TrustTrusted,
		Seeders:    12,
		Leechers:   -3,
		Now:        testNow(),
	}
	res := Score("Hades", ctx)
	if !hasReason(res.Reasons, "source trust: trusted") || !hasReason(res.Reasons, "source key: hydra.fitgirl") {
		t.Fatalf("missing source traces: %v", res.Reasons)
	}
	if !hasReason(res.Reasons, "seeders: 12") {
		t.Fatalf("missing seeders trace: %v", res.Reasons)
	}
	if hasReasonPrefix(res.Reasons, "leechers:") {
		t.Fatalf("negative counter must be treated as absent: %v", res.Reasons)
	}
}

func TestUpcomingBiasAndNewTrace(t *testing.T) {
	upcoming := &MatchContext{
		Reference: ReferenceItem{Name: "Future Game", ReleaseDate: date(2026, 10, 1)},
		Now:       testNow(),
	}
	res := Score("Future Game Early Access", upcoming)
	if !hasReasonPrefix(res.Reasons, "release status upcoming (") {
		t.Fatalf("missing upcoming trace: %v", res.Reasons)
	}

	fresh := &MatchContext{
		Reference: ReferenceItem{Name: "Fresh Game", ReleaseDate: date(2026, 7, 20)},
		Now:       testNow(),
	}
	res = Score("Fresh Game", fresh)
	if !hasReasonPrefix(res.Reasons, "release status new (") {
		t.Fatalf("missing new-release trace: %v", res.Reasons)
	}
}

func TestDlcGateSuppressions(t *testing.T) {
	ctx := &MatchContext{
		Reference: ReferenceItem{Name: "Far Cry 4", Category: CategoryMainGame},
		Now:       testNow(),
	}
	// The candidate names the base game, so the scorer (not the gate) is
	// responsible for sorting it out.
	if d := ShouldReject("Far Cry 4 Escape From Durgesh Prison Dlc", ctx); hasReason(d.Reasons, "dlc only release") {
		t.Fatalf("reference name in title suppresses DLC-only, got %v", d.Reasons)
	}
	d := ShouldReject("Escape From Durgesh Prison Dlc", ctx)
	if !hasReason(d.Reasons, "dlc only release") {
		t.Fatalf("bare DLC release should reject, got %v", d.Reasons)
	}

	expansion := &MatchContext{
		Reference: ReferenceItem{Name: "Escape From Durgesh Prison", Category: CategoryExpansion},
		Now:       testNow(),
	}
	if d := ShouldReject("Escape From Durgesh Prison Dlc", expansion); hasReason(d.Reasons, "dlc only release") {
		t.Fatalf("DLC reference must allow DLC candidates, got %v", d.Reasons)
	}
}

func TestPlatformGateMismatch(t *testing.T) {
	ctx := &MatchContext{
		Reference:         ReferenceItem{Name: "Persona 5"},
		PreferredPlatform: "windows",
		DetectedPlatform:  &PlatformDetection{Platform: "ps4", Confidence: 0.9, Source: "title"},
		Now:               testNow(),
	}
	d := ShouldReject("Persona 5 PS4", ctx)
	if !hasReasonPrefix(d.Reasons, "platform mismatch") {
		t.Fatalf("confident mismatch should reject, got %v", d.Reasons)
	}

	ctx.DetectedPlatform.Confidence = 0.2
	if d := ShouldReject("Persona 5 PS4", ctx); d.Rejected {
		t.Fatalf("low confidence, non-strict should pass, got %v", d.Reasons)
	}

	ctx.StrictPlatform = true
	d = ShouldReject("Persona 5 PS4", ctx)
	if !hasReasonPrefix(d.Reasons, "platform mismatch") {
		t.Fatalf("strict mode rejects regardless of confidence, got %v", d.Reasons)
	}
}

func TestSummaryFallbackSimilarity(t *testing.T) {
	summary := "battle out of the underworld in this rogue like dungeon crawler"
	ctx := &MatchContext{
		Reference:            ReferenceItem{Name: "Hades", Summary: summary},
		CandidateDescription: summary,
		Now:                  testNow(),
	}
	res := Score("Hades", ctx)
	if !hasReason(res.Reasons, "summary similarity strong") {
		t.Fatalf("identical summary should earn the fallback bonus: %v", res.Reasons)
	}
	if hasReasonPrefix(res.Reasons, "trigram jaccard ") {
		t.Fatalf("fallback must not emit description traces: %v", res.Reasons)
	}

	ctx.CandidateDescription = "farming simulator about growing turnips on a quiet island"
	res = Score("Hades", ctx)
	if hasReasonPrefix(res.Reasons, "summary similarity") {
		t.Fatalf("disjoint summary must stay silent: %v", res.Reasons)
	}
	if hasReason(res.Reasons, "description mismatch") {
		t.Fatalf("fallback must not penalize: %v", res.Reasons)
	}

	ctx.Description = "an authoritative store description takes precedence over the summary"
	res = Score("Hades", ctx)
	if hasReasonPrefix(res.Reasons, "summary similarity") {
		t.Fatalf("summary fallback must yield to a real description: %v", res.Reasons)
	}
}
