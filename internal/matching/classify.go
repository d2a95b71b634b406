package matching

import (
	"strings"

	"gamematch/internal/normalize"
)

// CandidateSignals are the named boolean signals derived from a candidate
// title during classification.
type CandidateSignals struct {
	Update       bool
	DLC          bool
	Mod          bool
	Demo         bool
	CrackFix     bool
	LanguagePack bool
	Emulator     bool
	Bundle       bool
	MultiGame    bool
	Scene        bool
	Repack       bool
	NonGame      bool
	NonGameMedia bool
	EpisodeOnly  bool
	PreRelease   bool
}

// ReferenceFlags record what the reference item itself is; a reference that
// is an update must not reject candidates for looking like updates.
type ReferenceFlags struct {
	IsDLC      bool
	IsBundle   bool
	IsMod      bool
	IsUpdate   bool
	IsEpisodic bool
}

// multiGameJoiners mark titles that bundle several games together.
var multiGameJoiners = []string{
	"trilogy", "duology", "anthology", "collection", "saga", "bundle",
	"all games", "complete pack",
}

// Classify tokenizes the candidate against the reference and derives the
// full signal set used by the rejection gate.
func Classify(title string, ctx *MatchContext) (CandidateSignals, ReferenceFlags) {
	refName := ctx.Reference.Name
	sig := CandidateSignals{
		Update:       normalize.IsUpdateOnlyRelease(title),
		DLC:          normalize.IsDlcOnlyRelease(refName, title),
		Mod:          normalize.IsModContent(title),
		Demo:         normalize.IsDemoRelease(title),
		CrackFix:     normalize.IsCrackFixOnly(title),
		LanguagePack: normalize.IsLanguagePack(title),
		Emulator:     normalize.IsEmulatorRelease(title),
		NonGame:      normalize.IsNonGameContent(title),
		NonGameMedia: normalize.IsNonGameMedia(title),
		EpisodeOnly:  normalize.IsEpisodeOnly(title),
		Scene:        normalize.IsSceneRelease(title),
		Repack:       normalize.IsRepack(title),
		PreRelease:   normalize.HasPreReleaseMarker(title),
	}
	sig.Bundle = sig.Repack || hasBundleWords(title)
	sig.MultiGame = hasMultiGameJoiner(title)
	return sig, referenceFlags(ctx.Reference.Category)
}

func referenceFlags(cat Category) ReferenceFlags {
	return ReferenceFlags{
		IsDLC:      cat == CategoryDLC || cat == CategoryExpansion,
		IsBundle:   cat == CategoryBundle,
		IsMod:      cat == CategoryMod,
		IsUpdate:   cat == CategoryUpdate,
		IsEpisodic: cat == CategoryEpisode || cat == CategorySeason,
	}
}

func hasBundleWords(title string) bool {
	n := " " + normalize.NormalizeName(title) + " "
	for _, w := range []string{" complete ", " edition ", " goty ", " repack ", " incl ", " includes ", " included "} {
		if strings.Contains(n, w) {
			return true
		}
	}
	return false
}

func hasMultiGameJoiner(title string) bool {
	if strings.Contains(title, "+") {
		return true
	}
	n := " " + normalize.NormalizeName(title) + " "
	for _, j := range multiGameJoiners {
		if strings.Contains(n, " "+j+" ") {
			return true
		}
	}
	return false
}
