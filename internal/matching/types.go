package matching

import (
	"time"
)

// Category classifies what a reference catalog entry is.
type Category string

// Reference categories.
const (
	CategoryMainGame  Category = "main_game"
	CategoryDLC       Category = "dlc"
	CategoryExpansion Category = "expansion"
	CategoryBundle    Category = "bundle"
	CategoryMod       Category = "mod"
	CategoryEpisode   Category = "episode"
	CategorySeason    Category = "season"
	CategoryRemake    Category = "remake"
	CategoryRemaster  Category = "remaster"
	CategoryPort      Category = "port"
	CategoryUpdate    Category = "update"
)

// IsMainGameLike reports whether the category describes a standalone full
// game release.
func (c Category) IsMainGameLike() bool {
	switch c {
	case CategoryMainGame, CategoryRemake, CategoryRemaster, CategoryPort, "":
		return true
	}
	return false
}

// AlternativeName is a known alias for a reference item, optionally annotated
// with where the alias comes from.
type AlternativeName struct {
	Name    string
	Comment string
}

// ReferenceItem is the catalog entry a candidate is evaluated against.
// Immutable for the duration of a match call; owned by the caller.
type ReferenceItem struct {
	Name                  string
	AlternativeNames      []AlternativeName
	ReleaseDate           *time.Time
	Category              Category
	Platforms             []string
	FranchiseSiblingNames []string
	EditionTitles         []string
	Summary               string
}

// Year returns the reference release year, or 0 when unknown.
func (r *ReferenceItem) Year() int {
	if r.ReleaseDate == nil {
		return 0
	}
	return r.ReleaseDate.Year()
}

// PlatformDetection is the output of an external platform detector, resolved
// by the caller before the match call.
type PlatformDetection struct {
	Platform   string
	Confidence float64
	Source     string
}

// Trust levels assigned by callers to a candidate's source.
const (
	TrustTrusted = "trusted"
	TrustKnown   = "known"
	TrustUnknown = "unknown"
	TrustSuspect = "suspect"
)

// MatchContext carries the reference item plus every tunable for one match
// call. Created per request and discarded afterwards.
type MatchContext struct {
	Reference ReferenceItem

	// MinMatchScore is the heuristic accept threshold. Zero means the
	// default of 70.
	MinMatchScore int

	// PreferredPlatform names the platform the caller wants; when
	// StrictPlatform is set, a confident mismatch is rejected outright.
	PreferredPlatform string
	StrictPlatform    bool
	DetectedPlatform  *PlatformDetection

	// Description and ReferenceSizeBytes come from an authoritative source
	// distinct from the catalog metadata. Zero values disable the
	// corresponding scoring blocks.
	Description            string
	ReferenceSizeBytes     int64
	CandidateSizeBytes     int64
	CandidateDescription   string
	DescriptionAuthoritative bool

	// RelatedGameNames and RelatedGamePatterns mark titles that are related
	// to but distinct from the reference (sequels, spin-offs). Patterns are
	// regular expressions; invalid ones are skipped.
	RelatedGameNames    []string
	RelatedGamePatterns []string

	// SourceKey and TrustLevel identify where the candidate came from; they
	// feed threshold lookup and the downstream feature extractor, not the
	// heuristic score.
	SourceKey  string
	TrustLevel string

	// Availability counters from the scraper. Negative values are treated
	// as absent.
	Seeders  int
	Leechers int
	Grabs    int

	// NewReleaseWindowDays controls the "release status new" trace. Zero
	// means the default of 30.
	NewReleaseWindowDays int

	// Now pins the clock for release-date arithmetic. Zero means time.Now().
	Now time.Time
}

func (c *MatchContext) minScore() int {
	if c.MinMatchScore <= 0 {
		return defaultMinMatchScore
	}
	return c.MinMatchScore
}

func (c *MatchContext) now() time.Time {
	if c.Now.IsZero() {
		return time.Now()
	}
	return c.Now
}

func (c *MatchContext) newReleaseWindow() int {
	if c.NewReleaseWindowDays <= 0 {
		return defaultNewReleaseWindowDays
	}
	return c.NewReleaseWindowDays
}

// MatchResult is the outcome of one match call. Reasons is append-only and
// doubles as the serialization format consumed by the model filter's feature
// extractor.
type MatchResult struct {
	Matches bool
	Score   int
	Reasons []string
}

func (r *MatchResult) add(points int, reason string) {
	r.Score += points
	r.Reasons = append(r.Reasons, reason)
}

func (r *MatchResult) note(reason string) {
	r.Reasons = append(r.Reasons, reason)
}

const (
	defaultMinMatchScore        = 70
	defaultNewReleaseWindowDays = 30

	scoreFloor = 0
	scoreCeil  = 150
)
