package normalize

import (
	"regexp"
	"strings"
)

const (
	// Anything smaller than this cannot be a PC game distribution.
	malwareSizeFloor = 10_000_000
	// An .exe wrapped in an archive below this size is a decoy pattern.
	malwareExeArchiveCeiling = 100_000_000
)

var (
	nonGamePattern = regexp.MustCompile(`(?i)\b(soundtrack|ost|artbook|art\s?book|wallpapers?|comics?|ebook|e-book|strategy\s+guide|manual|keygen|trainer\s+only|save\s?game|template|asset\s+pack)\b`)
	nonGameMediaPattern = regexp.MustCompile(`(?i)\b(s\d{1,2}e\d{1,2}|1080p|2160p|720p|bluray|blu-ray|web-?dl|webrip|hdtv|x264|x265|hevc|dvdrip|camrip|flac|320kbps)\b`)
	updateOnlyPattern   = regexp.MustCompile(`(?i)\b(update|patch|hotfix)\b`)
	dlcTokenPattern     = regexp.MustCompile(`(?i)\b(dlcs?|add-?on|expansion\s+pack)\b`)
	bundleLanguagePattern = regexp.MustCompile(`(?i)\b(complete|edition|goty|game\s+of\s+the\s+year|bundle|collection|anthology|incl|included|includes|all\s+dlcs?|repack)\b|\+`)
	languagePackPattern = regexp.MustCompile(`(?i)\b(language\s+pack|voice\s+pack|localization|rusification|текст|озвучка)\b`)
	crackFixPattern     = regexp.MustCompile(`(?i)\b(crack\s?fix|crackfix|crack\s+only|nodvd|no-dvd|сrack)\b`)
	demoPattern         = regexp.MustCompile(`(?i)\b(demo|playtest|closed\s+(alpha|beta)|open\s+(alpha|beta)|alpha|beta)\b`)
	modPattern          = regexp.MustCompile(`(?i)\b(mod|mods|modpack|fan\s?(game|made)|overhaul|total\s+conversion|reshade)\b`)
	emulatorPattern     = regexp.MustCompile(`(?i)\b(emulator|emulated|yuzu|ryujinx|rpcs3|cemu|dolphin|pcsx2|xenia)\b`)
	episodePattern      = regexp.MustCompile(`(?i)\b(episode|season|chapter)\s+\d+\b|\bepisode\s+(one|two|three|four|five)\b`)
	preReleasePattern   = regexp.MustCompile(`(?i)\b(early\s+access|pre-?order|preload|pre-?release|playtest|closed\s+beta|open\s+beta)\b`)
	sceneTagPattern     = regexp.MustCompile(`(?i)-(` + sceneGroupAlternation() + `)$`)
)

func sceneGroupAlternation() string {
	names := make([]string, 0, len(sceneGroups))
	for name := range sceneGroups {
		names = append(names, regexp.QuoteMeta(name))
	}
	return strings.Join(names, "|")
}

// IsMalwarePattern flags release shapes that are decoys rather than games:
// any download below 10MB, or an .exe wrapped in an archive below 100MB.
// Zero or negative sizes mean "unknown" and never flag.
func IsMalwarePattern(title string, sizeBytes int64) bool {
	if sizeBytes <= 0 {
		return false
	}
	if sizeBytes < malwareSizeFloor {
		return true
	}
	if sizeBytes < malwareExeArchiveCeiling && exeArchivePattern.MatchString(title) {
		return true
	}
	return false
}

// IsNonGameContent flags soundtracks, artbooks, guides, and similar
// companion material sold alongside games.
func IsNonGameContent(title string) bool {
	return nonGamePattern.MatchString(title)
}

// IsNonGameMedia flags video or audio releases (TV rips, movie encodes,
// music) that share a name with a game.
func IsNonGameMedia(title string) bool {
	return nonGameMediaPattern.MatchString(title)
}

// IsUpdateOnlyRelease flags titles that distribute only an update or patch.
// Titles that carry bundle language ("repack", "complete", "edition") are
// full releases that happen to mention the update they include.
func IsUpdateOnlyRelease(title string) bool {
	if !updateOnlyPattern.MatchString(title) {
		return false
	}
	if strings.Contains(strings.ToLower(title), "updated") {
		return false
	}
	return !bundleLanguagePattern.MatchString(title)
}

// IsDlcOnlyRelease flags titles that distribute a DLC without the base game.
// Bundle and inclusion language ("complete edition", "incl all DLCs", "+")
// marks a full release instead.
func IsDlcOnlyRelease(refName, title string) bool {
	if !dlcTokenPattern.MatchString(title) {
		return false
	}
	if bundleLanguagePattern.MatchString(title) {
		return false
	}
	// "Name DLC" with no DLC actually named is shorthand for the game plus
	// its DLC, not a DLC-only drop.
	rest := strings.Fields(strings.TrimPrefix(NormalizeName(title), NormalizeName(refName)))
	return len(MeaningfulWords(rest)) > 0
}

// IsLanguagePack flags localization-only releases.
func IsLanguagePack(title string) bool {
	return languagePackPattern.MatchString(title)
}

// IsCrackFixOnly flags crack/no-DVD fix releases that contain no game data.
func IsCrackFixOnly(title string) bool {
	return crackFixPattern.MatchString(title)
}

// IsDemoRelease flags demo, alpha, and beta distributions.
func IsDemoRelease(title string) bool {
	return demoPattern.MatchString(title)
}

// IsModContent flags mods, fan games, and overhaul packs.
func IsModContent(title string) bool {
	return modPattern.MatchString(title)
}

// IsEmulatorRelease flags titles distributed for console emulators.
func IsEmulatorRelease(title string) bool {
	return emulatorPattern.MatchString(title)
}

// IsEpisodeOnly flags single-episode or single-season releases of episodic
// games.
func IsEpisodeOnly(title string) bool {
	return episodePattern.MatchString(title)
}

// HasPreReleaseMarker flags titles that explicitly advertise pre-release
// access (beta, preload, early access).
func HasPreReleaseMarker(title string) bool {
	return preReleasePattern.MatchString(title)
}

// IsSceneRelease flags titles carrying a known scene-group tag.
func IsSceneRelease(title string) bool {
	if sceneTagPattern.MatchString(strings.TrimSpace(title)) {
		return true
	}
	for _, w := range Words(title) {
		if _, ok := sceneGroups[w]; ok {
			return true
		}
	}
	return false
}

// RepackGroupInTitle returns the known repacker credit named by the title,
// if any.
func RepackGroupInTitle(title string) (string, bool) {
	for _, w := range Words(title) {
		if _, ok := repackGroups[w]; ok {
			return w, true
		}
	}
	return "", false
}

// IsRepack flags repacked releases, by the word itself or a known repacker
// credit.
func IsRepack(title string) bool {
	for _, w := range Words(title) {
		if w == "repack" {
			return true
		}
		if _, ok := repackGroups[w]; ok {
			return true
		}
	}
	return false
}

// DetectedConsoleToken returns the first token naming a non-PC platform, if
// any.
func DetectedConsoleToken(title string) (string, bool) {
	for _, w := range Words(title) {
		if _, ok := consoleTokens[w]; ok {
			return w, true
		}
	}
	return "", false
}

// HasPlatformToken reports whether the title names any platform at all.
func HasPlatformToken(title string) bool {
	for _, w := range Words(title) {
		if _, ok := platformTokens[w]; ok {
			return true
		}
	}
	return false
}

// YearsInTitle returns every plausible release year embedded in the title.
func YearsInTitle(title string) []int {
	matches := yearTokenPattern.FindAllString(NormalizeName(title), -1)
	years := make([]int, 0, len(matches))
	for _, m := range matches {
		y := 0
		for _, r := range m {
			y = y*10 + int(r-'0')
		}
		years = append(years, y)
	}
	return years
}
