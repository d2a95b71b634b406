package normalize

import "regexp"

// sceneGroups are release-group names stripped before base-name comparison.
// Lowercase, matched as whole tokens.
var sceneGroups = map[string]struct{}{
	"codex":      {},
	"skidrow":    {},
	"plaza":      {},
	"reloaded":   {},
	"empress":    {},
	"cpy":        {},
	"hoodlum":    {},
	"tenoke":     {},
	"rune":       {},
	"flt":        {},
	"razor1911":  {},
	"prophet":    {},
	"darksiders": {},
	"chronos":    {},
	"goldberg":   {},
	"steamrip":   {},
	"gog":        {},
	"drmfree":    {},
	"outlaws":    {},
	"anomaly":    {},
	"i_know":     {},
	"tinyiso":    {},
	"doge":       {},
	"simplex":    {},
	"vrex":       {},
}

// repackGroups are repacker credits stripped before base-name comparison.
var repackGroups = map[string]struct{}{
	"fitgirl":    {},
	"dodi":       {},
	"elamigos":   {},
	"kaoskrew":   {},
	"masquerade": {},
	"xatab":      {},
	"canek77":    {},
	"gnarly":     {},
	"johncena141": {},
	"mechanics":  {},
	"catalyst":   {},
	"decepticon": {},
}

// platformTokens identify a target platform inside a release title.
var platformTokens = map[string]struct{}{
	"pc":      {},
	"win":     {},
	"win32":   {},
	"win64":   {},
	"windows": {},
	"macos":   {},
	"osx":     {},
	"linux":   {},
	"ps3":     {},
	"ps4":     {},
	"ps5":     {},
	"psp":     {},
	"psvita":  {},
	"xbox":    {},
	"xbox360": {},
	"x360":    {},
	"switch":  {},
	"nsw":     {},
	"wii":     {},
	"wiiu":    {},
	"3ds":     {},
	"nds":     {},
	"android": {},
	"ios":     {},
}

// consoleTokens is the subset of platformTokens that contradicts a PC-only
// reference outright.
var consoleTokens = map[string]struct{}{
	"ps3": {}, "ps4": {}, "ps5": {}, "psp": {}, "psvita": {},
	"xbox": {}, "xbox360": {}, "x360": {},
	"switch": {}, "nsw": {}, "wii": {}, "wiiu": {}, "3ds": {}, "nds": {},
	"android": {}, "ios": {},
}

// languageTokens are language and region codes common in release names.
var languageTokens = map[string]struct{}{
	"eng": {}, "english": {}, "rus": {}, "russian": {}, "ita": {}, "spa": {},
	"fra": {}, "french": {}, "ger": {}, "german": {}, "jpn": {}, "japanese": {},
	"pol": {}, "polish": {}, "por": {}, "ptbr": {}, "kor": {}, "chs": {},
	"cht": {}, "esp": {}, "dub": {}, "subbed": {}, "dubbed": {},
	"usa": {}, "eur": {}, "pal": {}, "ntsc": {},
}

// multiLangPattern matches MULTi-language counters such as "multi12".
var multiLangPattern = regexp.MustCompile(`^multi\d*$`)

// versionWordPattern matches leftover version tokens such as "v1".
var versionWordPattern = regexp.MustCompile(`^v\d+[a-z0-9]*$`)

// editionWords are decorations that mark a variant of the same game rather
// than a different game.
var editionWords = map[string]struct{}{
	"edition":     {},
	"deluxe":      {},
	"ultimate":    {},
	"definitive":  {},
	"complete":    {},
	"collectors":  {},
	"collector":   {},
	"anniversary": {},
	"enhanced":    {},
	"premium":     {},
	"gold":        {},
	"goty":        {},
	"standard":    {},
	"digital":     {},
	"remastered":  {},
	"extended":    {},
	"directors":   {},
	"legendary":   {},
	"royal":       {},
	"imperial":    {},
	"bonus":       {},
	"cut":         {},
	"year":        {},
	"game":        {},
	"of":          {},
	"the":         {},
}

// fillerWords are articles, prepositions, and connectives that never count as
// meaningful when sizing up leftover words.
var fillerWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "of": {}, "and": {}, "in": {}, "on": {},
	"at": {}, "for": {}, "to": {}, "with": {}, "from": {}, "by": {}, "or": {},
	"vs": {},
}

// releaseNoiseWords are tokens that describe the release rather than the
// game; they are ignored when counting meaningful extra words.
var releaseNoiseWords = map[string]struct{}{
	"repack":   {},
	"rip":      {},
	"crack":    {},
	"cracked":  {},
	"proper":   {},
	"incl":     {},
	"included": {},
	"dlc":      {},
	"dlcs":     {},
	"update":   {},
	"updates":  {},
	"patch":    {},
	"hotfix":   {},
	"build":    {},
	"version":  {},
	"free":     {},
	"download": {},
	"torrent":  {},
	"online":   {},
	"offline":  {},
	"portable": {},
	"selective": {},
	"multiplayer": {},
	"singleplayer": {},
	"preinstalled": {},
	"unlocked": {},
	"full":     {},
}

// containerExtensions are stripped from the tail of a title before analysis.
var containerExtensions = []string{
	".zip", ".rar", ".7z", ".iso", ".exe", ".dmg", ".torrent", ".tar",
	".gz", ".bz2", ".msi", ".apk", ".pkg", ".bin", ".mdf", ".nrg",
}

// romanNumerals maps trailing Roman numerals to sequel numbers. I is
// deliberately absent: a lone "I" is almost never a sequel marker.
var romanNumerals = map[string]int{
	"ii": 2, "iii": 3, "iv": 4, "v": 5, "vi": 6, "vii": 7, "viii": 8,
	"ix": 9, "x": 10, "xi": 11, "xii": 12,
}

var (
	versionPattern    = regexp.MustCompile(`(?i)\bv\.?\d+(\.\d+)*[a-z0-9]*\b`)
	buildPattern      = regexp.MustCompile(`(?i)\bbuild[ ._]?\d+\b`)
	datePattern       = regexp.MustCompile(`\b\d{4}[._-]\d{1,2}[._-]\d{1,2}\b`)
	sizePattern       = regexp.MustCompile(`(?i)\b\d+(\.\d+)?\s?(gb|mb|gib|mib)\b`)
	dlcCountPattern   = regexp.MustCompile(`(?i)\b\d+\s?dlcs?\b`)
	updateNumPattern  = regexp.MustCompile(`(?i)\bupdate[ ._]?\d+(\.\d+)*\b`)
	yearTokenPattern  = regexp.MustCompile(`\b(19[5-9]\d|20[0-4]\d)\b`)
	exeArchivePattern = regexp.MustCompile(`(?i)\.exe\.(rar|zip|7z)\b`)
)

// editionSuffixPatterns strip trailing edition clauses. Built once; each
// pattern is anchored at the end of the title and applied repeatedly.
var editionSuffixPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s*[-:–—]?\s*(deluxe|ultimate|definitive|complete|collector'?s?|anniversary|enhanced|premium|gold|standard|digital|legendary|royal|imperial|special|remastered|extended|director'?s?)\s+(edition|cut|version)\s*$`),
	regexp.MustCompile(`(?i)\s*[-:–—]?\s*game\s+of\s+the\s+year(\s+edition)?\s*$`),
	regexp.MustCompile(`(?i)\s*[-:–—]?\s*goty(\s+edition)?\s*$`),
	regexp.MustCompile(`(?i)\s*\+\s*\d+\s*dlcs?\s*$`),
	regexp.MustCompile(`(?i)\s*\+\s*(all\s+)?dlcs?\s*$`),
	regexp.MustCompile(`(?i)\s*\+\s*bonus\b[^+]*$`),
	regexp.MustCompile(`(?i)\s*[-:–—]?\s*remastered\s*$`),
}
