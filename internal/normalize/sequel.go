package normalize

import (
	"strconv"
	"strings"
)

// SequelInfo is the canonical base name of a title plus the sequel number
// extracted from it. Number is 0 when the title carries no sequel indicator.
type SequelInfo struct {
	BaseName string
	Number   int
}

// ExtractSequelInfo reduces a release title to its base name and sequel
// number. Scene-group names, repacker credits, platform and language codes,
// version strings, edition suffixes, and orphaned numeric runs are stripped
// first; the sequel number is then taken from a trailing Roman numeral
// (II-XII) or a trailing Arabic number in [2,20]. Internal numbers stay part
// of the base name.
func ExtractSequelInfo(title string) SequelInfo {
	t := StripFileExtensions(title)
	t = StripVersionStrings(t)
	t = StripEditionSuffix(t)

	words := Words(t)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if isReleaseDecoration(w) {
			continue
		}
		if isOrphanNumericRun(w) {
			continue
		}
		kept = append(kept, w)
	}

	// Trailing edition words hide the sequel token ("Dark Souls III Deluxe").
	for len(kept) > 1 {
		if _, ok := editionWords[kept[len(kept)-1]]; !ok {
			break
		}
		kept = kept[:len(kept)-1]
	}

	info := SequelInfo{}
	if len(kept) > 0 {
		last := kept[len(kept)-1]
		if n, ok := sequelToken(last); ok && len(kept) > 1 {
			info.Number = n
			kept = kept[:len(kept)-1]
		}
	}
	info.BaseName = strings.Join(kept, " ")
	return info
}

// sequelToken reports whether a token is a sequel indicator and returns the
// number it denotes.
func sequelToken(w string) (int, bool) {
	if n, ok := romanNumerals[w]; ok {
		return n, true
	}
	if isNumeric(w) {
		n, err := strconv.Atoi(w)
		if err == nil && n >= 2 && n <= 20 {
			return n, true
		}
	}
	return 0, false
}

func isReleaseDecoration(w string) bool {
	if _, ok := sceneGroups[w]; ok {
		return true
	}
	if _, ok := repackGroups[w]; ok {
		return true
	}
	if _, ok := platformTokens[w]; ok {
		return true
	}
	if _, ok := languageTokens[w]; ok {
		return true
	}
	if _, ok := releaseNoiseWords[w]; ok {
		return true
	}
	return multiLangPattern.MatchString(w)
}

// isOrphanNumericRun drops numeric tokens that cannot be sequel numbers:
// year-like values and long digit runs left over from build ids or hashes.
func isOrphanNumericRun(w string) bool {
	if !isNumeric(w) {
		return false
	}
	if len(w) >= 5 {
		return true
	}
	if yearTokenPattern.MatchString(w) {
		return true
	}
	return false
}
