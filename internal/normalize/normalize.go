package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentFolder decomposes characters and drops combining marks, reducing
// accented letters to their ASCII base form.
var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// punctuationReplacer maps typographic punctuation onto ASCII equivalents
// before folding.
var punctuationReplacer = strings.NewReplacer(
	"’", "'",
	"‘", "'",
	"“", "\"",
	"”", "\"",
	"–", "-",
	"—", "-",
	"™", "",
	"®", "",
	"©", "",
)

// NormalizeUnicode folds a title to a comparison-safe ASCII-leaning form:
// accents removed, typographic punctuation mapped to ASCII, trademark and
// copyright marks dropped.
func NormalizeUnicode(s string) string {
	s = punctuationReplacer.Replace(s)
	folded, _, err := transform.String(accentFolder, s)
	if err != nil {
		return s
	}
	return folded
}

// NormalizeName reduces a title to the canonical lowercase comparison form:
// unicode folded, "&" spelled out, every non-alphanumeric run collapsed to a
// single space. Idempotent.
func NormalizeName(s string) string {
	s = NormalizeUnicode(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "&", " and ")
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			prevSpace = false
		default:
			if !prevSpace && b.Len() > 0 {
				b.WriteByte(' ')
				prevSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// Words returns the tokens of the normalized form of s.
func Words(s string) []string {
	n := NormalizeName(s)
	if n == "" {
		return nil
	}
	return strings.Fields(n)
}

// MeaningfulWords filters out articles, edition decorations, release noise,
// language and platform codes, and bare numbers, leaving only the words that
// could distinguish one game from another.
func MeaningfulWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if !isMeaningfulWord(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func isMeaningfulWord(w string) bool {
	if w == "" {
		return false
	}
	if _, ok := fillerWords[w]; ok {
		return false
	}
	if _, ok := editionWords[w]; ok {
		return false
	}
	if _, ok := releaseNoiseWords[w]; ok {
		return false
	}
	if _, ok := languageTokens[w]; ok {
		return false
	}
	if _, ok := platformTokens[w]; ok {
		return false
	}
	if _, ok := sceneGroups[w]; ok {
		return false
	}
	if _, ok := repackGroups[w]; ok {
		return false
	}
	if multiLangPattern.MatchString(w) {
		return false
	}
	if versionWordPattern.MatchString(w) {
		return false
	}
	if isNumeric(w) {
		return false
	}
	return true
}

func isNumeric(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
