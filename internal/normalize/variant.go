package normalize

import "strings"

// extraWordThreshold is the count of meaningful leftover words at which a
// prefix-related candidate stops counting as the same game. The threshold
// scales with the reference base-name length; values tuned against labeled
// release data.
func extraWordThreshold(baseWords int) int {
	switch {
	case baseWords <= 1:
		return 1
	case baseWords == 2:
		return 2
	default:
		return 3
	}
}

// IsSameGameVariant reports whether candidate is a variant of the same game
// as ref: base names equal or in a validated prefix relation, and sequel
// numbers in agreement.
func IsSameGameVariant(ref, candidate string) bool {
	a := ExtractSequelInfo(ref)
	b := ExtractSequelInfo(candidate)
	if a.BaseName == "" || b.BaseName == "" {
		return false
	}
	if a.Number != b.Number {
		return false
	}
	if a.BaseName == b.BaseName {
		return true
	}
	return validatedPrefix(a.BaseName, b.BaseName) || validatedPrefix(b.BaseName, a.BaseName)
}

// IsDifferentSequel reports whether candidate names a different entry in the
// same franchise as ref: base names align but the sequel numbers genuinely
// disagree, including the case where only one side carries a number. A
// candidate that literally starts with the full reference title is treated as
// the same game regardless of extracted numbers, unless the very next token
// is itself a sequel indicator.
func IsDifferentSequel(ref, candidate string) bool {
	if literalSameTitle(ref, candidate) {
		return false
	}
	a := ExtractSequelInfo(ref)
	b := ExtractSequelInfo(candidate)
	if a.BaseName == "" || b.BaseName == "" {
		return false
	}
	aligned := a.BaseName == b.BaseName ||
		wordPrefix(a.BaseName, b.BaseName) || wordPrefix(b.BaseName, a.BaseName)
	if !aligned {
		return false
	}
	return a.Number != b.Number
}

// literalSameTitle checks the non-stripped reference title against the
// candidate: an exact or word-prefix match means the candidate is the same
// game with trailing decoration, not a sibling.
func literalSameTitle(ref, candidate string) bool {
	refNorm := NormalizeName(ref)
	candNorm := NormalizeName(candidate)
	if refNorm == "" || candNorm == "" {
		return false
	}
	if refNorm == candNorm {
		return true
	}
	if !strings.HasPrefix(candNorm, refNorm+" ") {
		return false
	}
	rest := strings.Fields(strings.TrimPrefix(candNorm, refNorm+" "))
	if len(rest) == 0 {
		return true
	}
	if _, isSequel := sequelToken(rest[0]); isSequel {
		return false
	}
	return true
}

// validatedPrefix reports whether short is a word-level prefix of long and
// the remainder looks like decoration of the same game rather than a
// different title. The remainder must not open with a preposition, article,
// or sequel token, and for short reference names it may only carry a few
// meaningful words.
func validatedPrefix(short, long string) bool {
	if !wordPrefix(short, long) {
		return false
	}
	shortWords := strings.Fields(short)
	rest := strings.Fields(long)[len(shortWords):]
	if len(rest) == 0 {
		return true
	}
	if _, ok := fillerWords[rest[0]]; ok {
		return false
	}
	if _, isSequel := sequelToken(rest[0]); isSequel {
		return false
	}
	if len(shortWords) <= 3 {
		if len(MeaningfulWords(rest)) >= extraWordThreshold(len(shortWords)) {
			return false
		}
	}
	return true
}

// wordPrefix reports whether every word of short matches the leading words
// of long.
func wordPrefix(short, long string) bool {
	if short == "" || long == "" {
		return false
	}
	return long == short || strings.HasPrefix(long, short+" ")
}

// AllWordsPresentIsSafe guards "all words present" heuristics against false
// positives on one- and two-word reference names. For those the candidate
// must literally start with the reference name and may only carry a bounded
// number of meaningful extra words.
func AllWordsPresentIsSafe(ref, candidate string) bool {
	refNorm := NormalizeName(ref)
	refWords := strings.Fields(refNorm)
	if len(refWords) >= 3 {
		return true
	}
	candNorm := NormalizeName(candidate)
	if !wordPrefix(refNorm, candNorm) {
		return false
	}
	rest := strings.Fields(strings.TrimPrefix(candNorm, refNorm))
	return len(MeaningfulWords(rest)) < extraWordThreshold(len(refWords))
}
