package normalize

import "strings"

// StripFileExtensions removes trailing container extensions, repeatedly, so
// "game.exe.rar" loses both suffixes.
func StripFileExtensions(title string) string {
	title = strings.TrimSpace(title)
	for {
		stripped := false
		lower := strings.ToLower(title)
		for _, ext := range containerExtensions {
			if strings.HasSuffix(lower, ext) {
				title = strings.TrimSpace(title[:len(title)-len(ext)])
				stripped = true
				break
			}
		}
		if !stripped {
			return title
		}
	}
}

// StripVersionStrings removes version, build, date, size, and DLC-count
// tokens anywhere in the title.
func StripVersionStrings(title string) string {
	title = versionPattern.ReplaceAllString(title, " ")
	title = buildPattern.ReplaceAllString(title, " ")
	title = datePattern.ReplaceAllString(title, " ")
	title = sizePattern.ReplaceAllString(title, " ")
	title = dlcCountPattern.ReplaceAllString(title, " ")
	title = updateNumPattern.ReplaceAllString(title, " ")
	return collapseSpaces(title)
}

// StripEditionSuffix removes trailing edition clauses and "+ N DLCs" /
// "+ Bonus ..." tails. Applied repeatedly until the title stops shrinking, so
// stacked decorations ("Deluxe Edition + 4 DLCs") all come off.
func StripEditionSuffix(title string) string {
	result := strings.TrimSpace(title)
	for {
		before := result
		for _, pattern := range editionSuffixPatterns {
			result = strings.TrimSpace(pattern.ReplaceAllString(result, ""))
		}
		result = strings.TrimRight(result, " -:–—+")
		result = strings.TrimSpace(result)
		if result == before || result == "" {
			break
		}
	}
	if result == "" {
		return strings.TrimSpace(title)
	}
	return result
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
