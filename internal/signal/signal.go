package signal

import (
	"fmt"
	"strconv"
	"strings"
)

// Reason separator used when a reasons list is flattened to a single CSV
// column and split back apart.
const Separator = "|"

// Join flattens a reasons list to the CSV wire form.
func Join(reasons []string) string {
	return strings.Join(reasons, Separator)
}

// Split restores a reasons list from the CSV wire form.
func Split(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	parts := strings.Split(joined, Separator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SourceTrust renders the trust-level trace for a candidate's source.
func SourceTrust(level string) string {
	return "source trust: " + level
}

// ParseSourceTrust extracts the trust level from a reason string.
func ParseSourceTrust(reason string) (string, bool) {
	return parsePrefixed(reason, "source trust: ")
}

// SourceKey renders the source-key trace.
func SourceKey(key string) string {
	return "source key: " + key
}

// ParseSourceKey extracts the source key from a reason string.
func ParseSourceKey(reason string) (string, bool) {
	return parsePrefixed(reason, "source key: ")
}

// MLProbability renders the model filter's blended probability, two decimal
// places.
func MLProbability(p float64) string {
	return fmt.Sprintf("ml probability %.2f", p)
}

// ParseMLProbability extracts the model probability from a reason string.
func ParseMLProbability(reason string) (float64, bool) {
	return parsePrefixedFloat(reason, "ml probability ")
}

// ReleaseStatusUpcoming renders the trace for a reference that is not yet
// released; days is the time until release.
func ReleaseStatusUpcoming(days int) string {
	return fmt.Sprintf("release status upcoming (%dd)", days)
}

// ReleaseStatusNew renders the trace for a recently released reference; days
// is the time since release.
func ReleaseStatusNew(days int) string {
	return fmt.Sprintf("release status new (%dd)", days)
}

// ParseReleaseStatus extracts the status ("upcoming" or "new") and day count
// from a release-status reason.
func ParseReleaseStatus(reason string) (status string, days int, ok bool) {
	rest, found := parsePrefixed(reason, "release status ")
	if !found {
		return "", 0, false
	}
	open := strings.Index(rest, " (")
	if open < 0 || !strings.HasSuffix(rest, "d)") {
		return "", 0, false
	}
	status = rest[:open]
	n, err := strconv.Atoi(rest[open+2 : len(rest)-2])
	if err != nil {
		return "", 0, false
	}
	return status, n, true
}

// Jaccard renders a similarity trace for the named metric ("word", "bigram",
// "trigram"), three decimal places.
func Jaccard(metric string, v float64) string {
	return fmt.Sprintf("%s jaccard %.3f", metric, v)
}

// ParseJaccard extracts the named metric's value from a reason string.
func ParseJaccard(reason, metric string) (float64, bool) {
	return parsePrefixedFloat(reason, metric+" jaccard ")
}

// LenRatio renders the description length-ratio trace, three decimal places.
func LenRatio(v float64) string {
	return fmt.Sprintf("len ratio %.3f", v)
}

// ParseLenRatio extracts the length ratio from a reason string.
func ParseLenRatio(reason string) (float64, bool) {
	return parsePrefixedFloat(reason, "len ratio ")
}

// Seeders, Leechers, and Grabs render availability counters.
func Seeders(n int) string  { return fmt.Sprintf("seeders: %d", n) }
func Leechers(n int) string { return fmt.Sprintf("leechers: %d", n) }
func Grabs(n int) string    { return fmt.Sprintf("grabs: %d", n) }

// ParseCounter extracts an availability counter ("seeders", "leechers",
// "grabs") from a reason string.
func ParseCounter(reason, name string) (int, bool) {
	rest, found := parsePrefixed(reason, name+": ")
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ExtraTokens renders the leftover-token trace: candidate tokens that match
// nothing in the reference record.
func ExtraTokens(tokens []string) string {
	return fmt.Sprintf("hydra extra tokens (%s)", strings.Join(tokens, ","))
}

// ParseExtraTokens extracts the leftover tokens from a reason string.
func ParseExtraTokens(reason string) ([]string, bool) {
	rest, found := parsePrefixed(reason, "hydra extra tokens (")
	if !found || !strings.HasSuffix(rest, ")") {
		return nil, false
	}
	body := strings.TrimSuffix(rest, ")")
	if body == "" {
		return nil, true
	}
	return strings.Split(body, ","), true
}

// SizeRatio renders a size-validation trace: a tier label plus the candidate
// size as a whole percentage of the authoritative size.
func SizeRatio(label string, pct float64) string {
	return fmt.Sprintf("%s (%.0f%% of Steam)", label, pct)
}

// ParseSizeRatio extracts the tier label and percentage from a
// size-validation reason.
func ParseSizeRatio(reason string) (label string, pct float64, ok bool) {
	const suffix = "% of Steam)"
	if !strings.HasSuffix(reason, suffix) {
		return "", 0, false
	}
	open := strings.LastIndex(reason, " (")
	if open < 0 {
		return "", 0, false
	}
	label = reason[:open]
	v, err := strconv.ParseFloat(reason[open+2:len(reason)-len(suffix)], 64)
	if err != nil {
		return "", 0, false
	}
	return label, v, true
}

func parsePrefixed(reason, prefix string) (string, bool) {
	if !strings.HasPrefix(reason, prefix) {
		return "", false
	}
	return reason[len(prefix):], true
}

func parsePrefixedFloat(reason, prefix string) (float64, bool) {
	rest, found := parsePrefixed(reason, prefix)
	if !found {
		return 0, false
	}
	v, err := strconv.ParseFloat(rest, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
