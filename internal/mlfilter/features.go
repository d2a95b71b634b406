package mlfilter

import (
	"math"
	"strconv"
	"strings"

	"gamematch/internal/signal"
)

// presenceRules maps exact reason strings to presence-flag features. This
// table mirrors the reason vocabulary rendered by the scorer; any change to
// those strings must be reflected here.
var presenceRules = map[string]string{
	"exact name match":                          "exact_name_match",
	"title contains game name":                  "contains_name",
	"title starts with game name":               "starts_with_name",
	"name occupies most of title":               "short_name_strong",
	"name occupies half of title":               "short_name_half",
	"name contained in longer title":            "short_name_weak",
	"prefixed brand match":                      "prefixed_brand",
	"colon subtitle match":                      "colon_subtitle",
	"matches alternate name":                    "alt_name_match",
	"matches edition title":                     "edition_title_match",
	"all main keywords present":                 "all_keywords",
	"many unrelated extra words":                "many_extra_words",
	"extra unrelated words":                     "extra_words",
	"single word reference with extra words":    "single_word_extra",
	"single word reference with unrelated words": "single_word_unrelated",
	"sequel numbers match":                      "sequel_match",
	"sequel number mismatch":                    "sequel_mismatch",
	"sequel number only in candidate":           "sequel_only_candidate",
	"different sequel":                          "different_sequel",
	"franchise sibling match":                   "franchise_sibling",
	"franchise bundle match":                    "franchise_bundle",
	"edition variant of same game":              "edition_variant",
	"release year match":                        "year_match",
	"release year within 1 year":                "year_close",
	"release year 2-3 years off":                "year_off_2_3",
	"release year 4-5 years off":                "year_off_4_5",
	"release year more than 5 years off":        "year_off_far",
	"description similarity excellent":          "desc_excellent",
	"description similarity strong":             "desc_strong",
	"description similarity moderate":           "desc_moderate",
	"description similarity weak":               "desc_weak",
	"description mismatch":                      "desc_mismatch",
	"platform keywords present":                 "platform_keywords",
	"platform conflicts with reference":         "platform_conflict",
	"platform mismatch (emulator)":              "platform_emulator",
	"candidate size unknown":                    "size_unknown",
}

// sizeLabelFeatures maps size-ratio tier labels onto presence flags.
var sizeLabelFeatures = map[string]string{
	"not a game":           "size_not_a_game",
	"far too small":        "size_far_too_small",
	"smaller than expected": "size_small",
	"excellent repack size": "size_excellent",
	"plausible full size":  "size_full",
	"close to full size":   "size_close",
	"suspiciously large":   "size_large",
}

// ExtractFeatures converts a reasons list into the numeric feature vector
// the model consumes. Unrecognized reasons are ignored; invalid numeric
// payloads are treated as absent.
func ExtractFeatures(reasons []string) map[string]float64 {
	features := make(map[string]float64, len(reasons))
	for _, reason := range reasons {
		if name, ok := presenceRules[reason]; ok {
			features[name] = 1
			continue
		}
		extractNumeric(features, reason)
	}
	return features
}

func extractNumeric(features map[string]float64, reason string) {
	if v, ok := signal.ParseJaccard(reason, "word"); ok {
		setFinite(features, "word_jaccard", v)
		return
	}
	if v, ok := signal.ParseJaccard(reason, "bigram"); ok {
		setFinite(features, "bigram_jaccard", v)
		return
	}
	if v, ok := signal.ParseJaccard(reason, "trigram"); ok {
		setFinite(features, "trigram_jaccard", v)
		return
	}
	if v, ok := signal.ParseLenRatio(reason); ok {
		setFinite(features, "len_ratio", v)
		return
	}
	if label, pct, ok := signal.ParseSizeRatio(reason); ok {
		if name, known := sizeLabelFeatures[label]; known {
			features[name] = 1
		}
		setFinite(features, "size_pct", pct)
		return
	}
	if n, ok := signal.ParseCounter(reason, "seeders"); ok {
		setCount(features, "seeders", n)
		return
	}
	if n, ok := signal.ParseCounter(reason, "leechers"); ok {
		setCount(features, "leechers", n)
		return
	}
	if n, ok := signal.ParseCounter(reason, "grabs"); ok {
		setCount(features, "grabs", n)
		return
	}
	if tokens, ok := signal.ParseExtraTokens(reason); ok {
		features["extra_token_count"] = float64(len(tokens))
		return
	}
	if status, days, ok := signal.ParseReleaseStatus(reason); ok {
		switch status {
		case "upcoming":
			features["upcoming"] = 1
			features["upcoming_days"] = float64(days)
		case "new":
			features["new_release"] = 1
			features["new_release_days"] = float64(days)
		}
		return
	}
	if level, ok := signal.ParseSourceTrust(reason); ok {
		features["trust_"+strings.ToLower(level)] = 1
		return
	}
	if rest, found := strings.CutPrefix(reason, "word match ratio "); found {
		if v, err := strconv.ParseFloat(rest, 64); err == nil {
			setFinite(features, "word_match_ratio", v)
		}
		return
	}
}

func setFinite(features map[string]float64, name string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return
	}
	features[name] = v
}

func setCount(features map[string]float64, name string, n int) {
	if n < 0 {
		return
	}
	features[name] = float64(n)
}
