package matching

import (
	"gamematch/internal/normalize"
	"gamematch/internal/signal"
	"gamematch/internal/textutil"
)

// Description-similarity blend weights: trigram overlap dominates because it
// is the hardest to match by accident.
const (
	descWordWeight    = 0.2
	descBigramWeight  = 0.3
	descTrigramWeight = 0.5
)

// scoreDescriptionSignals compares the candidate's description against the
// authoritative reference description. Runs only when both are present.
func scoreDescriptionSignals(res *MatchResult, ctx *MatchContext) {
	refDesc := ctx.Description
	candDesc := ctx.CandidateDescription
	if refDesc == "" || candDesc == "" {
		scoreSummaryFallback(res, ctx, candDesc)
		return
	}

	refWords := normalize.Words(refDesc)
	candWords := normalize.Words(candDesc)
	word := setSimilarity(refWords, candWords)
	bigram := setSimilarity(ngrams(refWords, 2), ngrams(candWords, 2))
	trigram := setSimilarity(ngrams(refWords, 3), ngrams(candWords, 3))
	blended := descWordWeight*word + descBigramWeight*bigram + descTrigramWeight*trigram

	res.note(signal.Jaccard("word", word))
	res.note(signal.Jaccard("bigram", bigram))
	res.note(signal.Jaccard("trigram", trigram))
	res.note(signal.LenRatio(lengthRatio(len(refDesc), len(candDesc))))

	switch {
	case blended >= 0.6:
		res.add(40, "description similarity excellent")
	case blended >= 0.4:
		res.add(25, "description similarity strong")
	case blended >= 0.25:
		res.add(15, "description similarity moderate")
	case blended >= 0.15:
		res.add(8, "description similarity weak")
	case blended < 0.05:
		if ctx.DescriptionAuthoritative {
			res.add(-15, "description mismatch")
		} else {
			res.add(-5, "description mismatch")
		}
	}
}

// scoreSummaryFallback compares the catalog summary against the candidate's
// description when no authoritative store description exists. Summaries are
// short editorial blurbs, so agreement earns a small bonus and disagreement
// costs nothing.
func scoreSummaryFallback(res *MatchResult, ctx *MatchContext, candDesc string) {
	summary := ctx.Reference.Summary
	if summary == "" || candDesc == "" {
		return
	}
	sim := textutil.CosineSimilarity(textutil.NewFingerprint(summary), textutil.NewFingerprint(candDesc))
	switch {
	case sim >= 0.5:
		res.add(10, "summary similarity strong")
	case sim >= 0.3:
		res.add(5, "summary similarity moderate")
	}
}

// setSimilarity blends Jaccard with containment so a short description fully
// covered by a long one still scores high.
func setSimilarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := wordSet(a)
	setB := wordSet(b)
	inter := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	jaccard := float64(inter) / float64(union)
	smaller := len(setA)
	if len(setB) < smaller {
		smaller = len(setB)
	}
	containment := float64(inter) / float64(smaller)
	if containment > jaccard {
		return containment
	}
	return jaccard
}

func ngrams(words []string, n int) []string {
	if len(words) < n {
		return nil
	}
	out := make([]string, 0, len(words)-n+1)
	for i := 0; i+n <= len(words); i++ {
		gram := words[i]
		for j := 1; j < n; j++ {
			gram += " " + words[i+j]
		}
		out = append(out, gram)
	}
	return out
}

func lengthRatio(a, b int) float64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	if a > b {
		a, b = b, a
	}
	return float64(a) / float64(b)
}
