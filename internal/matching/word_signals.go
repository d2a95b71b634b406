package matching

import (
	"fmt"

	"gamematch/internal/normalize"
	"gamematch/internal/signal"
)

// scoreWordSignals awards the word-ratio group: how many of the reference's
// meaningful words the candidate carries, and how many unrelated words it
// adds on top.
func scoreWordSignals(res *MatchResult, title string, ctx *MatchContext) {
	refWords := normalize.Words(ctx.Reference.Name)
	refMeaningful := normalize.MeaningfulWords(refWords)
	candWords := normalize.Words(title)
	candSet := wordSet(candWords)

	if len(refMeaningful) > 0 {
		matched := 0
		for _, w := range refMeaningful {
			if _, ok := candSet[w]; ok {
				matched++
			}
		}
		ratio := float64(matched) / float64(len(refMeaningful))
		switch {
		case ratio >= 0.9:
			res.add(20, fmt.Sprintf("word match ratio %.3f", ratio))
		case ratio >= 0.75:
			res.add(15, fmt.Sprintf("word match ratio %.3f", ratio))
		case ratio >= 0.5:
			res.add(8, fmt.Sprintf("word match ratio %.3f", ratio))
		}
		if matched == len(refMeaningful) && normalize.AllWordsPresentIsSafe(ctx.Reference.Name, title) {
			res.add(15, "all main keywords present")
		}
	}

	extras := extraCandidateWords(candWords, ctx)
	if len(extras) == 0 {
		return
	}
	res.note(signal.ExtraTokens(extras))

	refLen := len(refMeaningful)
	if refLen == 0 {
		refLen = len(refWords)
	}
	switch {
	case len(extras) >= refLen+2:
		res.add(-15, "many unrelated extra words")
	case len(extras) >= (refLen+1)/2:
		res.add(-5, "extra unrelated words")
	}

	if len(refWords) == 1 {
		if _, whole := wordSet(candWords)[refWords[0]]; whole {
			res.add(-10, "single word reference with extra words")
		} else {
			res.add(-60, "single word reference with unrelated words")
		}
	}
}

// extraCandidateWords returns the candidate's meaningful words that match
// nothing in the reference record: not the name, not an alias, not an
// edition title.
func extraCandidateWords(candWords []string, ctx *MatchContext) []string {
	known := wordSet(normalize.Words(ctx.Reference.Name))
	for _, alt := range ctx.Reference.AlternativeNames {
		for _, w := range normalize.Words(alt.Name) {
			known[w] = struct{}{}
		}
	}
	for _, edition := range ctx.Reference.EditionTitles {
		for _, w := range normalize.Words(edition) {
			known[w] = struct{}{}
		}
	}
	var extras []string
	for _, w := range normalize.MeaningfulWords(candWords) {
		if _, ok := known[w]; ok {
			continue
		}
		extras = append(extras, w)
	}
	return extras
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
