package textutil

// CosineSimilarity scores how much two description fingerprints overlap, in
// [0, 1]. Store blurbs and catalog summaries rarely share exact phrasing, so
// term-frequency cosine is the comparison rather than substring matching.
// Nil or empty fingerprints score 0.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}

	// Walk the smaller term map; a terse store blurb against a long catalog
	// summary only ever shares the blurb's terms.
	small, large := a, b
	if len(b.tokens) < len(a.tokens) {
		small, large = b, a
	}

	var dot float64
	for token, count := range small.tokens {
		if other, ok := large.tokens[token]; ok {
			dot += count * other
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}
