package textutil

import "testing"

func TestCosineSimilarityIdenticalText(t *testing.T) {
	a := NewFingerprint("Rebuild a fallen kingdom and defend it against the horde")
	b := NewFingerprint("Rebuild a fallen kingdom and defend it against the horde")
	if sim := CosineSimilarity(a, b); sim < 0.999 {
		t.Fatalf("identical text should be ~1.0, got %f", sim)
	}
}

func TestCosineSimilarityDisjointText(t *testing.T) {
	a := NewFingerprint("roguelike dungeon crawler with permadeath")
	b := NewFingerprint("farming simulator about growing turnips")
	if sim := CosineSimilarity(a, b); sim != 0 {
		t.Fatalf("disjoint text should be 0, got %f", sim)
	}
}

func TestCosineSimilarityPartialOverlap(t *testing.T) {
	a := NewFingerprint("explore a hand crafted open world full of secrets")
	b := NewFingerprint("explore an open world and uncover its secrets")
	sim := CosineSimilarity(a, b)
	if sim <= 0 || sim >= 1 {
		t.Fatalf("partial overlap should land strictly between 0 and 1, got %f", sim)
	}
}

func TestNewFingerprintEmptyInput(t *testing.T) {
	if fp := NewFingerprint("a an to"); fp != nil {
		t.Fatalf("all-filler input should produce nil, got %d tokens", fp.TokenCount())
	}
	if sim := CosineSimilarity(nil, NewFingerprint("anything here")); sim != 0 {
		t.Fatalf("nil fingerprint should score 0, got %f", sim)
	}
}

func TestTokenizeDropsShortTokens(t *testing.T) {
	tokens := Tokenize("Go to the Keep at IV")
	for _, tok := range tokens {
		if len(tok) < 3 {
			t.Fatalf("short token %q survived", tok)
		}
	}
}
