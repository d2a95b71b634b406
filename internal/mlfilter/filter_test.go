package mlfilter

import (
	"math"
	"testing"

	"gamematch/internal/matching"
	"gamematch/internal/signal"
)

const logisticOnlyArtifact = `{
	"type": "logistic",
	"threshold": 0.5,
	"logistic": {
		"bias": -1.0,
		"weights": {"exact_name_match": 4.0, "sequel_mismatch": -3.0},
		"featureNames": ["exact_name_match", "sequel_mismatch"]
	}
}`

const ensembleArtifact = `{
	"type": "ensemble",
	"threshold": 0.6,
	"ensembleWeight": 0.4,
	"logistic": {
		"bias": 0.0,
		"weights": {"exact_name_match": 2.0}
	},
	"trees": [
		{"nodes": [
			{"feature": "size_pct", "threshold": 5, "left": 1, "right": 2},
			{"leaf": true, "value": -2.0},
			{"leaf": true, "value": 2.0}
		]}
	]
}`

func TestParseLogisticOnly(t *testing.T) {
	art, err := Parse([]byte(logisticOnlyArtifact))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	p := art.Probability(map[string]float64{"exact_name_match": 1})
	want := 1 / (1 + math.Exp(-3.0))
	if math.Abs(p-want) > 1e-9 {
		t.Fatalf("probability %v, want %v", p, want)
	}
	if len(art.FeatureNames) != 2 {
		t.Fatalf("unexpected feature names %v", art.FeatureNames)
	}
}

func TestParseEnsembleBlend(t *testing.T) {
	art, err := Parse([]byte(ensembleArtifact))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	features := map[string]float64{"exact_name_match": 1, "size_pct": 50}
	logistic := 1 / (1 + math.Exp(-2.0))
	trees := 1 / (1 + math.Exp(-2.0))
	want := 0.6*logistic + 0.4*trees
	if p := art.Probability(features); math.Abs(p-want) > 1e-9 {
		t.Fatalf("probability %v, want %v", p, want)
	}
}

func TestParseRejectsCorruptArtifact(t *testing.T) {
	if _, err := Parse([]byte(`{"threshold": 1.5, "logistic": {"bias": 0, "weights": {}}}`)); err == nil {
		t.Fatal("out-of-range threshold should fail")
	}
	if _, err := Parse([]byte(`not json`)); err == nil {
		t.Fatal("garbage should fail")
	}
	if _, err := Parse([]byte(`{"threshold": 0.5}`)); err == nil {
		t.Fatal("missing logistic section should fail")
	}
}

func TestNilFilterIsNoOp(t *testing.T) {
	var f *Filter
	res := matching.MatchResult{Matches: true, Score: 90, Reasons: []string{"exact name match"}}
	f.Apply(&res)
	if !res.Matches || res.Score != 90 || len(res.Reasons) != 1 {
		t.Fatalf("nil filter must not touch the result: %+v", res)
	}
	if New(nil, Options{}) != nil {
		t.Fatal("New with nil artifact should return nil")
	}
}

func TestGatePolicy(t *testing.T) {
	art, err := Parse([]byte(logisticOnlyArtifact))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	f := New(art, Options{Policy: PolicyGate})

	accept := matching.MatchResult{Matches: true, Score: 90, Reasons: []string{"exact name match"}}
	f.Apply(&accept)
	if !accept.Matches || !hasReason(accept.Reasons, "ml accept") {
		t.Fatalf("high probability should accept: %+v", accept)
	}
	if !hasReasonPrefix(accept.Reasons, "ml probability ") {
		t.Fatalf("missing probability trace: %v", accept.Reasons)
	}

	reject := matching.MatchResult{Matches: true, Score: 80, Reasons: []string{"sequel number mismatch"}}
	f.Apply(&reject)
	if reject.Matches || !hasReason(reject.Reasons, "ml reject") {
		t.Fatalf("low probability should force reject: %+v", reject)
	}
}

func TestGatePolicyForcedReview(t *testing.T) {
	art, _ := Parse([]byte(logisticOnlyArtifact))
	f := New(art, Options{Policy: PolicyGate, ReviewSources: []string{"hydra*"}})

	res := matching.MatchResult{Matches: true, Score: 90, Reasons: []string{
		"exact name match",
		signal.SourceKey("hydra.fitgirl"),
	}}
	f.Apply(&res)
	if !hasReason(res.Reasons, "ml review") {
		t.Fatalf("forced-review source should review: %v", res.Reasons)
	}

	upcoming := matching.MatchResult{Matches: true, Score: 90, Reasons: []string{
		"exact name match",
		signal.ReleaseStatusUpcoming(30),
	}}
	f.Apply(&upcoming)
	if !hasReason(upcoming.Reasons, "ml review") {
		t.Fatalf("upcoming reference should review: %v", upcoming.Reasons)
	}
}

func TestTriagePolicyBands(t *testing.T) {
	art, _ := Parse([]byte(logisticOnlyArtifact))
	f := New(art, Options{Policy: PolicyTriage, AcceptThreshold: 0.9, RejectThreshold: 0.2})

	low := matching.MatchResult{Matches: true, Score: 75, Reasons: []string{"sequel mismatch trace", "sequel number mismatch"}}
	f.Apply(&low)
	if low.Matches || !hasReason(low.Reasons, "ml reject") {
		t.Fatalf("below reject band should force false: %+v", low)
	}

	high := matching.MatchResult{Matches: false, Score: 60, Reasons: []string{"exact name match"}}
	f.Apply(&high)
	if !high.Matches || !hasReason(high.Reasons, "ml accept") {
		t.Fatalf("accept band should confirm: %+v", high)
	}

	middle := matching.MatchResult{Matches: true, Score: 72, Reasons: []string{}}
	f.Apply(&middle)
	if !middle.Matches || !hasReason(middle.Reasons, "ml review") {
		t.Fatalf("middle band keeps the heuristic decision, flags review: %+v", middle)
	}
}

func TestThresholdPrecedence(t *testing.T) {
	art, _ := Parse([]byte(logisticOnlyArtifact))
	f := New(art, Options{
		Policy:                 PolicyGate,
		AcceptThreshold:        0.10,
		TrustAcceptThresholds:  map[string]float64{"trusted": 0.20},
		SourceAcceptThresholds: map[string]float64{"somesite": 0.99},
	})

	// Probability for "exact name match" alone is sigmoid(3) ~ 0.95: above
	// the trust override, below the source override.
	res := matching.MatchResult{Matches: true, Score: 90, Reasons: []string{
		"exact name match",
		signal.SourceTrust("trusted"),
		signal.SourceKey("somesite"),
	}}
	f.Apply(&res)
	if res.Matches {
		t.Fatalf("source-specific override must win over trust override: %+v", res)
	}

	trustOnly := matching.MatchResult{Matches: true, Score: 90, Reasons: []string{
		"exact name match",
		signal.SourceTrust("trusted"),
	}}
	f.Apply(&trustOnly)
	if !trustOnly.Matches {
		t.Fatalf("trust override should accept: %+v", trustOnly)
	}
}

func TestExtractFeatures(t *testing.T) {
	reasons := []string{
		"exact name match",
		"word jaccard 0.412",
		"excellent repack size (45% of Steam)",
		"seeders: 12",
		"hydra extra tokens (souls,horror)",
		"source trust: trusted",
		"word match ratio 0.833",
		"release status upcoming (14d)",
		"some reason nobody parses",
	}
	features := ExtractFeatures(reasons)
	checks := map[string]float64{
		"exact_name_match": 1,
		"word_jaccard":     0.412,
		"size_excellent":   1,
		"size_pct":         45,
		"seeders":          12,
		"extra_token_count": 2,
		"trust_trusted":    1,
		"word_match_ratio": 0.833,
		"upcoming":         1,
		"upcoming_days":    14,
	}
	for name, want := range checks {
		if got, ok := features[name]; !ok || math.Abs(got-want) > 1e-9 {
			t.Fatalf("feature %s = %v (present %v), want %v", name, got, ok, want)
		}
	}
	if _, ok := features["some reason nobody parses"]; ok {
		t.Fatal("unknown reasons must be ignored")
	}
}

func hasReason(reasons []string, want string) bool {
	for _, r := range reasons {
		if r == want {
			return true
		}
	}
	return false
}

func hasReasonPrefix(reasons []string, prefix string) bool {
	for _, r := range reasons {
		if len(r) >= len(prefix) && r[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
