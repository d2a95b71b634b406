package mlfilter

import (
	"strings"

	"gamematch/internal/matching"
	"gamematch/internal/signal"
)

// Decision policies.
const (
	PolicyGate   = "gate"
	PolicyTriage = "triage"
)

// Options tune the filter's decision policy. Threshold values at or below
// zero mean "not set"; resolution precedence for each threshold is
// per-source, then per-trust-level, then global, then the artifact default.
type Options struct {
	Policy string

	AcceptThreshold float64
	RejectThreshold float64

	TrustAcceptThresholds  map[string]float64
	TrustRejectThresholds  map[string]float64
	SourceAcceptThresholds map[string]float64
	SourceRejectThresholds map[string]float64

	// ReviewSources force accepted candidates into review. Entries ending
	// in '*' match source keys by prefix.
	ReviewSources []string
}

// Filter converts heuristic signals into a calibrated probability and
// applies the configured accept/review/reject policy. A nil Filter is a
// no-op, which is how a missing or corrupt artifact disables the component.
type Filter struct {
	artifact *Artifact
	opts     Options
}

// New builds a filter around a loaded artifact. Returns nil when the
// artifact is nil so callers can pass the result straight through.
func New(artifact *Artifact, opts Options) *Filter {
	if artifact == nil {
		return nil
	}
	if opts.Policy == "" {
		opts.Policy = PolicyGate
	}
	return &Filter{artifact: artifact, opts: opts}
}

// Apply mutates result in place: appends the model probability trace and
// enforces the decision policy. Never fails; a nil filter passes the
// heuristic result through unchanged.
func (f *Filter) Apply(result *matching.MatchResult) {
	if f == nil || f.artifact == nil || result == nil {
		return
	}

	features := ExtractFeatures(result.Reasons)
	p := f.artifact.Probability(features)
	result.Reasons = append(result.Reasons, signal.MLProbability(p))

	sourceKey, trust := sourceIdentity(result.Reasons)
	accept := f.resolveThreshold(sourceKey, trust, f.opts.SourceAcceptThresholds, f.opts.TrustAcceptThresholds, f.opts.AcceptThreshold, f.artifact.Threshold)
	reject := f.resolveThreshold(sourceKey, trust, f.opts.SourceRejectThresholds, f.opts.TrustRejectThresholds, f.opts.RejectThreshold, f.artifact.Threshold/2)

	switch f.opts.Policy {
	case PolicyTriage:
		f.applyTriage(result, p, accept, reject, sourceKey)
	default:
		f.applyGate(result, p, accept, sourceKey)
	}
}

func (f *Filter) applyGate(result *matching.MatchResult, p, threshold float64, sourceKey string) {
	if p < threshold {
		result.Matches = false
		result.Reasons = append(result.Reasons, "ml reject")
		return
	}
	if f.needsReview(result.Reasons, sourceKey) {
		result.Reasons = append(result.Reasons, "ml review")
		return
	}
	result.Reasons = append(result.Reasons, "ml accept")
}

func (f *Filter) applyTriage(result *matching.MatchResult, p, accept, reject float64, sourceKey string) {
	switch {
	case p < reject:
		result.Matches = false
		result.Reasons = append(result.Reasons, "ml reject")
	case p >= accept:
		result.Matches = true
		if f.needsReview(result.Reasons, sourceKey) {
			result.Reasons = append(result.Reasons, "ml review")
		} else {
			result.Reasons = append(result.Reasons, "ml accept")
		}
	default:
		// Middle band: the heuristic decision stands, flagged for a human.
		result.Reasons = append(result.Reasons, "ml review")
	}
}

// needsReview flags candidates from forced-review sources and references
// that are upcoming or newly released.
func (f *Filter) needsReview(reasons []string, sourceKey string) bool {
	for _, pattern := range f.opts.ReviewSources {
		if matchSourcePattern(pattern, sourceKey) {
			return true
		}
	}
	for _, reason := range reasons {
		if _, _, ok := signal.ParseReleaseStatus(reason); ok {
			return true
		}
	}
	return false
}

func matchSourcePattern(pattern, sourceKey string) bool {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" || sourceKey == "" {
		return false
	}
	if prefix, found := strings.CutSuffix(pattern, "*"); found {
		return strings.HasPrefix(sourceKey, prefix)
	}
	return pattern == sourceKey
}

// resolveThreshold applies the override precedence chain. Values at or below
// zero do not count as set.
func (f *Filter) resolveThreshold(sourceKey, trust string, bySource, byTrust map[string]float64, global, fallback float64) float64 {
	if sourceKey != "" {
		if v, ok := bySource[sourceKey]; ok && v > 0 {
			return v
		}
	}
	if trust != "" {
		if v, ok := byTrust[trust]; ok && v > 0 {
			return v
		}
	}
	if global > 0 {
		return global
	}
	return fallback
}

func sourceIdentity(reasons []string) (sourceKey, trust string) {
	for _, reason := range reasons {
		if key, ok := signal.ParseSourceKey(reason); ok {
			sourceKey = key
			continue
		}
		if level, ok := signal.ParseSourceTrust(reason); ok {
			trust = strings.ToLower(level)
		}
	}
	return sourceKey, trust
}
