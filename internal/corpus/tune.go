package corpus

import (
	"errors"

	"gamematch/internal/mlfilter"
)

// ThresholdPoint is one position in a threshold sweep over the labeled set.
type ThresholdPoint struct {
	Threshold     float64
	TruePositive  int
	FalsePositive int
	TrueNegative  int
	FalseNegative int
	Precision     float64
	Recall        float64
	F1            float64
}

// Sweep scores every sample with the artifact and walks steps evenly spaced
// thresholds across (0,1), counting outcomes against the labels at each.
func Sweep(samples []Sample, artifact *mlfilter.Artifact, steps int) ([]ThresholdPoint, error) {
	if artifact == nil {
		return nil, errors.New("sweep requires a model artifact")
	}
	if len(samples) == 0 {
		return nil, errors.New("sweep requires labeled samples")
	}
	if steps < 2 {
		steps = 19
	}

	probabilities := make([]float64, len(samples))
	for i, sample := range samples {
		probabilities[i] = artifact.Probability(mlfilter.ExtractFeatures(sample.Reasons))
	}

	points := make([]ThresholdPoint, 0, steps)
	for step := 1; step <= steps; step++ {
		threshold := float64(step) / float64(steps+1)
		point := ThresholdPoint{Threshold: threshold}
		for i, sample := range samples {
			predicted := probabilities[i] >= threshold
			switch {
			case predicted && sample.Label == 1:
				point.TruePositive++
			case predicted && sample.Label == 0:
				point.FalsePositive++
			case !predicted && sample.Label == 1:
				point.FalseNegative++
			default:
				point.TrueNegative++
			}
		}
		point.Precision, point.Recall, point.F1 = metrics(point)
		points = append(points, point)
	}
	return points, nil
}

// Best returns the point with the highest F1. Ties go to the higher
// threshold, which holds precision when recall is equal.
func Best(points []ThresholdPoint) (ThresholdPoint, bool) {
	if len(points) == 0 {
		return ThresholdPoint{}, false
	}
	best := points[0]
	for _, point := range points[1:] {
		if point.F1 >= best.F1 {
			best = point
		}
	}
	return best, true
}

func metrics(p ThresholdPoint) (precision, recall, f1 float64) {
	if p.TruePositive+p.FalsePositive > 0 {
		precision = float64(p.TruePositive) / float64(p.TruePositive+p.FalsePositive)
	}
	if p.TruePositive+p.FalseNegative > 0 {
		recall = float64(p.TruePositive) / float64(p.TruePositive+p.FalseNegative)
	}
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}
	return precision, recall, f1
}
