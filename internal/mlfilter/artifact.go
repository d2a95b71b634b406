package mlfilter

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed artifact_schema.json
var artifactSchema string

// model computes a raw probability from an extracted feature vector.
// Implementations are immutable after load.
type model interface {
	probability(features map[string]float64) float64
}

// Artifact is the immutable, process-lifetime model handle. Construct once
// with Load and share freely; concurrent reads need no synchronization.
type Artifact struct {
	Threshold    float64
	FeatureNames []string
	model        model
}

// Probability computes the blended match probability for a feature vector.
func (a *Artifact) Probability(features map[string]float64) float64 {
	return a.model.probability(features)
}

// artifactFile mirrors the JSON layout on disk.
type artifactFile struct {
	Type           string        `json:"type"`
	Threshold      float64       `json:"threshold"`
	EnsembleWeight float64       `json:"ensembleWeight"`
	Logistic       logisticModel `json:"logistic"`
	Trees          []tree        `json:"trees"`
}

type logisticModel struct {
	Bias         float64            `json:"bias"`
	Weights      map[string]float64 `json:"weights"`
	FeatureNames []string           `json:"featureNames"`
}

func (m logisticModel) probability(features map[string]float64) float64 {
	z := m.Bias
	for name, weight := range m.Weights {
		if v, ok := features[name]; ok {
			z += weight * v
		}
	}
	return sigmoid(z)
}

// ensembleModel blends the logistic head with a tree ensemble:
// (1-w)*sigmoid(logistic) + w*sigmoid(treeSum).
type ensembleModel struct {
	logistic logisticModel
	trees    []tree
	weight   float64
}

func (m ensembleModel) probability(features map[string]float64) float64 {
	logit := m.logistic.Bias
	for name, weight := range m.logistic.Weights {
		if v, ok := features[name]; ok {
			logit += weight * v
		}
	}
	var treeSum float64
	for _, t := range m.trees {
		treeSum += t.eval(features)
	}
	return (1-m.weight)*sigmoid(logit) + m.weight*sigmoid(treeSum)
}

type treeNode struct {
	Feature   string  `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      int     `json:"left,omitempty"`
	Right     int     `json:"right,omitempty"`
	Leaf      bool    `json:"leaf,omitempty"`
	Value     float64 `json:"value,omitempty"`
}

type tree struct {
	Nodes []treeNode `json:"nodes"`
}

// eval walks the tree from the root. Missing features read as zero. A
// malformed child index terminates the walk as a zero-value leaf.
func (t tree) eval(features map[string]float64) float64 {
	idx := 0
	for steps := 0; steps <= len(t.Nodes); steps++ {
		if idx < 0 || idx >= len(t.Nodes) {
			return 0
		}
		node := t.Nodes[idx]
		if node.Leaf {
			return node.Value
		}
		if features[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
	return 0
}

func sigmoid(z float64) float64 {
	if math.IsNaN(z) {
		return 0
	}
	return 1 / (1 + math.Exp(-z))
}

// Load reads and validates a model artifact. The trees section is optional;
// without it the artifact runs in logistic-only mode.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	return Parse(data)
}

// Parse builds an Artifact from raw JSON.
func Parse(data []byte) (*Artifact, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}
	var file artifactFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}
	if file.Threshold <= 0 || file.Threshold >= 1 {
		return nil, fmt.Errorf("model artifact: threshold %v outside (0,1)", file.Threshold)
	}

	art := &Artifact{Threshold: file.Threshold}
	if len(file.Logistic.FeatureNames) > 0 {
		art.FeatureNames = file.Logistic.FeatureNames
	} else {
		for name := range file.Logistic.Weights {
			art.FeatureNames = append(art.FeatureNames, name)
		}
	}
	if len(file.Trees) > 0 {
		weight := file.EnsembleWeight
		if weight < 0 || weight > 1 || math.IsNaN(weight) {
			weight = 0.5
		}
		art.model = ensembleModel{logistic: file.Logistic, trees: file.Trees, weight: weight}
	} else {
		art.model = file.Logistic
	}
	return art, nil
}

func validateSchema(data []byte) error {
	schema := gojsonschema.NewStringLoader(artifactSchema)
	doc := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(schema, doc)
	if err != nil {
		return fmt.Errorf("validate model artifact: %w", err)
	}
	if !result.Valid() {
		return fmt.Errorf("model artifact does not match schema: %v", result.Errors())
	}
	return nil
}
