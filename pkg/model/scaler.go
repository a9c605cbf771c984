package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// scalerArtifact mirrors scaler.json, exported from the fitted
// sklearn StandardScaler (feature_names_in_, mean_, scale_).
type scalerArtifact struct {
	FeatureNames []string  `json:"feature_names"`
	Mean         []float64 `json:"mean"`
	Scale        []float64 `json:"scale"`
}

// StandardScaler applies the fitted standard-score transform
// scaled[i] = (raw[i] - mean[i]) / scale[i].
type StandardScaler struct {
	featureNames []string
	mean         []float64
	scale        []float64
}

// LoadScaler reads and validates a scaler artifact from disk.
func LoadScaler(path string) (*StandardScaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scaler artifact: %w", err)
	}

	var art scalerArtifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("decode scaler artifact %s: %w", path, err)
	}

	n := len(art.FeatureNames)
	if n == 0 {
		return nil, fmt.Errorf("scaler artifact %s has no feature names", path)
	}
	if len(art.Mean) != n || len(art.Scale) != n {
		return nil, fmt.Errorf("scaler artifact %s dimension mismatch: %d features, %d means, %d scales",
			path, n, len(art.Mean), len(art.Scale))
	}
	for i, s := range art.Scale {
		if s == 0 {
			return nil, fmt.Errorf("scaler artifact %s has zero scale for feature %s", path, art.FeatureNames[i])
		}
	}

	return &StandardScaler{
		featureNames: art.FeatureNames,
		mean:         art.Mean,
		scale:        art.Scale,
	}, nil
}

// FeatureNames returns the fitted column order.
func (s *StandardScaler) FeatureNames() []string {
	return s.featureNames
}

// Transform scales a raw vector. The input length must match the fitted width.
func (s *StandardScaler) Transform(raw []float64) ([]float64, error) {
	if len(raw) != len(s.featureNames) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.featureNames), len(raw))
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = (v - s.mean[i]) / s.scale[i]
	}
	return out, nil
}
