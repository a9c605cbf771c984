package model

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// logisticArtifact mirrors credit_scoring_model.json, exported from the
// fitted sklearn LogisticRegression (coef_, intercept_).
type logisticArtifact struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// LogisticModel is the native classifier backend: a logistic regression
// evaluated in pure Go. Stateless after load, safe for concurrent use.
type LogisticModel struct {
	coef      []float64
	intercept float64
}

// LoadLogisticModel reads and validates a logistic regression artifact.
func LoadLogisticModel(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var art logisticArtifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("decode model artifact %s: %w", path, err)
	}
	if len(art.Coefficients) == 0 {
		return nil, fmt.Errorf("model artifact %s has no coefficients", path)
	}

	return &LogisticModel{
		coef:      art.Coefficients,
		intercept: art.Intercept,
	}, nil
}

// NumFeatures returns the coefficient width the model was fitted with.
func (m *LogisticModel) NumFeatures() int {
	return len(m.coef)
}

// PredictProba returns sigmoid(w·x + b), the positive-class probability.
func (m *LogisticModel) PredictProba(_ context.Context, features []float64) (float64, error) {
	if len(features) != len(m.coef) {
		return 0, fmt.Errorf("model expects %d features, got %d", len(m.coef), len(features))
	}
	z := m.intercept
	for i, w := range m.coef {
		z += w * features[i]
	}
	return sigmoid(z), nil
}

func (m *LogisticModel) Close() error { return nil }

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
