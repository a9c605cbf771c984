// Package model loads and serves the pre-trained credit scoring artifacts:
// a fitted feature scaler plus a binary classifier. Artifacts are produced
// and versioned outside this service; this package only reads them.
package model

import "context"

// FeatureScaler transforms a raw feature vector into the scaled space the
// classifier was trained on. FeatureNames returns the fitted column order,
// which is authoritative for assembling request vectors.
type FeatureScaler interface {
	FeatureNames() []string
	Transform(raw []float64) ([]float64, error)
}

// Classifier produces the positive-class (default) probability for a scaled
// feature vector. Implementations must be safe for concurrent use.
type Classifier interface {
	PredictProba(ctx context.Context, features []float64) (float64, error)
	Close() error
}
