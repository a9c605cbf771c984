package model_test

import (
	"context"
	"testing"
	"time"

	"github.com/resilientlabs/credit-scoring-api/pkg/model"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func nativeOptions(dir string) model.LoadOptions {
	return model.LoadOptions{
		Dir:          dir,
		ModelFile:    "credit_scoring_model.json",
		ScalerFile:   "scaler.json",
		ManifestFile: "model_manifest.yaml",
	}
}

func TestBootstrap_NativeBackend(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "scaler.json", `{
		"feature_names": ["Amount", "TransactionCount", "Value"],
		"mean": [2500.0, 5.0, 2400.0],
		"scale": [1200.0, 3.0, 1500.0]
	}`)
	writeArtifact(t, dir, "credit_scoring_model.json", `{
		"coefficients": [0.8, 0.5, 0.4],
		"intercept": -0.2
	}`)
	store := model.NewStore()

	err := model.Bootstrap(context.Background(), zap.NewNop(), store, nativeOptions(dir))

	assert.NoError(t, err)
	assert.True(t, store.Ready())

	arts, err := store.Artifacts()
	assert.NoError(t, err)
	assert.Equal(t, model.DefaultThreshold, arts.Manifest.Threshold)

	scaled, err := arts.Scaler.Transform([]float64{2500, 3, 2600})
	assert.NoError(t, err)
	first, err := arts.Classifier.PredictProba(context.Background(), scaled)
	assert.NoError(t, err)
	second, err := arts.Classifier.PredictProba(context.Background(), scaled)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first, 0.0)
	assert.LessOrEqual(t, first, 1.0)
}

func TestBootstrap_ManifestOverridesThreshold(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "scaler.json", `{
		"feature_names": ["Amount"],
		"mean": [0.0],
		"scale": [1.0]
	}`)
	writeArtifact(t, dir, "credit_scoring_model.json", `{"coefficients": [1.0], "intercept": 0}`)
	writeArtifact(t, dir, "model_manifest.yaml", "threshold: 0.3\npositive_class: 1\n")
	store := model.NewStore()

	err := model.Bootstrap(context.Background(), zap.NewNop(), store, nativeOptions(dir))

	assert.NoError(t, err)
	arts, err := store.Artifacts()
	assert.NoError(t, err)
	assert.Equal(t, 0.3, arts.Manifest.Threshold)
}

func TestBootstrap_MissingArtifactsLeavesStoreEmpty(t *testing.T) {
	store := model.NewStore()

	err := model.Bootstrap(context.Background(), zap.NewNop(), store, nativeOptions(t.TempDir()))

	assert.Error(t, err)
	assert.False(t, store.Ready())
}

func TestBootstrap_WidthMismatch(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "scaler.json", `{
		"feature_names": ["Amount", "Value"],
		"mean": [0.0, 0.0],
		"scale": [1.0, 1.0]
	}`)
	writeArtifact(t, dir, "credit_scoring_model.json", `{"coefficients": [1.0], "intercept": 0}`)
	store := model.NewStore()

	err := model.Bootstrap(context.Background(), zap.NewNop(), store, nativeOptions(dir))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fitted with 1 features but scaler has 2")
	assert.False(t, store.Ready())
}

func TestBootstrap_UnsupportedModelFormat(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "scaler.json", `{
		"feature_names": ["Amount"],
		"mean": [0.0],
		"scale": [1.0]
	}`)
	writeArtifact(t, dir, "credit_scoring_model.pkl", "not a go-readable artifact")
	opts := nativeOptions(dir)
	opts.ModelFile = "credit_scoring_model.pkl"
	store := model.NewStore()

	err := model.Bootstrap(context.Background(), zap.NewNop(), store, opts)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported model artifact format")
}

func TestBootstrap_FetchesFromRemote(t *testing.T) {
	srv, hits := artifactServer(t, true, false)
	dir := t.TempDir()
	opts := nativeOptions(dir)
	opts.BaseURL = srv.URL
	opts.FetchTimeout = 5 * time.Second
	store := model.NewStore()

	err := model.Bootstrap(context.Background(), zap.NewNop(), store, opts)

	assert.NoError(t, err)
	assert.True(t, store.Ready())
	assert.Equal(t, int32(2), hits.Load())
}
