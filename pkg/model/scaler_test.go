package model_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/resilientlabs/credit-scoring-api/pkg/model"
	"github.com/stretchr/testify/assert"
)

func writeArtifact(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0o644)
	assert.NoError(t, err)
	return path
}

func TestLoadScaler_Success(t *testing.T) {
	dir := t.TempDir()
	path := writeArtifact(t, dir, "scaler.json", `{
		"feature_names": ["Amount", "TransactionCount", "Value"],
		"mean": [2500.0, 5.0, 2400.0],
		"scale": [1200.0, 3.0, 1500.0]
	}`)

	scaler, err := model.LoadScaler(path)

	assert.NoError(t, err)
	assert.Equal(t, []string{"Amount", "TransactionCount", "Value"}, scaler.FeatureNames())
}

func TestLoadScaler_DimensionMismatch(t *testing.T) {
	dir := t.TempDir()
	path := writeArtifact(t, dir, "scaler.json", `{
		"feature_names": ["Amount", "TransactionCount"],
		"mean": [2500.0],
		"scale": [1200.0, 3.0]
	}`)

	_, err := model.LoadScaler(path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "dimension mismatch")
}

func TestLoadScaler_ZeroScale(t *testing.T) {
	dir := t.TempDir()
	path := writeArtifact(t, dir, "scaler.json", `{
		"feature_names": ["Amount"],
		"mean": [2500.0],
		"scale": [0]
	}`)

	_, err := model.LoadScaler(path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "zero scale")
}

func TestLoadScaler_MissingFile(t *testing.T) {
	_, err := model.LoadScaler(filepath.Join(t.TempDir(), "scaler.json"))
	assert.Error(t, err)
}

func TestScalerTransform(t *testing.T) {
	dir := t.TempDir()
	path := writeArtifact(t, dir, "scaler.json", `{
		"feature_names": ["Amount", "TransactionCount", "Value"],
		"mean": [10.0, 2.0, 5.0],
		"scale": [2.0, 1.0, 5.0]
	}`)
	scaler, err := model.LoadScaler(path)
	assert.NoError(t, err)

	scaled, err := scaler.Transform([]float64{12, 3, 0})

	assert.NoError(t, err)
	assert.Equal(t, []float64{1, 1, -1}, scaled)
}

func TestScalerTransform_WrongWidth(t *testing.T) {
	dir := t.TempDir()
	path := writeArtifact(t, dir, "scaler.json", `{
		"feature_names": ["Amount", "TransactionCount", "Value"],
		"mean": [10.0, 2.0, 5.0],
		"scale": [2.0, 1.0, 5.0]
	}`)
	scaler, err := model.LoadScaler(path)
	assert.NoError(t, err)

	_, err = scaler.Transform([]float64{12, 3})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expects 3 features")
}
