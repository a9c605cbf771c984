package model_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/resilientlabs/credit-scoring-api/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestLoadLogisticModel_Success(t *testing.T) {
	dir := t.TempDir()
	path := writeArtifact(t, dir, "credit_scoring_model.json", `{
		"coefficients": [0.4, -0.3, 0.2],
		"intercept": -0.1
	}`)

	m, err := model.LoadLogisticModel(path)

	assert.NoError(t, err)
	assert.Equal(t, 3, m.NumFeatures())
}

func TestLoadLogisticModel_EmptyCoefficients(t *testing.T) {
	dir := t.TempDir()
	path := writeArtifact(t, dir, "credit_scoring_model.json", `{"coefficients": [], "intercept": 0}`)

	_, err := model.LoadLogisticModel(path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no coefficients")
}

func TestLogisticPredictProba(t *testing.T) {
	dir := t.TempDir()
	path := writeArtifact(t, dir, "credit_scoring_model.json", `{
		"coefficients": [0.4, -0.3, 0.2],
		"intercept": -0.1
	}`)
	m, err := model.LoadLogisticModel(path)
	assert.NoError(t, err)

	// z = -0.1 + 0.4*1 - 0.3*2 + 0.2*3 = 0.3
	p, err := m.PredictProba(context.Background(), []float64{1, 2, 3})

	assert.NoError(t, err)
	assert.InDelta(t, 0.5744425168116589, p, 1e-9)
}

func TestLogisticPredictProba_Deterministic(t *testing.T) {
	dir := t.TempDir()
	path := writeArtifact(t, dir, "credit_scoring_model.json", `{
		"coefficients": [0.02, -1.5, 0.003],
		"intercept": 0.25
	}`)
	m, err := model.LoadLogisticModel(path)
	assert.NoError(t, err)

	first, err := m.PredictProba(context.Background(), []float64{2500, 3, 2600})
	assert.NoError(t, err)
	second, err := m.PredictProba(context.Background(), []float64{2500, 3, 2600})
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLogisticPredictProba_WrongWidth(t *testing.T) {
	dir := t.TempDir()
	path := writeArtifact(t, dir, "credit_scoring_model.json", `{
		"coefficients": [0.4, -0.3],
		"intercept": 0
	}`)
	m, err := model.LoadLogisticModel(path)
	assert.NoError(t, err)

	_, err = m.PredictProba(context.Background(), []float64{1})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expects 2 features")
}

func TestLoadLogisticModel_MissingFile(t *testing.T) {
	_, err := model.LoadLogisticModel(filepath.Join(t.TempDir(), "credit_scoring_model.json"))
	assert.Error(t, err)
}
