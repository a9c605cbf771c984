package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositiveProbability_ProbabilityRow(t *testing.T) {
	p, err := positiveProbability([]float32{0.3, 0.7}, 1)

	assert.NoError(t, err)
	assert.InDelta(t, 0.7, p, 1e-6)
}

func TestPositiveProbability_SingleLogitFallsBackToSigmoid(t *testing.T) {
	p, err := positiveProbability([]float32{0}, 1)

	assert.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-9)
}

func TestPositiveProbability_EmptyOutput(t *testing.T) {
	_, err := positiveProbability(nil, 1)
	assert.Error(t, err)
}

func TestPositiveProbability_IndexOutOfRange(t *testing.T) {
	_, err := positiveProbability([]float32{0.2, 0.8}, 5)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestSigmoidBounds(t *testing.T) {
	assert.InDelta(t, 0.5, sigmoid(0), 1e-12)
	assert.Greater(t, sigmoid(10), 0.9999)
	assert.Less(t, sigmoid(-10), 0.0001)
}
