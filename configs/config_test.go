package configs_test

import (
	"testing"

	"github.com/resilientlabs/credit-scoring-api/configs"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := configs.Load(zap.NewNop())

	assert.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, ".", cfg.ArtifactDir)
	assert.Equal(t, "credit_scoring_model.json", cfg.ModelFile)
	assert.Equal(t, "scaler.json", cfg.ScalerFile)
	assert.Equal(t, "model_manifest.yaml", cfg.ManifestFile)
	assert.Empty(t, cfg.ArtifactBaseURL)
	assert.Equal(t, 30, cfg.ArtifactFetchTimeoutSec)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9100")
	t.Setenv("APP_ARTIFACT_DIR", "/var/lib/credit-scoring")
	t.Setenv("APP_MODEL_FILE", "credit_scoring_model.onnx")

	cfg, err := configs.Load(zap.NewNop())

	assert.NoError(t, err)
	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, "/var/lib/credit-scoring", cfg.ArtifactDir)
	assert.Equal(t, "credit_scoring_model.onnx", cfg.ModelFile)
}

func TestLoad_InvalidFetchTimeout(t *testing.T) {
	t.Setenv("APP_ARTIFACT_FETCH_TIMEOUT_SECONDS", "0")

	_, err := configs.Load(zap.NewNop())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "APP_ARTIFACT_FETCH_TIMEOUT_SECONDS")
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	t.Setenv("APP_ARTIFACT_BASE_URL", "not a url")

	_, err := configs.Load(zap.NewNop())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "APP_ARTIFACT_BASE_URL")
}
