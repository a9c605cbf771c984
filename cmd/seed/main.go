// Demo artifact writer for local runs and tests.
// - Emits a fixed, pre-fitted scaler/model pair plus the decision manifest
// - Optionally emits manifest.json with sha256 sums so the directory can be
//   served as a remote artifact base
// - Does not train anything; production artifacts come from the training
//   pipeline's exporter (which can also emit credit_scoring_model.onnx)
//
// Example:
//
//	go run ./cmd/seed -dir=. -threshold=0.5 -checksums
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"

	"github.com/resilientlabs/credit-scoring-api/pkg"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// --------- CLI flags ---------
var (
	dir       = flag.String("dir", ".", "Output directory for the artifacts")
	threshold = flag.Float64("threshold", 0.5, "Decision threshold written to the manifest")
	checksums = flag.Bool("checksums", false, "Also write manifest.json with sha256 sums for remote serving")
)

type scalerArtifact struct {
	FeatureNames []string  `json:"feature_names"`
	Mean         []float64 `json:"mean"`
	Scale        []float64 `json:"scale"`
}

type modelArtifact struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

type modelManifest struct {
	Model         string  `yaml:"model"`
	Version       string  `yaml:"version"`
	Threshold     float64 `yaml:"threshold"`
	PositiveClass int     `yaml:"positive_class"`
	TrainedAt     string  `yaml:"trained_at"`
}

type checksumEntry struct {
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
	Size   int64  `json:"size"`
}

type checksumManifest struct {
	Files []checksumEntry `json:"files"`
}

func main() {
	flag.Parse()

	// logger
	pkg.InitLogger()
	logger := pkg.Logger
	defer logger.Sync()

	if *threshold <= 0 || *threshold >= 1 {
		logger.Fatal("threshold_must_be_between_0_and_1", zap.Float64("threshold", *threshold))
	}
	if err := os.MkdirAll(*dir, 0o755); err != nil {
		logger.Fatal("failed_to_create_output_dir", zap.Error(err))
	}

	// Fixed demo fit for [Amount, TransactionCount, Value]: risk rises with
	// the loan amount and transaction value, falls with account activity.
	scaler := scalerArtifact{
		FeatureNames: []string{"Amount", "TransactionCount", "Value"},
		Mean:         []float64{2500.0, 5.0, 2400.0},
		Scale:        []float64{1200.0, 3.0, 1500.0},
	}
	model := modelArtifact{
		Coefficients: []float64{0.9, -0.4, 0.6},
		Intercept:    -0.35,
	}
	manifest := modelManifest{
		Model:         "credit_scoring",
		Version:       "1",
		Threshold:     *threshold,
		PositiveClass: 1,
		TrainedAt:     "2026-08-01",
	}

	scalerBytes, err := json.MarshalIndent(scaler, "", "  ")
	if err != nil {
		logger.Fatal("failed_to_marshal_scaler", zap.Error(err))
	}
	modelBytes, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		logger.Fatal("failed_to_marshal_model", zap.Error(err))
	}
	manifestBytes, err := yaml.Marshal(manifest)
	if err != nil {
		logger.Fatal("failed_to_marshal_manifest", zap.Error(err))
	}

	files := map[string][]byte{
		"scaler.json":               scalerBytes,
		"credit_scoring_model.json": modelBytes,
		"model_manifest.yaml":       manifestBytes,
	}
	for name, data := range files {
		path := filepath.Join(*dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			logger.Fatal("failed_to_write_artifact", zap.String("file", name), zap.Error(err))
		}
		logger.Info("artifact_written", zap.String("file", path), zap.Int("bytes", len(data)))
	}

	if *checksums {
		sums := checksumManifest{}
		for _, name := range []string{"scaler.json", "credit_scoring_model.json"} {
			data := files[name]
			sum := sha256.Sum256(data)
			sums.Files = append(sums.Files, checksumEntry{
				Path:   name,
				SHA256: hex.EncodeToString(sum[:]),
				Size:   int64(len(data)),
			})
		}
		sumBytes, err := json.MarshalIndent(sums, "", "  ")
		if err != nil {
			logger.Fatal("failed_to_marshal_checksums", zap.Error(err))
		}
		path := filepath.Join(*dir, "manifest.json")
		if err := os.WriteFile(path, sumBytes, 0o644); err != nil {
			logger.Fatal("failed_to_write_checksums", zap.Error(err))
		}
		logger.Info("checksum_manifest_written", zap.String("file", path))
	}

	logger.Info("seeding_completed", zap.String("dir", *dir), zap.Float64("threshold", *threshold))
}
