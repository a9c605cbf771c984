package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultThreshold is the decision cutoff used when no manifest overrides it.
	DefaultThreshold = 0.5
	// DefaultPositiveClass is the probability column of the default class.
	DefaultPositiveClass = 1
)

// Manifest mirrors model_manifest.yaml, the optional sidecar describing how
// the classifier output maps to a decision.
type Manifest struct {
	Model         string  `yaml:"model"`
	Version       string  `yaml:"version"`
	Threshold     float64 `yaml:"threshold"`
	PositiveClass int     `yaml:"positive_class"`
	TrainedAt     string  `yaml:"trained_at"`
}

// DefaultManifest returns the manifest used when no sidecar file exists.
func DefaultManifest() Manifest {
	return Manifest{
		Threshold:     DefaultThreshold,
		PositiveClass: DefaultPositiveClass,
	}
}

// LoadManifest reads model_manifest.yaml. A missing file is not an error;
// defaults apply. A present but unreadable or out-of-range file is.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultManifest(), nil
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("read model manifest: %w", err)
	}

	m := DefaultManifest()
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("decode model manifest %s: %w", path, err)
	}
	if m.Threshold <= 0 || m.Threshold >= 1 {
		return Manifest{}, fmt.Errorf("model manifest %s threshold out of range: %v", path, m.Threshold)
	}
	if m.PositiveClass < 0 {
		return Manifest{}, fmt.Errorf("model manifest %s positive_class negative: %d", path, m.PositiveClass)
	}
	return m, nil
}
