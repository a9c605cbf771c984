package model

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// LoadOptions locates the artifact pair. ModelFile's extension selects the
// classifier backend: .json loads the native logistic regression, .onnx
// loads an ONNX Runtime session.
type LoadOptions struct {
	Dir          string
	ModelFile    string
	ScalerFile   string
	ManifestFile string

	// Remote fetch for missing files; disabled when BaseURL is empty.
	BaseURL      string
	FetchTimeout time.Duration

	// Optional onnxruntime shared library override.
	OnnxLibraryPath string
}

// Bootstrap fetches missing artifacts when a remote is configured, loads
// the pair with its manifest, and publishes them to the store. On error the
// store stays empty and the caller keeps serving in the not-ready state.
func Bootstrap(ctx context.Context, logger *zap.Logger, store *Store, opts LoadOptions) error {
	if opts.BaseURL != "" {
		fetcher := NewFetcher(logger, opts.BaseURL, opts.FetchTimeout)
		if err := fetcher.Ensure(ctx, opts.Dir, opts.ScalerFile, opts.ModelFile); err != nil {
			return fmt.Errorf("fetch artifacts: %w", err)
		}
	}

	scaler, err := LoadScaler(filepath.Join(opts.Dir, opts.ScalerFile))
	if err != nil {
		return err
	}

	manifest, err := LoadManifest(filepath.Join(opts.Dir, opts.ManifestFile))
	if err != nil {
		return err
	}

	clf, err := loadClassifier(
		filepath.Join(opts.Dir, opts.ModelFile),
		len(scaler.FeatureNames()),
		manifest.PositiveClass,
		opts.OnnxLibraryPath,
	)
	if err != nil {
		return err
	}

	store.SetLoaded(Artifacts{Scaler: scaler, Classifier: clf, Manifest: manifest})
	logger.Info("model artifacts loaded",
		zap.String("model", opts.ModelFile),
		zap.String("scaler", opts.ScalerFile),
		zap.Strings("features", scaler.FeatureNames()),
		zap.Float64("threshold", manifest.Threshold),
	)
	return nil
}

func loadClassifier(path string, nFeatures, positiveIndex int, libPath string) (Classifier, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".onnx":
		return LoadONNXModel(path, nFeatures, positiveIndex, libPath)
	case ".json":
		lm, err := LoadLogisticModel(path)
		if err != nil {
			return nil, err
		}
		if lm.NumFeatures() != nFeatures {
			return nil, fmt.Errorf("model fitted with %d features but scaler has %d", lm.NumFeatures(), nFeatures)
		}
		return lm, nil
	default:
		return nil, fmt.Errorf("unsupported model artifact format %q", filepath.Ext(path))
	}
}
