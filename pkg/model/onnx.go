package model

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ONNXModel is the ONNX Runtime classifier backend. Exported sklearn
// pipelines follow the skl2onnx conventions: input tensor "float_input"
// of shape (1, n_features), output tensor "probabilities" of shape
// (1, n_classes) with the default class in the positive column.
type ONNXModel struct {
	session       *ort.AdvancedSession
	nFeatures     int
	positiveIndex int

	input  *ort.Tensor[float32]
	output *ort.Tensor[float32]

	mu sync.Mutex
}

// LoadONNXModel initializes the runtime and builds a session with
// pre-allocated tensors. libPath overrides the shared library lookup;
// when empty, ONNXRUNTIME_SHARED_LIBRARY_PATH and common install
// locations are probed.
func LoadONNXModel(path string, nFeatures, positiveIndex int, libPath string) (*ONNXModel, error) {
	if nFeatures <= 0 {
		return nil, errors.New("onnx model needs a positive feature count")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("model file missing at %s: %w", path, err)
	}

	if libPath == "" {
		libPath = resolveSharedLibraryPath(filepath.Dir(path))
	}
	if libPath == "" {
		return nil, errors.New("onnxruntime shared library not found; set ONNXRUNTIME_SHARED_LIBRARY_PATH or install the runtime")
	}
	ort.SetSharedLibraryPath(libPath)
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("initialize onnxruntime: %w", err)
		}
	}

	input, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(nFeatures)))
	if err != nil {
		return nil, fmt.Errorf("allocate input tensor: %w", err)
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 2))
	if err != nil {
		input.Destroy()
		return nil, fmt.Errorf("allocate output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(
		path,
		[]string{"float_input"},
		[]string{"probabilities"},
		[]ort.Value{input},
		[]ort.Value{output},
		nil,
	)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, fmt.Errorf("create onnx session: %w", err)
	}

	return &ONNXModel{
		session:       session,
		nFeatures:     nFeatures,
		positiveIndex: positiveIndex,
		input:         input,
		output:        output,
	}, nil
}

// NumFeatures returns the input width the session was built for.
func (m *ONNXModel) NumFeatures() int {
	return m.nFeatures
}

// PredictProba runs one inference. The session tensors are reused, so
// runs are serialized with a mutex.
func (m *ONNXModel) PredictProba(ctx context.Context, features []float64) (float64, error) {
	if m == nil || m.session == nil {
		return 0, errors.New("onnx model not initialized")
	}
	if len(features) != m.nFeatures {
		return 0, fmt.Errorf("model expects %d features, got %d", m.nFeatures, len(features))
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	in := m.input.GetData()
	for i, v := range features {
		in[i] = float32(v)
	}

	if err := m.session.Run(); err != nil {
		return 0, fmt.Errorf("onnx run: %w", err)
	}

	return positiveProbability(m.output.GetData(), m.positiveIndex)
}

// Close releases the session and its tensors.
func (m *ONNXModel) Close() error {
	if m == nil || m.session == nil {
		return nil
	}
	err := m.session.Destroy()
	m.input.Destroy()
	m.output.Destroy()
	m.session = nil
	return err
}

// positiveProbability interprets the raw output row. A probability row
// yields the positive column directly; a single raw score is squashed
// through the sigmoid, matching classifiers exported without predict_proba.
func positiveProbability(raw []float32, positiveIndex int) (float64, error) {
	switch {
	case len(raw) == 0:
		return 0, errors.New("onnx output is empty")
	case len(raw) == 1:
		return sigmoid(float64(raw[0])), nil
	case positiveIndex < len(raw):
		return float64(raw[positiveIndex]), nil
	default:
		return 0, fmt.Errorf("positive class %d out of range for %d output columns", positiveIndex, len(raw))
	}
}

// resolveSharedLibraryPath attempts to locate a platform-specific onnxruntime shared library.
// If ONNXRUNTIME_SHARED_LIBRARY_PATH is set, it wins; otherwise we probe common names/locations.
func resolveSharedLibraryPath(artifactDir string) string {
	if env := strings.TrimSpace(os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH")); env != "" {
		return env
	}

	names := []string{
		"libonnxruntime.dylib",
		"onnxruntime.dylib",
		"libonnxruntime.so",
		"onnxruntime.so",
		"onnxruntime.dll",
	}
	dirs := []string{
		artifactDir,
		filepath.Join(artifactDir, "lib"),
		".",
		"/opt/homebrew/lib",
		"/usr/local/lib",
		"/usr/lib",
	}

	for _, dir := range dirs {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}
