package model

import (
	"sync/atomic"

	"github.com/resilientlabs/credit-scoring-api/pkg"
)

// Artifacts is the immutable loaded pair plus its decision manifest.
// Once published via Store.SetLoaded it is only read.
type Artifacts struct {
	Scaler     FeatureScaler
	Classifier Classifier
	Manifest   Manifest
}

// Store holds the process-wide artifact state. The service starts with an
// empty store when loading fails and reports not-ready until a load
// succeeds; a failed load is terminal until restart.
type Store struct {
	current atomic.Pointer[Artifacts]
}

func NewStore() *Store {
	return &Store{}
}

// SetLoaded publishes a loaded artifact pair.
func (s *Store) SetLoaded(a Artifacts) {
	s.current.Store(&a)
}

// Ready reports whether both artifacts are loaded.
func (s *Store) Ready() bool {
	return s.current.Load() != nil
}

// Artifacts returns the loaded pair, or ErrModelNotLoaded before a
// successful load.
func (s *Store) Artifacts() (*Artifacts, error) {
	a := s.current.Load()
	if a == nil {
		return nil, pkg.ErrModelNotLoaded
	}
	return a, nil
}

// Close releases classifier resources (the ONNX backend holds a session).
func (s *Store) Close() error {
	a := s.current.Load()
	if a == nil || a.Classifier == nil {
		return nil
	}
	return a.Classifier.Close()
}
