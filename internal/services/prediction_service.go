package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/resilientlabs/credit-scoring-api/internal/observability"
	"github.com/resilientlabs/credit-scoring-api/internal/views"
	"github.com/resilientlabs/credit-scoring-api/pkg"
	"github.com/resilientlabs/credit-scoring-api/pkg/model"
	"go.uber.org/zap"
)

type PredictionService interface {
	Score(ctx context.Context, traceId string, req views.PredictionRequest) (views.PredictionResponse, error)
	ModelLoaded() bool
}

type PredictionServiceImpl struct {
	logger *zap.Logger
	store  *model.Store
}

func NewPredictionService(logger *zap.Logger, store *model.Store) PredictionService {
	return &PredictionServiceImpl{
		logger: logger,
		store:  store,
	}
}

func (s *PredictionServiceImpl) ModelLoaded() bool {
	return s.store.Ready()
}

// Score runs one prediction: assemble the raw vector in the fitted feature
// order, scale it, predict the default probability, apply the decision
// threshold. Same request and artifacts always yield the same response.
func (s *PredictionServiceImpl) Score(ctx context.Context, traceId string, req views.PredictionRequest) (views.PredictionResponse, error) {
	arts, err := s.store.Artifacts()
	if err != nil {
		return views.PredictionResponse{}, pkg.NewAppError(pkg.ErrModelNotReadyCode, "model artifacts not loaded", err)
	}

	// The scaler's fitted column order is authoritative; features it knows
	// but the request does not carry score as zero.
	names := arts.Scaler.FeatureNames()
	raw := make([]float64, len(names))
	for i, name := range names {
		v, ok := req.Feature(name)
		if !ok {
			s.logger.Debug("feature not supplied by request, scoring as zero",
				zap.String(pkg.TraceId, traceId), zap.String("feature", name))
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return views.PredictionResponse{}, pkg.NewAppError(pkg.ErrValidationCode,
				fmt.Sprintf("invalid value for field %s", name), nil)
		}
		raw[i] = v
	}

	start := time.Now()
	scaled, err := arts.Scaler.Transform(raw)
	if err != nil {
		return views.PredictionResponse{}, pkg.NewAppError(pkg.ErrInferenceCode, "inference failed", err)
	}
	probability, err := arts.Classifier.PredictProba(ctx, scaled)
	if err != nil {
		return views.PredictionResponse{}, pkg.NewAppError(pkg.ErrInferenceCode, "inference failed", err)
	}
	observability.InferenceLatency.Observe(time.Since(start).Seconds())

	if math.IsNaN(probability) || math.IsInf(probability, 0) {
		return views.PredictionResponse{}, pkg.NewAppError(pkg.ErrInferenceCode, "inference failed",
			fmt.Errorf("classifier returned non-finite probability %v", probability))
	}
	// Clamp float error outside [0,1].
	if probability < 0 {
		probability = 0
	} else if probability > 1 {
		probability = 1
	}

	prediction := 0
	outcome := pkg.OutcomeNoDefault
	if probability >= arts.Manifest.Threshold {
		prediction = 1
		outcome = pkg.OutcomeDefault
	}
	observability.PredictionsTotal.WithLabelValues(string(outcome)).Inc()

	s.logger.Info("prediction served",
		zap.String(pkg.TraceId, traceId),
		zap.Int("features", len(raw)),
		zap.Int("prediction", prediction),
		zap.Float64("probability", probability),
	)

	return views.PredictionResponse{
		DefaultPrediction:  prediction,
		DefaultProbability: probability,
	}, nil
}
