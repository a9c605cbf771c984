package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "credit_scoring",
			Name:      "predictions_total",
			Help:      "Scoring requests by predicted outcome",
		},
		[]string{"outcome"},
	)

	InferenceLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "credit_scoring",
			Name:      "inference_duration_seconds",
			Help:      "Scale-and-predict latency per request",
			Buckets:   prometheus.DefBuckets,
		},
	)

	ModelLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "credit_scoring",
			Name:      "model_loaded",
			Help:      "1 when the model and scaler artifacts are loaded",
		},
	)
)
