package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PredictionsTotal counts served predictions by predicted label.
	PredictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "textclassify",
		Name:      "predictions_total",
		Help:      "Total number of predictions served, by predicted label.",
	}, []string{"label"})

	// InferenceDuration observes classifier inference latency.
	InferenceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "textclassify",
		Name:      "inference_duration_seconds",
		Help:      "Classifier inference latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	// CacheHits counts predictions answered from the cache without
	// touching the classifier.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "textclassify",
		Name:      "prediction_cache_hits_total",
		Help:      "Total number of predictions served from the cache.",
	})
)
