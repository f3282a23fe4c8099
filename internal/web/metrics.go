package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fair_eva_web_evaluations_total",
		Help: "Evaluations handled, by outcome (ok, load_error, no_data).",
	}, []string{"outcome"})

	evaluationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fair_eva_web_evaluation_duration_seconds",
		Help:    "Time spent obtaining one evaluation document.",
		Buckets: prometheus.DefBuckets,
	})
)
