package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	scaleops = "scaleops"

	// Pipeline metrics
	pipelineCallsTotal = "pipeline_calls_total"

	// Event metrics
	eventsEmittedTotal = "events_emitted_total"

	// Progress metrics
	progressEvaluationsTotal = "progress_evaluations_total"

	// Labels
	pipelineEndpointLabel = "endpoint"
	pipelineStatusLabel   = "status"
	eventKindLabel        = "kind"
	progressOutcomeLabel  = "outcome"
)

var pipelineCallsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: scaleops,
		Name:      pipelineCallsTotal,
		Help:      "number of generation pipeline webhook calls",
	},
	[]string{pipelineEndpointLabel, pipelineStatusLabel},
)

var eventsEmittedTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: scaleops,
		Name:      eventsEmittedTotal,
		Help:      "number of lifecycle events handed to the event writer",
	},
	[]string{eventKindLabel},
)

var progressEvaluationsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: scaleops,
		Name:      progressEvaluationsTotal,
		Help:      "number of progress poll evaluations",
	},
	[]string{progressOutcomeLabel},
)

func IncreasePipelineCallsMetric(endpoint, status string) {
	pipelineCallsTotalMetric.With(prometheus.Labels{
		pipelineEndpointLabel: endpoint,
		pipelineStatusLabel:   status,
	}).Inc()
}

func IncreaseEventsEmittedMetric(kind string) {
	eventsEmittedTotalMetric.With(prometheus.Labels{eventKindLabel: kind}).Inc()
}

func IncreaseProgressEvaluationsMetric(outcome string) {
	progressEvaluationsTotalMetric.With(prometheus.Labels{progressOutcomeLabel: outcome}).Inc()
}

func init() {
	prometheus.MustRegister(pipelineCallsTotalMetric)
	prometheus.MustRegister(eventsEmittedTotalMetric)
	prometheus.MustRegister(progressEvaluationsTotalMetric)
}

// NewPrometheusMetricsHandler exposes the default registry.
func NewPrometheusMetricsHandler() http.Handler {
	return promhttp.Handler()
}
