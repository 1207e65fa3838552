package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce             sync.Once
	apiRequestsTotal         *prometheus.CounterVec
	apiLatencySeconds        *prometheus.HistogramVec
	apiErrorsTotal           *prometheus.CounterVec
	evaluationsTotal         *prometheus.CounterVec
	evaluationFallbacksTotal *prometheus.CounterVec
	evaluationLatencySeconds prometheus.Histogram
	factCheckRequestsTotal   *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arena_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "arena_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arena_errors_total",
			Help: "Total number of error responses returned by API endpoints.",
		}, []string{"method", "route", "status"})

		evaluationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arena_evaluations_total",
			Help: "Total number of argument evaluations by outcome.",
		}, []string{"outcome"})

		evaluationFallbacksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arena_evaluation_fallbacks_total",
			Help: "Total number of placeholder fallbacks by reason.",
		}, []string{"reason"})

		evaluationLatencySeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "arena_evaluation_latency_seconds",
			Help:    "Latency distribution for the argument evaluation pipeline.",
			Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		})

		factCheckRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arena_fact_check_requests_total",
			Help: "Total number of fact-check calls by status.",
		}, []string{"status"})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			evaluationsTotal,
			evaluationFallbacksTotal,
			evaluationLatencySeconds,
			factCheckRequestsTotal,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// Evaluations exposes the counter for argument evaluations.
func Evaluations() *prometheus.CounterVec {
	RegisterMetrics()
	return evaluationsTotal
}

// EvaluationFallbacks exposes the counter for placeholder fallbacks.
func EvaluationFallbacks() *prometheus.CounterVec {
	RegisterMetrics()
	return evaluationFallbacksTotal
}

// EvaluationLatency exposes the histogram for evaluation pipeline latency.
func EvaluationLatency() prometheus.Histogram {
	RegisterMetrics()
	return evaluationLatencySeconds
}

// FactCheckRequests exposes the counter for fact-check calls.
func FactCheckRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return factCheckRequestsTotal
}
