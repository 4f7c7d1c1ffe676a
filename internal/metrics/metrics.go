// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the matching and recommendation engine.
// Collectors cover:
// - Scoring throughput, latency, and score distribution
// - Match cache efficiency
// - Batch matching outcomes
// - Recommendation generation per algorithm
// - Event publishing
// - HTTP endpoint latency and throughput
// - Directory client circuit breaker state

var (
	// Scoring Metrics
	ScoringOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conexus_scoring_operations_total",
			Help: "Total number of scoring operations",
		},
		[]string{"status"}, // "success", "failure"
	)

	ScoringDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "conexus_scoring_duration_seconds",
			Help:    "Duration of single candidate-job scoring operations in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	MatchScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "conexus_match_score",
			Help:    "Distribution of overall match scores on the 0-100 scale",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	// Cache Metrics
	CacheOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conexus_cache_operations_total",
			Help: "Total number of match cache operations",
		},
		[]string{"op", "result"}, // op: "get", "set", "invalidate"; result: "hit", "miss", "ok"
	)

	// Batch Matching Metrics
	BatchPairings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conexus_batch_pairings_total",
			Help: "Total number of pairings processed by batch matching",
		},
		[]string{"status"}, // "success", "failure"
	)

	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "conexus_batch_duration_seconds",
			Help:    "Duration of batch matching requests in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	// Recommendation Metrics
	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conexus_recommendations_total",
			Help: "Total number of recommendations produced per strategy",
		},
		[]string{"algorithm"}, // "collaborative", "similarity", "trending", "hybrid"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "conexus_recommendation_duration_seconds",
			Help:    "Duration of recommendation generation in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendationRefreshLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "conexus_recommendation_refresh_last_success_timestamp",
			Help: "Unix timestamp of the last successful strategy model refresh",
		},
	)

	InteractionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conexus_interactions_recorded_total",
			Help: "Total number of user interactions recorded",
		},
		[]string{"type"}, // "view", "click", "apply", "save", "dismiss"
	)

	// Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conexus_events_published_total",
			Help: "Total number of domain events published",
		},
		[]string{"topic", "status"}, // status: "success", "failure"
	)

	// HTTP Endpoint Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conexus_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "conexus_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "conexus_http_active_requests",
			Help: "Current number of in-flight HTTP requests",
		},
	)

	HTTPRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conexus_http_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Directory Client Metrics
	DirectoryRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conexus_directory_requests_total",
			Help: "Total number of requests to the profile directory service",
		},
		[]string{"operation", "status"}, // status: "success", "failure", "not_found"
	)

	DirectoryRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "conexus_directory_request_duration_seconds",
			Help:    "Duration of directory service calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "conexus_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conexus_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breakers",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "conexus_circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures per circuit breaker",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conexus_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "conexus_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "conexus_app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordScoring records a single scoring operation and its outcome.
// The overall score is observed on the 0-100 scale only for successful runs.
func RecordScoring(duration time.Duration, overallScore float64, err error) {
	ScoringDuration.Observe(duration.Seconds())
	if err != nil {
		ScoringOperations.WithLabelValues("failure").Inc()
		return
	}
	ScoringOperations.WithLabelValues("success").Inc()
	MatchScore.Observe(overallScore * 100)
}

// RecordCacheGet records a cache lookup outcome.
func RecordCacheGet(hit bool) {
	if hit {
		CacheOperations.WithLabelValues("get", "hit").Inc()
	} else {
		CacheOperations.WithLabelValues("get", "miss").Inc()
	}
}

// RecordCacheSet records a cache write.
func RecordCacheSet() {
	CacheOperations.WithLabelValues("set", "ok").Inc()
}

// RecordCacheInvalidation records entries removed by an invalidation pass.
func RecordCacheInvalidation(removed int) {
	CacheOperations.WithLabelValues("invalidate", "ok").Add(float64(removed))
}

// RecordBatchOutcome records the per-pairing outcome counts of a batch run.
func RecordBatchOutcome(successful, failed int, duration time.Duration) {
	BatchPairings.WithLabelValues("success").Add(float64(successful))
	BatchPairings.WithLabelValues("failure").Add(float64(failed))
	BatchDuration.Observe(duration.Seconds())
}

// RecordRecommendation records recommendations produced by a strategy run.
func RecordRecommendation(algorithm string, count int, duration time.Duration) {
	Recommendations.WithLabelValues(algorithm).Add(float64(count))
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordInteraction records a tracked user interaction by type.
func RecordInteraction(interactionType string) {
	InteractionsRecorded.WithLabelValues(interactionType).Inc()
}

// RecordEventPublish records an event publish attempt per topic.
func RecordEventPublish(topic string, err error) {
	if err != nil {
		EventsPublished.WithLabelValues(topic, "failure").Inc()
		return
	}
	EventsPublished.WithLabelValues(topic, "success").Inc()
}

// RecordHTTPRequest records an HTTP request metric.
func RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight HTTP requests.
func TrackActiveRequest(inc bool) {
	if inc {
		HTTPActiveRequests.Inc()
	} else {
		HTTPActiveRequests.Dec()
	}
}

// RecordDirectoryRequest records a directory service call and its outcome.
func RecordDirectoryRequest(operation string, duration time.Duration, err error, notFound bool) {
	DirectoryRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	switch {
	case notFound:
		DirectoryRequests.WithLabelValues(operation, "not_found").Inc()
	case err != nil:
		DirectoryRequests.WithLabelValues(operation, "failure").Inc()
	default:
		DirectoryRequests.WithLabelValues(operation, "success").Inc()
	}
}
