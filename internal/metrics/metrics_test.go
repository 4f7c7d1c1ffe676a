// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// getCounterValue extracts the value from a Prometheus counter
func getCounterValue(counter prometheus.Counter) float64 {
	var m io_prometheus_client.Metric
	if err := counter.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

// getGaugeValue extracts the value from a Prometheus gauge
func getGaugeValue(gauge prometheus.Gauge) float64 {
	var m io_prometheus_client.Metric
	if err := gauge.Write(&m); err != nil {
		return 0
	}
	return m.GetGauge().GetValue()
}

func TestRecordScoring(t *testing.T) {
	t.Run("records success with score", func(t *testing.T) {
		before := getCounterValue(ScoringOperations.WithLabelValues("success"))

		RecordScoring(2*time.Millisecond, 0.76, nil)

		after := getCounterValue(ScoringOperations.WithLabelValues("success"))
		if after != before+1 {
			t.Errorf("success counter = %v, want %v", after, before+1)
		}
	})

	t.Run("records failure without score observation", func(t *testing.T) {
		before := getCounterValue(ScoringOperations.WithLabelValues("failure"))

		RecordScoring(time.Millisecond, 0, errors.New("nil profile"))

		after := getCounterValue(ScoringOperations.WithLabelValues("failure"))
		if after != before+1 {
			t.Errorf("failure counter = %v, want %v", after, before+1)
		}
	})
}

func TestRecordCacheOperations(t *testing.T) {
	t.Run("hit", func(t *testing.T) {
		before := getCounterValue(CacheOperations.WithLabelValues("get", "hit"))
		RecordCacheGet(true)
		after := getCounterValue(CacheOperations.WithLabelValues("get", "hit"))
		if after != before+1 {
			t.Errorf("hit counter = %v, want %v", after, before+1)
		}
	})

	t.Run("miss", func(t *testing.T) {
		before := getCounterValue(CacheOperations.WithLabelValues("get", "miss"))
		RecordCacheGet(false)
		after := getCounterValue(CacheOperations.WithLabelValues("get", "miss"))
		if after != before+1 {
			t.Errorf("miss counter = %v, want %v", after, before+1)
		}
	})

	t.Run("set and invalidate", func(t *testing.T) {
		RecordCacheSet()

		before := getCounterValue(CacheOperations.WithLabelValues("invalidate", "ok"))
		RecordCacheInvalidation(3)
		after := getCounterValue(CacheOperations.WithLabelValues("invalidate", "ok"))
		if after != before+3 {
			t.Errorf("invalidate counter = %v, want %v", after, before+3)
		}
	})
}

func TestRecordBatchOutcome(t *testing.T) {
	successBefore := getCounterValue(BatchPairings.WithLabelValues("success"))
	failureBefore := getCounterValue(BatchPairings.WithLabelValues("failure"))

	RecordBatchOutcome(8, 2, 150*time.Millisecond)

	if got := getCounterValue(BatchPairings.WithLabelValues("success")); got != successBefore+8 {
		t.Errorf("success pairings = %v, want %v", got, successBefore+8)
	}
	if got := getCounterValue(BatchPairings.WithLabelValues("failure")); got != failureBefore+2 {
		t.Errorf("failure pairings = %v, want %v", got, failureBefore+2)
	}
}

func TestRecordRecommendation(t *testing.T) {
	algorithms := []string{"collaborative", "similarity", "trending", "hybrid"}

	for _, algorithm := range algorithms {
		t.Run(algorithm, func(t *testing.T) {
			before := getCounterValue(Recommendations.WithLabelValues(algorithm))

			RecordRecommendation(algorithm, 5, 20*time.Millisecond)

			after := getCounterValue(Recommendations.WithLabelValues(algorithm))
			if after != before+5 {
				t.Errorf("recommendations counter = %v, want %v", after, before+5)
			}
		})
	}
}

func TestRecordInteraction(t *testing.T) {
	types := []string{"view", "click", "apply", "save", "dismiss"}

	for _, interactionType := range types {
		t.Run(interactionType, func(t *testing.T) {
			RecordInteraction(interactionType)
		})
	}
}

func TestRecordEventPublish(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		before := getCounterValue(EventsPublished.WithLabelValues("match.created", "success"))
		RecordEventPublish("match.created", nil)
		after := getCounterValue(EventsPublished.WithLabelValues("match.created", "success"))
		if after != before+1 {
			t.Errorf("publish success counter = %v, want %v", after, before+1)
		}
	})

	t.Run("failure", func(t *testing.T) {
		before := getCounterValue(EventsPublished.WithLabelValues("match.created", "failure"))
		RecordEventPublish("match.created", errors.New("broker unavailable"))
		after := getCounterValue(EventsPublished.WithLabelValues("match.created", "failure"))
		if after != before+1 {
			t.Errorf("publish failure counter = %v, want %v", after, before+1)
		}
	})
}

func TestRecordHTTPRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
		duration   time.Duration
	}{
		{
			name:       "successful score request",
			method:     "POST",
			endpoint:   "/api/v1/matches/score",
			statusCode: "200",
			duration:   25 * time.Millisecond,
		},
		{
			name:       "candidate listing",
			method:     "GET",
			endpoint:   "/api/v1/jobs/{jobID}/candidates",
			statusCode: "200",
			duration:   120 * time.Millisecond,
		},
		{
			name:       "validation failure",
			method:     "POST",
			endpoint:   "/api/v1/matches/batch",
			statusCode: "400",
			duration:   2 * time.Millisecond,
		},
		{
			name:       "match not found",
			method:     "GET",
			endpoint:   "/api/v1/matches/{matchID}",
			statusCode: "404",
			duration:   4 * time.Millisecond,
		},
		{
			name:       "rate limited",
			method:     "GET",
			endpoint:   "/api/v1/recommendations/{userID}",
			statusCode: "429",
			duration:   time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordHTTPRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)
		})
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := getGaugeValue(HTTPActiveRequests)

	TrackActiveRequest(true)
	if got := getGaugeValue(HTTPActiveRequests); got != before+1 {
		t.Errorf("active requests after inc = %v, want %v", got, before+1)
	}

	TrackActiveRequest(false)
	if got := getGaugeValue(HTTPActiveRequests); got != before {
		t.Errorf("active requests after dec = %v, want %v", got, before)
	}
}

func TestRecordDirectoryRequest(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		before := getCounterValue(DirectoryRequests.WithLabelValues("get_candidate", "success"))
		RecordDirectoryRequest("get_candidate", 10*time.Millisecond, nil, false)
		after := getCounterValue(DirectoryRequests.WithLabelValues("get_candidate", "success"))
		if after != before+1 {
			t.Errorf("success counter = %v, want %v", after, before+1)
		}
	})

	t.Run("not found", func(t *testing.T) {
		before := getCounterValue(DirectoryRequests.WithLabelValues("get_job", "not_found"))
		RecordDirectoryRequest("get_job", 5*time.Millisecond, errors.New("job not found"), true)
		after := getCounterValue(DirectoryRequests.WithLabelValues("get_job", "not_found"))
		if after != before+1 {
			t.Errorf("not_found counter = %v, want %v", after, before+1)
		}
	})

	t.Run("failure", func(t *testing.T) {
		before := getCounterValue(DirectoryRequests.WithLabelValues("search_candidates", "failure"))
		RecordDirectoryRequest("search_candidates", time.Second, errors.New("timeout"), false)
		after := getCounterValue(DirectoryRequests.WithLabelValues("search_candidates", "failure"))
		if after != before+1 {
			t.Errorf("failure counter = %v, want %v", after, before+1)
		}
	})
}

// TestMetricGathering verifies all registered collectors can be gathered and linted
func TestMetricGathering(t *testing.T) {
	RecordScoring(time.Millisecond, 0.5, nil)
	RecordHTTPRequest("GET", "/test", "200", time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}

func BenchmarkRecordScoring(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordScoring(time.Millisecond, 0.75, nil)
	}
}

func BenchmarkTrackActiveRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		TrackActiveRequest(true)
		TrackActiveRequest(false)
	}
}
