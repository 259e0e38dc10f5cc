package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by route and status",
}, []string{"route", "status"})

var httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "http_request_duration_seconds",
	Help:    "Request latency by route.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30},
}, []string{"route"})

var answerCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "answer_cache_lookups_total",
	Help: "Answer cache lookups labelled hit or miss.",
}, []string{"result"})

var completionCalls = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "completion_calls_total",
	Help: "Completion API calls labelled by outcome.",
}, []string{"outcome"})

var captionFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "caption_failures_total",
	Help: "Page images whose captioning request failed.",
})

var ingestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "ingest_duration_seconds",
	Help:    "Total time spent ingesting an uploaded document.",
	Buckets: []float64{.5, 1, 2, 5, 10, 30, 60, 120},
})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30},
}, []string{"service"})

// ObserveRequest records one completed HTTP request.
func ObserveRequest(route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(route, statusLabel(status)).Inc()
	httpRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// CacheHit records an answer cache hit.
func CacheHit() { answerCacheLookups.WithLabelValues("hit").Inc() }

// CacheMiss records an answer cache miss.
func CacheMiss() { answerCacheLookups.WithLabelValues("miss").Inc() }

// CompletionCall records a completion API call outcome ("ok" or "error").
func CompletionCall(outcome string) { completionCalls.WithLabelValues(outcome).Inc() }

// CaptionFailure records a single failed caption request.
func CaptionFailure() { captionFailures.Inc() }

// ObserveIngest records the duration of a full ingestion pipeline run.
func ObserveIngest(elapsed time.Duration) { ingestDuration.Observe(elapsed.Seconds()) }

// ObserveDependency records the latency of one external call.
func ObserveDependency(service string, elapsed time.Duration) {
	dependencyLatency.WithLabelValues(service).Observe(elapsed.Seconds())
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
