// Package metrics holds the Prometheus collectors shared by the API server
// and its pipeline components.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "jobhunt"

// Degradation kinds.
const (
	DegradationExtraction = "extraction_degraded"
	DegradationScrape     = "scrape_failed"
	DegradationScoring    = "scoring_unavailable"
)

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// DegradationsTotal counts pipeline steps that fell back to placeholder output.
	DegradationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degradations_total",
			Help:      "Pipeline steps that produced fallback output",
		},
		[]string{"kind"},
	)

	ScoringRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scoring_requests_total",
			Help:      "Scoring requests by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	ScoringRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scoring_request_duration_seconds",
			Help:      "Scoring request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider"},
	)

	ScrapeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scrape_requests_total",
			Help:      "Job page scrapes by engine and outcome",
		},
		[]string{"engine", "outcome"},
	)

	ScrapeCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scrape_cache_total",
			Help:      "Scrape cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	SessionRecords = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "session_records",
			Help:      "Records held in the in-memory session store",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestDuration,
		httpRequestsTotal,
		DegradationsTotal,
		ScoringRequestsTotal,
		ScoringRequestDuration,
		ScrapeRequestsTotal,
		ScrapeCacheTotal,
		SessionRecords,
	)
}

// RecordDegradation increments the degradation counter for kind.
func RecordDegradation(kind string) {
	DegradationsTotal.WithLabelValues(kind).Inc()
}
