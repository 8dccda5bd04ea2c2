package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// SimilarityChecksTotal counts similarity reports by methodology.
	SimilarityChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "simcheck",
			Name:      "similarity_checks_total",
			Help:      "Total number of similarity checks by methodology",
		},
		[]string{"methodology"},
	)

	// CandidatesTotal counts scored candidates by comparison method.
	CandidatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "simcheck",
			Name:      "candidates_total",
			Help:      "Total number of scored candidates by comparison method",
		},
		[]string{"method"},
	)

	// ExtractionTotal counts content extraction attempts by outcome.
	ExtractionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "simcheck",
			Name:      "extraction_total",
			Help:      "Total number of content extraction attempts by outcome",
		},
		[]string{"outcome"},
	)

	// EmbeddingRequestsTotal counts embedding provider calls by status.
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "simcheck",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding API requests",
		},
		[]string{"provider", "model", "status"},
	)

	// EmbeddingRequestDuration observes embedding provider latency.
	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "simcheck",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding API request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	// EmbeddingCacheTotal counts embedding cache lookups ("hit"/"miss").
	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "simcheck",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache lookups by result",
		},
		[]string{"result"},
	)
)

// RegisterScoringMetrics registers the scoring and embedding collectors
// explicitly (no init()).
func RegisterScoringMetrics() {
	prometheus.MustRegister(
		SimilarityChecksTotal,
		CandidatesTotal,
		ExtractionTotal,
		EmbeddingRequestsTotal,
		EmbeddingRequestDuration,
		EmbeddingCacheTotal,
	)
}
