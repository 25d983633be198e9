package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Knowledge-base search and chat model metrics.
var (
	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "shopkb",
			Name:      "search_duration_seconds",
			Help:      "Knowledge-base search duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	SearchResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shopkb",
			Name:      "search_results_total",
			Help:      "Total search results returned, by source",
		},
		[]string{"source"}, // "products" / "drawings" / "contributions"
	)

	ChatRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shopkb",
			Name:      "chat_requests_total",
			Help:      "Total chat model requests",
		},
		[]string{"provider", "status"},
	)

	ChatRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shopkb",
			Name:      "chat_request_duration_seconds",
			Help:      "Chat model request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"provider"},
	)
)

var knowledgeMetricsRegistered bool

// RegisterKnowledgeMetrics registers search and chat metrics. Must be
// called once from main.
func RegisterKnowledgeMetrics() {
	if knowledgeMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResultsTotal)
	prometheus.MustRegister(ChatRequestsTotal)
	prometheus.MustRegister(ChatRequestDuration)
	knowledgeMetricsRegistered = true
}

// ObserveSearch records one completed knowledge-base search.
func ObserveSearch(elapsed time.Duration, products, drawings, contributions int) {
	SearchDuration.Observe(elapsed.Seconds())
	SearchResultsTotal.WithLabelValues("products").Add(float64(products))
	SearchResultsTotal.WithLabelValues("drawings").Add(float64(drawings))
	SearchResultsTotal.WithLabelValues("contributions").Add(float64(contributions))
}
