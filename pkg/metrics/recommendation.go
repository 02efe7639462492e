package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendation HTTP handlers by route
	RecommendLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "anime_recommend_latency_seconds",
		Help:    "Latency of recommendation handlers",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// Total number of recommendation requests by route and status code
	RecommendRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "anime_recommend_requests_total",
		Help: "Total number of recommendation requests",
	}, []string{"route", "status"})

	// Hybrid pipelines that degraded to an empty list, by failing stage
	HybridFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "anime_hybrid_failures_total",
		Help: "Hybrid recommendation requests that returned no results because a stage failed",
	}, []string{"stage"})

	// Content-stage titles skipped because they could not be resolved
	ContentSkips = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "anime_content_candidates_skipped_total",
		Help: "Content based lookups skipped during hybrid recommendation",
	})

	CacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "anime_recommend_cache_lookups_total",
		Help: "Recommendation cache lookups by kind and result",
	}, []string{"kind", "result"})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		HybridFailures,
		ContentSkips,
		CacheLookups,
	)
}
