package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the pricing recommend HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_recommend_latency_seconds",
		Help:    "Latency of the price recommendation handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of price recommendations served
	RecommendRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pricing_recommend_requests_total",
		Help: "Total number of price recommendation requests",
	})

	// Total number of model fit runs, by outcome
	FitRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_fit_runs_total",
		Help: "Total number of model fit runs by outcome",
	}, []string{"outcome"})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		FitRunsTotal,
	)
}
