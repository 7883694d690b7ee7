package pricing

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PricingDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_decisions_total",
			Help: "Count of pricing decisions by weekday, guardrail outcome, and model kind.",
		},
		[]string{"weekday", "guardrail", "model"},
	)
)

func init() {
	prometheus.MustRegister(PricingDecisionsTotal)
}
