package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	plansTotal      *prometheus.CounterVec
	planDuration    *prometheus.HistogramVec
	strategyEvents  *prometheus.CounterVec
	publishFailures prometheus.Counter
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, *prometheus.HistogramVec, *prometheus.CounterVec, prometheus.Counter) {
	plans := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "production_plans_total",
			Help: "Number of production plan requests by strategy and outcome",
		},
		[]string{"strategy", "outcome"},
	)
	dur := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "production_plan_duration_seconds",
			Help:    "Time spent computing a production plan",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"strategy"},
	)
	strat := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_strategy_events_total",
			Help: "Number of LP attempts, LP failures and merit order fallbacks",
		},
		[]string{"action"},
	)
	pub := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "plan_publish_failure_total",
			Help: "Number of production plans that could not be published",
		},
	)
	return plans, dur, strat, pub
}

func init() {
	plansTotal, planDuration, strategyEvents, publishFailures = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers dispatch metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(plansTotal, planDuration, strategyEvents, publishFailures)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	plansTotal, planDuration, strategyEvents, publishFailures = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
