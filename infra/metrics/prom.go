package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/powerplan/core/metrics"
)

// PromSink records production plans in Prometheus metrics.
type PromSink struct {
	plans     *prometheus.CounterVec
	setpoints *prometheus.GaugeVec
	load      prometheus.Gauge
	co2       prometheus.Gauge
	fallbacks prometheus.Counter
}

// NewPromSink registers plan metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	plans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plan_results_total",
		Help: "Total number of production plans by strategy and feasibility",
	}, []string{"strategy", "feasible"})
	setpoints := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "plan_setpoint_mw",
		Help: "Power assigned to each plant by the last feasible plan",
	}, []string{"plant"})
	load := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "plan_requested_load_mw",
		Help: "Load requested by the last production plan",
	})
	co2 := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "plan_co2_tons_per_hour",
		Help: "Estimated CO2 emission of the last feasible plan",
	})
	fallbacks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "plan_strategy_fallback_total",
		Help: "Number of plans computed by the merit order after an LP failure",
	})

	var err error
	if plans, err = register(reg, plans); err != nil {
		return nil, err
	}
	if setpoints, err = register(reg, setpoints); err != nil {
		return nil, err
	}
	if load, err = register(reg, load); err != nil {
		return nil, err
	}
	if co2, err = register(reg, co2); err != nil {
		return nil, err
	}
	if fallbacks, err = register(reg, fallbacks); err != nil {
		return nil, err
	}
	return &PromSink{plans: plans, setpoints: setpoints, load: load, co2: co2, fallbacks: fallbacks}, nil
}

// register adds c to reg, reusing the collector already registered under the
// same descriptor.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordPlan updates the counters and, for feasible plans, the setpoints.
func (s *PromSink) RecordPlan(rec coremetrics.PlanRecord) error {
	s.plans.WithLabelValues(rec.Strategy, strconv.FormatBool(rec.Feasible)).Inc()
	s.load.Set(rec.Load)
	if !rec.Feasible {
		return nil
	}
	s.setpoints.Reset()
	for _, e := range rec.Entries {
		s.setpoints.WithLabelValues(e.Name).Set(e.Power)
	}
	s.co2.Set(rec.CO2Tons)
	return nil
}

// RecordStrategyFallback counts LP failures.
func (s *PromSink) RecordStrategyFallback(coremetrics.StrategyFallback) error {
	s.fallbacks.Inc()
	return nil
}
