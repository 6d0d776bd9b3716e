package metrics

import (
	"time"

	"github.com/kilianp07/powerplan/core/model"
)

// PlanRecord summarises one production plan request.
type PlanRecord struct {
	PlanID   string
	Strategy string
	Load     float64
	Feasible bool
	Error    string
	Entries  model.Plan
	// CO2Tons is the estimated emission of the plan per hour of operation.
	CO2Tons  float64
	Duration time.Duration
	Time     time.Time
}

// MetricsSink records production plans for observability purposes.
type MetricsSink interface {
	RecordPlan(rec PlanRecord) error
}

// StrategyFallback describes a switch from the LP dispatcher to the merit
// order one.
type StrategyFallback struct {
	PlanID string
	Reason string
	Time   time.Time
}

// StrategyFallbackRecorder is implemented by sinks able to record fallbacks.
type StrategyFallbackRecorder interface {
	RecordStrategyFallback(ev StrategyFallback) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordPlan(PlanRecord) error                   { return nil }
func (NopSink) RecordStrategyFallback(StrategyFallback) error { return nil }

// Emissions returns the CO2 tons emitted per hour by the gas-fired plants of
// the plan, using factor tons per MWh.
func Emissions(entries model.Plan, plants []model.Powerplant, factor float64) float64 {
	types := make(map[string]model.PlantType, len(plants))
	for _, p := range plants {
		types[p.Name] = p.Type
	}
	var tons float64
	for _, e := range entries {
		if types[e.Name] == model.PlantGasFired {
			tons += e.Power * factor
		}
	}
	return tons
}
