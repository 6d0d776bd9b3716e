package dispatch

import (
	"github.com/shopspring/decimal"

	"github.com/kilianp07/powerplan/core/model"
)

// PowerPrecision is the number of decimals reported for each plant.
const PowerPrecision = 1

// RoundPower rounds half to even on the shortest decimal representation of
// p, so 0.25 becomes 0.2 and 0.35 becomes 0.4.
func RoundPower(p float64) float64 {
	return decimal.NewFromFloat(p).RoundBank(PowerPrecision).InexactFloat64()
}

// FormatPlan maps commitments to the reported plan in commitment order.
// Entries are rounded independently, so their sum may differ from the
// unrounded total by up to half a step per entry.
func FormatPlan(commitments []Commitment) model.Plan {
	plan := make(model.Plan, 0, len(commitments))
	for _, c := range commitments {
		plan = append(plan, model.PlanEntry{Name: c.Plant.Name, Power: RoundPower(c.Power)})
	}
	return plan
}
