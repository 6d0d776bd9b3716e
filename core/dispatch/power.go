package dispatch

import "github.com/kilianp07/powerplan/core/model"

// EffectivePower returns the power a plant of type t can actually deliver for
// the nominal value, after wind derating.
func EffectivePower(power float64, t model.PlantType, fuels model.Fuels) float64 {
	if t == model.PlantWindTurbine {
		return power * (fuels.Wind / 100)
	}
	return power
}

// effectiveRange derates both bounds of a plant.
func effectiveRange(p model.Powerplant, fuels model.Fuels) (pmin, pmax float64) {
	return EffectivePower(p.PMin, p.Type, fuels), EffectivePower(p.PMax, p.Type, fuels)
}
