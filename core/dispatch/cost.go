package dispatch

import "github.com/kilianp07/powerplan/core/model"

// PlantScore returns the merit-order metric of a plant: the fuel cost of
// running it at full output. It is only meaningful relative to other plants.
func PlantScore(p model.Powerplant, fuels model.Fuels) (float64, error) {
	fuelUsed := p.PMax / p.Efficiency
	switch p.Type {
	case model.PlantGasFired:
		return fuelUsed * fuels.Gas, nil
	case model.PlantTurbojet:
		return fuelUsed * fuels.Kerosine, nil
	case model.PlantWindTurbine:
		return 0, nil
	default:
		return 0, &UnknownPlantTypeError{Name: p.Name, Type: p.Type}
	}
}

// MarginalCost returns the cost in euro of producing one MWh with the plant.
// When co2Factor is positive the gas-fired emission cost is included.
func MarginalCost(p model.Powerplant, fuels model.Fuels, co2Factor float64) (float64, error) {
	switch p.Type {
	case model.PlantGasFired:
		return fuels.Gas/p.Efficiency + fuels.CO2*co2Factor, nil
	case model.PlantTurbojet:
		return fuels.Kerosine / p.Efficiency, nil
	case model.PlantWindTurbine:
		return 0, nil
	default:
		return 0, &UnknownPlantTypeError{Name: p.Name, Type: p.Type}
	}
}
