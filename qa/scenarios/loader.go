// Package scenarios runs production plan scenarios described in YAML files
// through the full plan manager.
package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/powerplan/core/model"
)

type PlantDef struct {
	Name       string  `yaml:"name"`
	Type       string  `yaml:"type"`
	Efficiency float64 `yaml:"efficiency"`
	PMin       float64 `yaml:"pmin"`
	PMax       float64 `yaml:"pmax"`
}

func (p PlantDef) ToModel() (model.Powerplant, error) {
	t, err := model.ParsePlantType(p.Type)
	if err != nil {
		return model.Powerplant{}, err
	}
	return model.Powerplant{
		Name:       p.Name,
		Type:       t,
		Efficiency: p.Efficiency,
		PMin:       p.PMin,
		PMax:       p.PMax,
	}, nil
}

type FuelsDef struct {
	Gas      float64 `yaml:"gas"`
	Kerosine float64 `yaml:"kerosine"`
	CO2      float64 `yaml:"co2"`
	Wind     float64 `yaml:"wind"`
}

func (f FuelsDef) ToModel() model.Fuels {
	return model.Fuels{Gas: f.Gas, Kerosine: f.Kerosine, CO2: f.CO2, Wind: f.Wind}
}

// Expected is the outcome of a scenario. Plan maps each committed plant to
// its rounded power; it is ignored when Infeasible is set.
type Expected struct {
	Infeasible bool               `yaml:"infeasible"`
	Plan       map[string]float64 `yaml:"plan"`
}

type Scenario struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Strategy    string     `yaml:"strategy,omitempty"`
	Load        float64    `yaml:"load"`
	Fuels       FuelsDef   `yaml:"fuels"`
	Powerplants []PlantDef `yaml:"powerplants"`
	Expected    Expected   `yaml:"expected"`
}

// Request builds the plan request described by the scenario.
func (s Scenario) Request() (model.PlanRequest, error) {
	req := model.PlanRequest{Load: s.Load, Fuels: s.Fuels.ToModel()}
	for i, p := range s.Powerplants {
		mp, err := p.ToModel()
		if err != nil {
			return req, fmt.Errorf("powerplants[%d]: %w", i, err)
		}
		req.Powerplants = append(req.Powerplants, mp)
	}
	return req, nil
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
