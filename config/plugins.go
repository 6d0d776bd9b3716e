package config

import (
	"github.com/kilianp07/powerplan/core/dispatch"
	"github.com/kilianp07/powerplan/core/factory"
)

// ComponentsConfig lists the pluggable components of the planner. Each
// component is defined solely by its type and an arbitrary configuration map.
type ComponentsConfig struct {
	Dispatcher factory.ModuleConfig   `json:"dispatcher"`
	Publishers []factory.ModuleConfig `json:"publishers"`
}

// SetDefaults selects the merit order dispatcher and, when the dispatcher has
// no configuration of its own, reuses the dispatch section.
func (c *ComponentsConfig) SetDefaults(d dispatch.Config) {
	if c.Dispatcher.Type == "" {
		c.Dispatcher.Type = "merit"
	}
	if len(c.Dispatcher.Conf) == 0 {
		c.Dispatcher.Conf = map[string]any{
			"tolerance":       d.Tolerance,
			"co2_aware":       d.CO2Aware,
			"emission_factor": d.EmissionFactor,
		}
	}
}
