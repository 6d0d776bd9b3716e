package dispatch

import "fmt"

// DefaultTolerance is the absolute tolerance in MW used when comparing the
// committed power against the requested load.
const DefaultTolerance = 1e-6

// DefaultEmissionFactor is the CO2 emitted per MWh generated by a gas-fired
// plant, in tons.
const DefaultEmissionFactor = 0.3

// Config defines dispatch-related settings.
type Config struct {
	Tolerance      float64 `json:"tolerance"`
	LPFirst        bool    `json:"lp_first"`
	CO2Aware       bool    `json:"co2_aware"`
	EmissionFactor float64 `json:"emission_factor"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Tolerance == 0 {
		c.Tolerance = DefaultTolerance
	}
	if c.EmissionFactor == 0 {
		c.EmissionFactor = DefaultEmissionFactor
	}
}

// Validate checks the configured values.
func (c Config) Validate() error {
	if c.Tolerance < 0 || c.Tolerance >= 0.05 {
		return fmt.Errorf("dispatch tolerance must be in [0, 0.05), got %v", c.Tolerance)
	}
	if c.EmissionFactor < 0 {
		return fmt.Errorf("emission factor must be positive")
	}
	return nil
}
