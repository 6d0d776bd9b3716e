package model

import (
	"fmt"
	"strings"
)

// PlantType identifies the generation technology of a powerplant.
type PlantType int

const (
	PlantGasFired PlantType = iota + 1
	PlantTurbojet
	PlantWindTurbine
)

// String returns the wire name of the plant type.
func (t PlantType) String() string {
	switch t {
	case PlantGasFired:
		return "gasfired"
	case PlantTurbojet:
		return "turbojet"
	case PlantWindTurbine:
		return "windturbine"
	default:
		return "unknown"
	}
}

// Known reports whether t is one of the supported technologies.
func (t PlantType) Known() bool {
	switch t {
	case PlantGasFired, PlantTurbojet, PlantWindTurbine:
		return true
	default:
		return false
	}
}

// ParsePlantType converts a wire name into a PlantType.
func ParsePlantType(s string) (PlantType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gasfired":
		return PlantGasFired, nil
	case "turbojet":
		return PlantTurbojet, nil
	case "windturbine":
		return PlantWindTurbine, nil
	default:
		return 0, fmt.Errorf("unknown powerplant type %q", s)
	}
}

func (t PlantType) MarshalText() ([]byte, error) {
	if !t.Known() {
		return nil, fmt.Errorf("unknown powerplant type %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *PlantType) UnmarshalText(b []byte) error {
	v, err := ParsePlantType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Powerplant describes a generation unit and its operating range in MW.
type Powerplant struct {
	Name       string    `json:"name"`
	Type       PlantType `json:"type"`
	Efficiency float64   `json:"efficiency"` // ratio in (0,1], required even for wind
	PMin       float64   `json:"pmin"`
	PMax       float64   `json:"pmax"`
}

// Validate checks the plant on its own. Errors are keyed relative to the
// plant, e.g. "pmax".
func (p Powerplant) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(p.Name) == "" {
		errs.Add("name", "This field may not be blank.")
	}
	if !p.Type.Known() {
		errs.Add("type", fmt.Sprintf("%q is not a valid choice.", p.Type.String()))
	}
	if p.Efficiency <= 0 || p.Efficiency > 1 {
		errs.Add("efficiency", "Ensure this value is greater than 0 and less than or equal to 1.")
	}
	if p.PMin < 0 {
		errs.Add("pmin", "Ensure this value is greater than or equal to 0.")
	}
	if p.PMax < 0 {
		errs.Add("pmax", "Ensure this value is greater than or equal to 0.")
	}
	if _, ok := errs["pmax"]; !ok && p.PMax < p.PMin {
		errs.Add("pmax", "The value of pmax should be greater or equal to pmin.")
	}
	return errs
}
