package dispatch

import (
	"errors"
	"fmt"

	"github.com/kilianp07/powerplan/core/model"
)

var (
	// ErrInfeasible indicates no combination of commitments matches the load.
	ErrInfeasible = errors.New("load could not be matched")
	// ErrUnknownPlantType indicates a plant type slipped past validation.
	ErrUnknownPlantType = errors.New("unknown powerplant type")
)

// InfeasibleLoadError carries the inputs of a dispatch that could not match
// the requested load.
type InfeasibleLoadError struct {
	Load        float64
	Committed   float64
	Fuels       model.Fuels
	Powerplants []model.Powerplant
}

func (e *InfeasibleLoadError) Error() string {
	return fmt.Sprintf("%v: load=%.3f committed=%.3f plants=%d", ErrInfeasible, e.Load, e.Committed, len(e.Powerplants))
}

func (e *InfeasibleLoadError) Unwrap() error { return ErrInfeasible }

func newInfeasibleLoadError(load, committed float64, fuels model.Fuels, plants []model.Powerplant) *InfeasibleLoadError {
	snapshot := make([]model.Powerplant, len(plants))
	copy(snapshot, plants)
	return &InfeasibleLoadError{Load: load, Committed: committed, Fuels: fuels, Powerplants: snapshot}
}

// UnknownPlantTypeError is returned when a plant of an unsupported type
// reaches the cost model. It signals a caller bug, not a user error.
type UnknownPlantTypeError struct {
	Name string
	Type model.PlantType
}

func (e *UnknownPlantTypeError) Error() string {
	return fmt.Sprintf("%v %d for plant %q", ErrUnknownPlantType, int(e.Type), e.Name)
}

func (e *UnknownPlantTypeError) Unwrap() error { return ErrUnknownPlantType }
