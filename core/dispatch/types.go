package dispatch

import "github.com/kilianp07/powerplan/core/model"

// Dispatcher computes a production plan matching the requested load.
type Dispatcher interface {
	Dispatch(load float64, fuels model.Fuels, plants []model.Powerplant) (model.Plan, error)
}

// StrictDispatcher is implemented by dispatchers that can report a solver
// failure instead of silently falling back to another strategy.
type StrictDispatcher interface {
	Dispatcher
	DispatchStrict(load float64, fuels model.Fuels, plants []model.Powerplant) (model.Plan, error)
}

// Named is implemented by dispatchers exposing a strategy name for logs and
// metrics.
type Named interface {
	Name() string
}

// Commitment is a powerplant committed at a given power, together with its
// effective operating range after derating.
type Commitment struct {
	Plant model.Powerplant
	PMin  float64
	PMax  float64
	Power float64
}

// Headroom returns how much power can be shaved before reaching PMin.
func (c Commitment) Headroom() float64 { return c.Power - c.PMin }
