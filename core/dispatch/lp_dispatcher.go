package dispatch

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/kilianp07/powerplan/core/model"
)

// LPDispatcher keeps the plants selected by the merit order and then
// redistributes the load between them with a linear program minimising the
// marginal production cost.
type LPDispatcher struct {
	Merit MeritOrderDispatcher
	// CO2Aware adds the emission cost of gas-fired plants to their marginal
	// cost using EmissionFactor tons per MWh.
	CO2Aware       bool
	EmissionFactor float64
}

// ErrLPSolution indicates the solver returned a solution that does not match
// the load within the plants' bounds.
var ErrLPSolution = errors.New("lp solution does not match load")

// NewLPDispatcher returns an LP-based dispatcher using the provided config.
func NewLPDispatcher(cfg Config) LPDispatcher {
	return LPDispatcher{
		Merit:          NewMeritOrderDispatcher(cfg.Tolerance),
		CO2Aware:       cfg.CO2Aware,
		EmissionFactor: cfg.EmissionFactor,
	}
}

// Name implements Named.
func (LPDispatcher) Name() string { return "lp" }

// solveLP minimises costs·y subject to 0 <= y <= caps and sum(y) = target.
func solveLP(costs, caps []float64, target float64) ([]float64, error) {
	n := len(caps)
	c := make([]float64, n)
	copy(c, costs)

	// Rows 0..n-1 bound y from above, rows n..2n-1 keep it non-negative.
	g := mat.NewDense(2*n, n, nil)
	h := make([]float64, 2*n)
	for i, cap := range caps {
		g.Set(i, i, 1)
		h[i] = cap
		g.Set(n+i, i, -1)
	}

	A := mat.NewDense(1, n, nil)
	for i := range caps {
		A.Set(0, i, 1)
	}
	b := []float64{target}

	cStd, AStd, bStd := lp.Convert(c, g, h, A, b)
	_, sol, err := lp.Simplex(cStd, AStd, bStd, 1e-10, nil)
	if err != nil {
		return nil, err
	}
	// Convert splits each variable into positive and negative parts.
	y := make([]float64, n)
	for i := range y {
		y[i] = sol[i] - sol[n+i]
	}
	return y, nil
}

// lpSolve points to the function used to solve the LP. It can be overridden in
// tests to simulate solver failures.
var lpSolve = solveLP

// DispatchStrict solves the LP and returns an error if the merit commitment is
// infeasible or the solver fails. No fallback is applied.
func (d LPDispatcher) DispatchStrict(load float64, fuels model.Fuels, plants []model.Powerplant) (model.Plan, error) {
	commitments, err := d.Merit.Commit(load, fuels, plants)
	if err != nil {
		return nil, err
	}
	redispatched, err := d.redispatch(commitments, load, fuels)
	if err != nil {
		return nil, err
	}
	return FormatPlan(redispatched), nil
}

// Dispatch implements Dispatcher. Solver failures fall back to the merit
// order plan; an infeasible load is still reported.
func (d LPDispatcher) Dispatch(load float64, fuels model.Fuels, plants []model.Powerplant) (model.Plan, error) {
	commitments, err := d.Merit.Commit(load, fuels, plants)
	if err != nil {
		return nil, err
	}
	redispatched, err := d.redispatch(commitments, load, fuels)
	if err != nil {
		return FormatPlan(commitments), nil
	}
	return FormatPlan(redispatched), nil
}

func (d LPDispatcher) redispatch(commitments []Commitment, load float64, fuels model.Fuels) ([]Commitment, error) {
	if len(commitments) < 2 {
		return commitments, nil
	}
	co2 := 0.0
	if d.CO2Aware {
		co2 = d.EmissionFactor
	}
	n := len(commitments)
	costs := make([]float64, n)
	caps := make([]float64, n)
	floors := make([]float64, n)
	for i, c := range commitments {
		mc, err := MarginalCost(c.Plant, fuels, co2)
		if err != nil {
			return nil, err
		}
		costs[i] = mc
		caps[i] = c.PMax - c.PMin
		floors[i] = c.PMin
	}
	target := load - floats.Sum(floors)
	if target < 0 {
		return nil, ErrLPSolution
	}

	y, err := lpSolve(costs, caps, target)
	if err != nil {
		return nil, err
	}
	if len(y) != n {
		return nil, ErrLPSolution
	}
	for i := range y {
		y[i] = math.Min(math.Max(y[i], 0), caps[i])
	}
	if math.Abs(floats.Sum(y)-target) > 1e-3 {
		return nil, ErrLPSolution
	}

	// Units the solver left at zero are not part of the plan.
	tol := d.Merit.tolerance()
	out := make([]Commitment, 0, n)
	for i, c := range commitments {
		c.Power = floors[i] + y[i]
		if c.Power <= tol {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}
