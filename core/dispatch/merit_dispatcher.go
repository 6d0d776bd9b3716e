package dispatch

import (
	"math"
	"sort"

	"github.com/kilianp07/powerplan/core/model"
)

// MeritOrderDispatcher commits plants from the cheapest to the most
// expensive until the load is matched. Plants whose minimum output would
// overshoot the load are retried in a second backward pass that shaves power
// from plants already committed.
type MeritOrderDispatcher struct {
	// Tolerance is the absolute tolerance in MW used for every comparison
	// against the load. Zero means DefaultTolerance.
	Tolerance float64
}

// NewMeritOrderDispatcher returns a dispatcher using the given tolerance.
func NewMeritOrderDispatcher(tolerance float64) MeritOrderDispatcher {
	return MeritOrderDispatcher{Tolerance: tolerance}
}

// Name implements Named.
func (MeritOrderDispatcher) Name() string { return "merit" }

func (d MeritOrderDispatcher) tolerance() float64 {
	if d.Tolerance <= 0 {
		return DefaultTolerance
	}
	return d.Tolerance
}

type scoredPlant struct {
	plant model.Powerplant
	score float64
}

// meritOrder scores the plants and sorts them cheapest first. Ties keep
// input order.
func meritOrder(plants []model.Powerplant, fuels model.Fuels) ([]scoredPlant, error) {
	list := make([]scoredPlant, 0, len(plants))
	for _, p := range plants {
		s, err := PlantScore(p, fuels)
		if err != nil {
			return nil, err
		}
		list = append(list, scoredPlant{plant: p, score: s})
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].score < list[j].score })
	return list, nil
}

// Dispatch implements Dispatcher.
func (d MeritOrderDispatcher) Dispatch(load float64, fuels model.Fuels, plants []model.Powerplant) (model.Plan, error) {
	commitments, err := d.Commit(load, fuels, plants)
	if err != nil {
		return nil, err
	}
	return FormatPlan(commitments), nil
}

// Commit returns the unrounded commitments matching load, or an
// *InfeasibleLoadError when none was found.
func (d MeritOrderDispatcher) Commit(load float64, fuels model.Fuels, plants []model.Powerplant) ([]Commitment, error) {
	tol := d.tolerance()
	sorted, err := meritOrder(plants, fuels)
	if err != nil {
		return nil, err
	}

	var (
		committed float64
		active    []Commitment
		inactive  []Commitment
	)
	for _, sp := range sorted {
		if math.Abs(committed-load) <= tol {
			break
		}
		pmin, pmax := effectiveRange(sp.plant, fuels)
		if pmax == 0 {
			continue
		}
		c := Commitment{Plant: sp.plant, PMin: pmin, PMax: pmax}
		if committed+pmax <= load+tol {
			c.Power = pmax
			committed += pmax
			active = append(active, c)
			continue
		}
		if committed+pmin > load+tol {
			inactive = append(inactive, c)
			continue
		}
		c.Power = load - committed
		committed += c.Power
		active = append(active, c)
		break
	}

	if committed < load-tol {
		active = reconcile(active, inactive, committed, load)
	}

	if sum := totalPower(active); math.Abs(sum-load) > tol {
		return nil, newInfeasibleLoadError(load, sum, fuels, plants)
	}
	return active, nil
}

// reconcile walks the committed plants backwards and, for each one, forces on
// the first inactive plant whose minimum output it can absorb by lowering its
// own power. It is a single first-fit pass: committed is the phase one total
// and is not refreshed between reconciliations, so chaining several of them
// overshoots and the caller reports the load as infeasible.
func reconcile(active, inactive []Commitment, committed, load float64) []Commitment {
	if len(inactive) == 0 {
		return active
	}
	pending := append([]Commitment(nil), inactive...)
	for i := len(active) - 1; i >= 0; i-- {
		headroom := active[i].Headroom()
		for j, cand := range pending {
			excess := (committed + cand.PMin) - load
			if headroom > excess {
				active[i].Power -= excess
				cand.Power = cand.PMin
				active = append(active, cand)
				pending = append(pending[:j], pending[j+1:]...)
				break
			}
		}
		if len(pending) == 0 {
			break
		}
	}
	return active
}

func totalPower(cs []Commitment) float64 {
	var sum float64
	for _, c := range cs {
		sum += c.Power
	}
	return sum
}
