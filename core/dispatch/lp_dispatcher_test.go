package dispatch

import (
	"errors"
	"math"
	"testing"

	"github.com/kilianp07/powerplan/core/model"
)

func TestLPDispatcher_RedispatchCheapestFirst(t *testing.T) {
	d := NewLPDispatcher(Config{})
	plan, err := d.DispatchStrict(480, fuels(60), fleet())
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	assertPlan(t, plan, model.Plan{
		{Name: "windpark1", Power: 90},
		{Name: "windpark2", Power: 21.6},
		{Name: "gasfiredsomewhatsmaller", Power: 40},
		{Name: "gasfiredbig1", Power: 328.4},
	})
}

func TestLPDispatcher_InfeasibleStillReported(t *testing.T) {
	plants := []model.Powerplant{{Name: "g", Type: model.PlantGasFired, Efficiency: 0.53, PMin: 100, PMax: 460}}
	d := NewLPDispatcher(Config{})
	if _, err := d.Dispatch(500, fuels(60), plants); !errors.Is(err, ErrInfeasible) {
		t.Fatalf("expected infeasible got %v", err)
	}
	if _, err := d.DispatchStrict(500, fuels(60), plants); !errors.Is(err, ErrInfeasible) {
		t.Fatalf("expected infeasible got %v", err)
	}
}

func TestLPDispatcher_SolverFailure(t *testing.T) {
	orig := lpSolve
	lpSolve = func([]float64, []float64, float64) ([]float64, error) {
		return nil, errors.New("solver down")
	}
	t.Cleanup(func() { lpSolve = orig })

	d := NewLPDispatcher(Config{})
	if _, err := d.DispatchStrict(480, fuels(60), fleet()); err == nil {
		t.Fatalf("expected solver error")
	}
	plan, err := d.Dispatch(480, fuels(60), fleet())
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	merit, _ := NewMeritOrderDispatcher(0).Dispatch(480, fuels(60), fleet())
	assertPlan(t, plan, merit)
}

func TestLPDispatcher_RejectsMismatchedSolution(t *testing.T) {
	orig := lpSolve
	lpSolve = func(_ []float64, caps []float64, _ float64) ([]float64, error) {
		return make([]float64, len(caps)), nil
	}
	t.Cleanup(func() { lpSolve = orig })

	_, err := NewLPDispatcher(Config{}).DispatchStrict(480, fuels(60), fleet())
	if !errors.Is(err, ErrLPSolution) {
		t.Fatalf("expected ErrLPSolution got %v", err)
	}
}

func TestLPDispatcher_SingleCommitment(t *testing.T) {
	plants := []model.Powerplant{{Name: "g", Type: model.PlantGasFired, Efficiency: 0.5, PMin: 10, PMax: 100}}
	plan, err := NewLPDispatcher(Config{}).DispatchStrict(42, fuels(0), plants)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	assertPlan(t, plan, model.Plan{{Name: "g", Power: 42}})
}

func TestSolveLP(t *testing.T) {
	y, err := solveLP([]float64{3, 1, 2}, []float64{10, 5, 10}, 12)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	want := []float64{0, 5, 7}
	for i := range want {
		if math.Abs(y[i]-want[i]) > 1e-6 {
			t.Fatalf("y[%d] expected %v got %v", i, want[i], y[i])
		}
	}
}

func TestSolveLP_NonNegative(t *testing.T) {
	costs := []float64{0, 0, 169.3, 36.2, 25.3}
	caps := []float64{90, 21.6, 16, 170, 360}
	y, err := solveLP(costs, caps, 340)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	want := []float64{90, 21.6, 0, 0, 228.4}
	var sum float64
	for i := range want {
		if y[i] < -1e-9 {
			t.Fatalf("y[%d] negative: %v", i, y[i])
		}
		if math.Abs(y[i]-want[i]) > 1e-6 {
			t.Fatalf("y[%d] expected %v got %v", i, want[i], y[i])
		}
		sum += y[i]
	}
	if math.Abs(sum-340) > 1e-6 {
		t.Fatalf("expected sum 340 got %v", sum)
	}
}

func TestLPDispatcher_DropsIdleUnits(t *testing.T) {
	plan, err := NewLPDispatcher(Config{}).DispatchStrict(480, fuels(60), fleet())
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if _, ok := plan.Power("tj1"); ok {
		t.Fatalf("tj1 should be dropped from the plan: %+v", plan)
	}
	for _, e := range plan {
		if e.Power <= 0 {
			t.Fatalf("non positive entry %+v", e)
		}
	}
	if math.Abs(plan.Total()-480) > 1e-9 {
		t.Fatalf("expected 480 got %v", plan.Total())
	}
}
