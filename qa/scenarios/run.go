package scenarios

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kilianp07/powerplan/core/dispatch"
	"github.com/kilianp07/powerplan/core/factory"
	"github.com/kilianp07/powerplan/infra/logger"
	"github.com/kilianp07/powerplan/infra/metrics"
	"github.com/kilianp07/powerplan/infra/mqtt"
	"github.com/kilianp07/powerplan/internal/eventbus"
)

func RunScenario(t *testing.T, sc *Scenario) {
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}

	d, err := dispatch.NewDispatcher(factory.ModuleConfig{Type: sc.Strategy})
	if err != nil {
		t.Fatalf("dispatcher: %v", err)
	}
	pub := mqtt.NewMockPublisher()
	bus := eventbus.New()
	mgr, err := dispatch.NewPlanManager(d, sink, bus, logger.NopLogger{})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	mgr.SetPublisher(pub)
	defer func() { _ = mgr.Close() }()

	req, err := sc.Request()
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	plan, err := mgr.Plan(context.Background(), req)

	if n, gerr := testutil.GatherAndCount(reg, "plan_results_total"); gerr != nil || n != 1 {
		t.Errorf("expected one plan_results_total series, got %d (%v)", n, gerr)
	}

	if sc.Expected.Infeasible {
		if !errors.Is(err, dispatch.ErrInfeasible) {
			t.Fatalf("expected infeasible load, got %v", err)
		}
		if len(pub.Published()) != 0 {
			t.Fatalf("infeasible plan must not be published")
		}
		return
	}
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(plan.Entries) != len(sc.Expected.Plan) {
		t.Fatalf("expected %d plants, got %+v", len(sc.Expected.Plan), plan.Entries)
	}
	for name, want := range sc.Expected.Plan {
		got, ok := plan.Entries.Power(name)
		if !ok {
			t.Errorf("%s missing from plan", name)
			continue
		}
		if got != want {
			t.Errorf("%s: expected %v got %v", name, want, got)
		}
	}
	if len(pub.Published()) != 1 {
		t.Fatalf("expected plan to be published once, got %d", len(pub.Published()))
	}
}
