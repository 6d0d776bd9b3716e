package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/powerplan/core/dispatch/logging"
	"github.com/kilianp07/powerplan/core/events"
	"github.com/kilianp07/powerplan/core/logger"
	"github.com/kilianp07/powerplan/core/metrics"
	"github.com/kilianp07/powerplan/core/model"
	"github.com/kilianp07/powerplan/core/monitoring"
	"github.com/kilianp07/powerplan/core/publisher"
	"github.com/kilianp07/powerplan/internal/eventbus"
)

// Plan outcomes used as metric labels.
const (
	OutcomeOK         = "ok"
	OutcomeInfeasible = "infeasible"
	OutcomeInvalid    = "invalid"
	OutcomeError      = "error"
)

// PlanManager validates production plan requests, runs the configured
// dispatcher and reports the result to the metrics sink, the log store, the
// event bus and the publishers.
type PlanManager struct {
	dispatcher     Dispatcher
	lpDispatcher   StrictDispatcher
	lpFirst        bool
	emissionFactor float64
	logger         logger.Logger
	metrics        metrics.MetricsSink
	bus            eventbus.EventBus
	store          logging.LogStore
	publisher      publisher.Publisher
	now            func() time.Time
	mu             sync.Mutex
}

// NewPlanManager creates a new manager. sink and bus are optional.
func NewPlanManager(dispatcher Dispatcher, sink metrics.MetricsSink, bus eventbus.EventBus, log logger.Logger) (*PlanManager, error) {
	if dispatcher == nil || log == nil {
		return nil, fmt.Errorf("dispatch: nil parameter provided to NewPlanManager")
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	mgr := &PlanManager{
		dispatcher:     dispatcher,
		emissionFactor: DefaultEmissionFactor,
		logger:         log,
		metrics:        sink,
		bus:            bus,
		publisher:      publisher.NopPublisher{},
		now:            time.Now,
	}
	switch d := dispatcher.(type) {
	case LPDispatcher:
		mgr.lpDispatcher = d
	case *LPDispatcher:
		mgr.lpDispatcher = d
	}
	return mgr, nil
}

// SetLPFirst enables trying the LP dispatcher before the configured one.
func (m *PlanManager) SetLPFirst(enabled bool) {
	m.mu.Lock()
	m.lpFirst = enabled
	m.mu.Unlock()
}

// SetLPDispatcher configures the dispatcher tried first when LP-first is on.
func (m *PlanManager) SetLPDispatcher(d StrictDispatcher) {
	m.mu.Lock()
	m.lpDispatcher = d
	m.mu.Unlock()
}

// SetLogStore configures the store used to persist plan logs.
func (m *PlanManager) SetLogStore(store logging.LogStore) {
	m.mu.Lock()
	m.store = store
	m.mu.Unlock()
}

// SetPublisher configures where successful plans are delivered.
func (m *PlanManager) SetPublisher(p publisher.Publisher) {
	if p == nil {
		p = publisher.NopPublisher{}
	}
	m.mu.Lock()
	m.publisher = p
	m.mu.Unlock()
}

// SetEmissionFactor sets the tons of CO2 per MWh used for emission estimates.
func (m *PlanManager) SetEmissionFactor(f float64) {
	m.mu.Lock()
	m.emissionFactor = f
	m.mu.Unlock()
}

// Plan computes a production plan for req.
//
// Validation failures are returned as model.ValidationErrors, an unmatched
// load as *InfeasibleLoadError. The returned plan carries a fresh ID even on
// failure so callers can correlate logs.
func (m *PlanManager) Plan(ctx context.Context, req model.PlanRequest) (model.ProductionPlan, error) {
	plan := model.ProductionPlan{
		ID:        uuid.NewString(),
		Timestamp: m.now(),
		Load:      req.Load,
	}
	if err := req.Validate(); err != nil {
		plansTotal.WithLabelValues(nameOf(m.dispatcher), OutcomeInvalid).Inc()
		m.logger.Debugw("rejected production plan request", logger.Fields{"plan_id": plan.ID, "error": err.Error()})
		return plan, err
	}

	start := time.Now()
	entries, used, err := m.dispatchStrategy(plan.ID, req)
	dur := time.Since(start)
	plan.Strategy = nameOf(used)
	outcome := outcomeOf(err)
	plansTotal.WithLabelValues(plan.Strategy, outcome).Inc()
	planDuration.WithLabelValues(plan.Strategy).Observe(dur.Seconds())

	switch outcome {
	case OutcomeOK:
		plan.Entries = entries
		m.logger.Infof("plan %s: %d plants committed for %.1f MW using %s", plan.ID, len(entries), req.Load, plan.Strategy)
	case OutcomeInfeasible:
		m.logger.Warnw("load could not be matched", logger.Fields{
			"plan_id": plan.ID,
			"load":    req.Load,
			"plants":  len(req.Powerplants),
			"error":   err.Error(),
		})
	default:
		m.logger.Errorf("plan %s failed: %v", plan.ID, err)
		monitoring.CaptureException(err, map[string]string{"plan_id": plan.ID, "strategy": plan.Strategy})
	}

	m.record(ctx, plan, req, dur, err)
	if err != nil {
		return plan, err
	}

	m.mu.Lock()
	pub := m.publisher
	m.mu.Unlock()
	if perr := pub.Publish(ctx, plan); perr != nil {
		publishFailures.Inc()
		m.logger.Errorf("publish plan %s: %v", plan.ID, perr)
	}
	return plan, nil
}

// dispatchStrategy selects the dispatcher and falls back from LP to the
// configured dispatcher when the solver fails. An infeasible load is not a
// solver failure and is reported as is.
func (m *PlanManager) dispatchStrategy(id string, req model.PlanRequest) (model.Plan, Dispatcher, error) {
	m.mu.Lock()
	lpFirst := m.lpFirst
	lp := m.lpDispatcher
	m.mu.Unlock()

	if !lpFirst || lp == nil {
		entries, err := m.dispatcher.Dispatch(req.Load, req.Fuels, req.Powerplants)
		return entries, m.dispatcher, err
	}

	m.strategyEvent(events.StrategyEvent{PlanID: id, Action: "lp_attempt"})
	m.logger.Debugf("trying LP dispatch for plan %s", id)
	entries, err := lp.DispatchStrict(req.Load, req.Fuels, req.Powerplants)
	if err == nil || errors.Is(err, ErrInfeasible) || errors.Is(err, ErrUnknownPlantType) {
		return entries, lp, err
	}

	m.strategyEvent(events.StrategyEvent{PlanID: id, Action: "lp_failure", Err: err})
	m.logger.Warnf("LP dispatch failed: %v", err)
	if fr, ok := m.metrics.(metrics.StrategyFallbackRecorder); ok {
		if ferr := fr.RecordStrategyFallback(metrics.StrategyFallback{PlanID: id, Reason: err.Error(), Time: m.now()}); ferr != nil {
			m.logger.Errorf("fallback metrics error: %v", ferr)
		}
	}
	entries, err = m.dispatcher.Dispatch(req.Load, req.Fuels, req.Powerplants)
	m.strategyEvent(events.StrategyEvent{PlanID: id, Action: "merit_fallback"})
	return entries, m.dispatcher, err
}

func (m *PlanManager) strategyEvent(ev events.StrategyEvent) {
	strategyEvents.WithLabelValues(ev.Action).Inc()
	if m.bus != nil {
		m.bus.Publish(ev)
	}
}

// record persists the outcome to the metrics sink, the log store and the bus.
func (m *PlanManager) record(ctx context.Context, plan model.ProductionPlan, req model.PlanRequest, dur time.Duration, err error) {
	m.mu.Lock()
	store := m.store
	factor := m.emissionFactor
	m.mu.Unlock()

	var errMsg string
	if err != nil {
		errMsg = err.Error()
	}
	rec := metrics.PlanRecord{
		PlanID:   plan.ID,
		Strategy: plan.Strategy,
		Load:     req.Load,
		Feasible: err == nil,
		Error:    errMsg,
		Entries:  plan.Entries,
		CO2Tons:  metrics.Emissions(plan.Entries, req.Powerplants, factor),
		Duration: dur,
		Time:     plan.Timestamp,
	}
	if merr := m.metrics.RecordPlan(rec); merr != nil {
		m.logger.Errorf("metrics error: %v", merr)
	}
	if store != nil {
		if serr := store.Append(ctx, logging.LogRecord{
			Timestamp:   plan.Timestamp,
			PlanID:      plan.ID,
			Strategy:    plan.Strategy,
			Load:        req.Load,
			Fuels:       req.Fuels,
			Powerplants: req.Powerplants,
			Plan:        plan.Entries,
			Error:       errMsg,
		}); serr != nil {
			m.logger.Errorf("log store error: %v", serr)
		}
	}
	if m.bus != nil {
		m.bus.Publish(events.PlanEvent{
			PlanID:   plan.ID,
			Strategy: plan.Strategy,
			Load:     req.Load,
			Feasible: err == nil,
			Err:      err,
			Time:     plan.Timestamp,
		})
	}
}

// Close releases resources held by the manager.
func (m *PlanManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var errs []error
	if m.publisher != nil {
		errs = append(errs, m.publisher.Close())
	}
	if m.store != nil {
		errs = append(errs, m.store.Close())
	}
	if m.bus != nil {
		m.bus.Close()
	}
	return errors.Join(errs...)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrInfeasible):
		return OutcomeInfeasible
	default:
		return OutcomeError
	}
}

func nameOf(d Dispatcher) string {
	if n, ok := d.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", d)
}
