package metrics

import (
	"context"
	"time"

	"github.com/kilianp07/powerplan/core/events"
	coremetrics "github.com/kilianp07/powerplan/core/metrics"
	"github.com/kilianp07/powerplan/internal/eventbus"
)

// StrategyEventRecorder is implemented by sinks that persist dispatcher
// selection events.
type StrategyEventRecorder interface {
	RecordStrategyEvent(ev events.StrategyEvent, at time.Time) error
}

// StartEventCollector subscribes to the event bus and forwards strategy events
// to every sink able to record them. It stops when the context is canceled or
// the bus is closed.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	recorders := strategyRecorders(sink)
	if len(recorders) == 0 {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		eventbus.Listen(ctx, sub, func(ev events.StrategyEvent) {
			now := time.Now()
			for _, r := range recorders {
				_ = r.RecordStrategyEvent(ev, now)
			}
		})
	}()
}

func strategyRecorders(sink coremetrics.MetricsSink) []StrategyEventRecorder {
	if m, ok := sink.(*coremetrics.MultiSink); ok {
		var out []StrategyEventRecorder
		for _, s := range m.Sinks {
			out = append(out, strategyRecorders(s)...)
		}
		return out
	}
	if r, ok := sink.(StrategyEventRecorder); ok {
		return []StrategyEventRecorder{r}
	}
	return nil
}
