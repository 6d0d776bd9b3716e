package logging

import (
	"context"
	"time"

	"github.com/kilianp07/powerplan/core/model"
)

// LogRecord captures one production plan request and its outcome.
type LogRecord struct {
	Timestamp   time.Time          `json:"timestamp"`
	PlanID      string             `json:"plan_id"`
	Strategy    string             `json:"strategy"`
	Load        float64            `json:"load"`
	Fuels       model.Fuels        `json:"fuels"`
	Powerplants []model.Powerplant `json:"powerplants"`
	Plan        model.Plan         `json:"plan,omitempty"`
	Error       string             `json:"error,omitempty"`
}

// Feasible reports whether the request produced a plan.
func (r LogRecord) Feasible() bool { return r.Error == "" }

// LogQuery defines filters for retrieving records.
type LogQuery struct {
	Start time.Time
	End   time.Time
	// Plant keeps records where the named plant was part of the request.
	Plant        string
	FailuresOnly bool
}

// LogStore persists LogRecords and supports querying.
type LogStore interface {
	Append(ctx context.Context, rec LogRecord) error
	Query(ctx context.Context, q LogQuery) ([]LogRecord, error)
	Close() error
}

// Match reports whether r satisfies the query filters.
func (q LogQuery) Match(r LogRecord) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.FailuresOnly && r.Feasible() {
		return false
	}
	if q.Plant != "" {
		for _, p := range r.Powerplants {
			if p.Name == q.Plant {
				return true
			}
		}
		return false
	}
	return true
}
