package events

import "time"

// PlanEvent is published once per production plan request.
type PlanEvent struct {
	PlanID   string
	Strategy string
	Load     float64
	Feasible bool
	Err      error
	Time     time.Time
}
