package events

// StrategyEvent is emitted when the plan manager chooses a dispatcher.
// Action can be "lp_attempt", "lp_failure", or "merit_fallback".
type StrategyEvent struct {
	PlanID string
	Action string
	Err    error
}
