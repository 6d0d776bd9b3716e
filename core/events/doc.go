// Package events defines the planning events emitted on the event bus.
//
// Available event types:
//   - PlanEvent: a production plan request was processed
//   - StrategyEvent: dispatcher selection and fallback information
package events
