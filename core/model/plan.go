package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// PlanEntry is the power assigned to one powerplant.
type PlanEntry struct {
	Name  string  `json:"name"`
	Power float64 `json:"power"`
}

// Plan is the list of committed powerplants returned to callers.
type Plan []PlanEntry

// Total returns the sum of the planned power.
func (p Plan) Total() float64 {
	var sum float64
	for _, e := range p {
		sum += e.Power
	}
	return sum
}

// Power returns the power assigned to the named plant and whether it is
// part of the plan.
func (p Plan) Power(name string) (float64, bool) {
	for _, e := range p {
		if e.Name == name {
			return e.Power, true
		}
	}
	return 0, false
}

// PlanRequest is the input of a production plan computation.
type PlanRequest struct {
	Load        float64      `json:"load"`
	Fuels       Fuels        `json:"fuels"`
	Powerplants []Powerplant `json:"powerplants"`
}

// Validate checks the whole request and returns nil when it is valid.
func (r PlanRequest) Validate() error {
	errs := ValidationErrors{}
	if r.Load < 0 {
		errs.Add("load", "Ensure this value is greater than or equal to 0.")
	}
	errs.Merge("fuels", r.Fuels.Validate())
	if len(r.Powerplants) == 0 {
		errs.Add("powerplants", "This list may not be empty.")
	}
	seen := make(map[string]int, len(r.Powerplants))
	for i, p := range r.Powerplants {
		prefix := fmt.Sprintf("powerplants[%d]", i)
		errs.Merge(prefix, p.Validate())
		if first, ok := seen[p.Name]; ok && p.Name != "" {
			errs.Add(prefix+".name", fmt.Sprintf("Duplicate name, already used by powerplants[%d].", first))
		} else {
			seen[p.Name] = i
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ProductionPlan is a computed plan together with its request metadata.
type ProductionPlan struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Strategy  string    `json:"strategy"`
	Load      float64   `json:"load"`
	Entries   Plan      `json:"entries"`
}

// ValidationErrors maps a field path to a human readable message.
type ValidationErrors map[string]string

// Add records msg for field unless the field already has a message.
func (v ValidationErrors) Add(field, msg string) {
	if _, ok := v[field]; ok {
		return
	}
	v[field] = msg
}

// Merge adds the errors of other under prefix.
func (v ValidationErrors) Merge(prefix string, other ValidationErrors) {
	for k, msg := range other {
		v.Add(prefix+"."+k, msg)
	}
}

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return "invalid request: " + strings.Join(parts, "; ")
}
