// Package productionplan serves the production plan endpoint.
package productionplan

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kilianp07/powerplan/core/dispatch"
	"github.com/kilianp07/powerplan/core/logger"
	"github.com/kilianp07/powerplan/core/model"
)

// MaxBodyBytes bounds the size of a request payload.
const MaxBodyBytes = 1 << 20

// Planner computes production plans.
type Planner interface {
	Plan(ctx context.Context, req model.PlanRequest) (model.ProductionPlan, error)
}

type errorBody struct {
	Errors model.ValidationErrors `json:"errors,omitempty"`
	// Message is set for non-validation failures.
	Message string `json:"message,omitempty"`
}

// NewHandler returns the POST /productionplan handler.
func NewHandler(p Planner, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req model.PlanRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
		if err := dec.Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Errors: model.ValidationErrors{"body": err.Error()}})
			return
		}
		if err := req.Validate(); err != nil {
			var verrs model.ValidationErrors
			errors.As(err, &verrs)
			writeJSON(w, http.StatusBadRequest, errorBody{Errors: verrs})
			return
		}

		plan, err := p.Plan(r.Context(), req)
		var verrs model.ValidationErrors
		switch {
		case err == nil:
			entries := plan.Entries
			if entries == nil {
				entries = model.Plan{}
			}
			writeJSON(w, http.StatusOK, entries)
		case errors.As(err, &verrs):
			writeJSON(w, http.StatusBadRequest, errorBody{Errors: verrs})
		case errors.Is(err, dispatch.ErrInfeasible):
			writeJSON(w, http.StatusUnprocessableEntity, errorBody{Message: "The load could not be matched."})
		default:
			log.Errorf("production plan %s: %v", plan.ID, err)
			writeJSON(w, http.StatusInternalServerError, errorBody{Message: "internal error"})
		}
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
