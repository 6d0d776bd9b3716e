// Package api wires the HTTP endpoints of the planner.
package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/kilianp07/powerplan/api/plans"
	"github.com/kilianp07/powerplan/api/productionplan"
	"github.com/kilianp07/powerplan/core/dispatch/logging"
	"github.com/kilianp07/powerplan/core/logger"
)

// Deps are the collaborators served by the router. Store may be nil, in which
// case the log endpoint is not mounted.
type Deps struct {
	Planner   productionplan.Planner
	Store     logging.LogStore
	LogsToken string
	Logger    logger.Logger
}

// NewRouter returns the routes of the service.
func NewRouter(d Deps) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	r.Handle("/productionplan", productionplan.NewHandler(d.Planner, d.Logger)).Methods(http.MethodPost)
	if d.Store != nil {
		r.Handle("/api/plans/logs", plans.NewLogHandler(d.Store, d.LogsToken)).Methods(http.MethodGet)
	}
	return r
}

// NewHandler wraps the router with panic recovery and combined access logs
// written to accessLog.
func NewHandler(d Deps, accessLog io.Writer) http.Handler {
	h := handlers.RecoveryHandler(handlers.PrintRecoveryStack(false))(NewRouter(d))
	return handlers.CombinedLoggingHandler(accessLog, h)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
