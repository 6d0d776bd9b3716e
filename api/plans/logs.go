// Package plans exposes the production plan history.
package plans

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/kilianp07/powerplan/core/dispatch/logging"
)

// NewLogHandler returns an HTTP handler exposing plan logs via GET /api/plans/logs.
// Requests must include an Authorization header with "Bearer <token>" when token is non-empty.
//
// Query parameters: start and end (RFC3339), plant, failures (bool).
func NewLogHandler(store logging.LogStore, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token != "" {
			auth := []byte(r.Header.Get("Authorization"))
			if subtle.ConstantTimeCompare(auth, []byte("Bearer "+token)) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		params := r.URL.Query()
		q := logging.LogQuery{Plant: params.Get("plant")}
		if s := params.Get("start"); s != "" {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				http.Error(w, "invalid start", http.StatusBadRequest)
				return
			}
			q.Start = t
		}
		if s := params.Get("end"); s != "" {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				http.Error(w, "invalid end", http.StatusBadRequest)
				return
			}
			q.End = t
		}
		if s := params.Get("failures"); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				http.Error(w, "invalid failures", http.StatusBadRequest)
				return
			}
			q.FailuresOnly = b
		}
		records, err := store.Query(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []logging.LogRecord{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
