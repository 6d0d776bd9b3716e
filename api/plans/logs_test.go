package plans

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kilianp07/powerplan/core/dispatch/logging"
	"github.com/kilianp07/powerplan/core/model"
)

type memStore struct{ recs []logging.LogRecord }

func (m *memStore) Append(ctx context.Context, r logging.LogRecord) error {
	m.recs = append(m.recs, r)
	return nil
}

func (m *memStore) Query(ctx context.Context, q logging.LogQuery) ([]logging.LogRecord, error) {
	var res []logging.LogRecord
	for _, r := range m.recs {
		if q.Match(r) {
			res = append(res, r)
		}
	}
	return res, nil
}

func (m *memStore) Close() error { return nil }

func TestLogHandler_AuthAndFilters(t *testing.T) {
	store := &memStore{}
	now := time.Now()
	if err := store.Append(context.Background(), logging.LogRecord{
		Timestamp:   now,
		PlanID:      "ok",
		Load:        90,
		Powerplants: []model.Powerplant{{Name: "windpark1", Type: model.PlantWindTurbine, Efficiency: 1, PMax: 150}},
		Plan:        model.Plan{{Name: "windpark1", Power: 90}},
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	_ = store.Append(context.Background(), logging.LogRecord{
		Timestamp:   now,
		PlanID:      "failed",
		Load:        500,
		Powerplants: []model.Powerplant{{Name: "gasfiredbig1", Type: model.PlantGasFired, Efficiency: 0.53, PMin: 100, PMax: 460}},
		Error:       "load could not be matched",
	})
	h := NewLogHandler(store, "tok")

	req := httptest.NewRequest("GET", "/api/plans/logs?plant=windpark1", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out []logging.LogRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 1 || out[0].PlanID != "ok" {
		t.Fatalf("expected the windpark1 record, got %+v", out)
	}

	req = httptest.NewRequest("GET", "/api/plans/logs?failures=true", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	out = nil
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 1 || out[0].PlanID != "failed" {
		t.Fatalf("expected the failed record, got %+v", out)
	}

	// unauthorized
	req = httptest.NewRequest("GET", "/api/plans/logs", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
}

func TestLogHandler_BadQuery(t *testing.T) {
	h := NewLogHandler(&memStore{}, "")
	for _, q := range []string{"start=yesterday", "end=1", "failures=maybe"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/plans/logs?"+q, nil))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d", q, rr.Code)
		}
	}
}

func TestLogHandler_EmptyStore(t *testing.T) {
	h := NewLogHandler(&memStore{}, "")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/plans/logs", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "[]\n" {
		t.Fatalf("unexpected response %d %q", rr.Code, rr.Body.String())
	}
}

func TestLogHandler_RejectsSameLengthToken(t *testing.T) {
	h := NewLogHandler(&memStore{}, "tok")

	cases := map[string]int{
		"Bearer tox":  http.StatusUnauthorized,
		"Bearer to":   http.StatusUnauthorized,
		"bearer tok":  http.StatusUnauthorized,
		"":            http.StatusUnauthorized,
		"Bearer tok":  http.StatusOK,
		"Bearer tok ": http.StatusUnauthorized,
	}
	for header, want := range cases {
		req := httptest.NewRequest("GET", "/api/plans/logs", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != want {
			t.Fatalf("header %q: status %d, want %d", header, rr.Code, want)
		}
	}
}
