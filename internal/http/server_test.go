package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"masarif/internal/core"
	"masarif/internal/normalize"
	"masarif/internal/services"
	"masarif/internal/source/memory"
)

func newTestServer() *Server {
	store := memory.New(map[core.Role]core.RawTable{
		core.Expenses: {
			Columns: []string{"التاريخ", "البند", "المبلغ"},
			Rows: [][]any{
				{"2024-03-05", "Rent", "1,200 EGP"},
				{"2024-03-10", "Supplies", "300"},
				{"bad", "X", "50"},
			},
		},
		core.Income: {
			Columns: []string{"التاريخ", "المصدر", "المبلغ"},
			Rows:    [][]any{{"2024-03-01", "Salary", "5,000"}},
		},
	})
	dash := services.NewDashboard(store, normalize.New(normalize.Options{}), map[core.Role]string{
		core.Expenses: "البند",
		core.Income:   "المصدر",
	})
	return NewServer(":0", dash)
}

func do(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	s.Handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer()
	for _, path := range []string{"/healthz", "/readyz"} {
		if rr := do(t, s, http.MethodGet, path); rr.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, rr.Code)
		}
	}
}

func TestRecordsEndpoint(t *testing.T) {
	s := newTestServer()
	rr := do(t, s, http.MethodGet, "/api/records?role=expenses&year=2024&month=3")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}
	var body struct {
		Records []map[string]any `json:"records"`
		Dropped int              `json:"dropped"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(body.Records))
	}
	if body.Dropped != 1 {
		t.Fatalf("dropped = %d, want 1", body.Dropped)
	}
	if body.Records[0]["period_key"] != "2024-03" {
		t.Fatalf("record missing canonical fields: %v", body.Records[0])
	}
}

func TestRecordsEndpointDateRange(t *testing.T) {
	s := newTestServer()
	rr := do(t, s, http.MethodGet, "/api/records?role=expenses&from=2024-03-06&to=2024-03-31")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var body struct {
		Records []map[string]any `json:"records"`
	}
	json.Unmarshal(rr.Body.Bytes(), &body)
	if len(body.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(body.Records))
	}
}

func TestRecordsBadInputs(t *testing.T) {
	s := newTestServer()
	cases := []string{
		"/api/records?role=savings",
		"/api/records?role=expenses&year=2024&month=19",
		"/api/records?role=expenses&from=not-a-date",
		"/api/records?role=expenses&year=2024&month=3&day=99",
		"/api/records?role=expenses&day=5",
		"/api/records?role=expenses&year=2024&day=5",
	}
	for _, target := range cases {
		if rr := do(t, s, http.MethodGet, target); rr.Code != http.StatusBadRequest {
			t.Errorf("%s status = %d, want 400", target, rr.Code)
		}
	}
	if rr := do(t, s, http.MethodPost, "/api/records?role=expenses"); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("wrong method status = %d", rr.Code)
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	s := newTestServer()
	rr := do(t, s, http.MethodGet, "/api/categories?role=expenses&year=2024&month=3")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}
	var body struct {
		Totals []core.CategoryTotal `json:"totals"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Totals) != 2 || body.Totals[0].Category != "Rent" {
		t.Fatalf("totals = %+v", body.Totals)
	}

	// Unknown explicit category column is the caller's mistake.
	if rr := do(t, s, http.MethodGet, "/api/categories?role=expenses&by=missing"); rr.Code != http.StatusBadRequest {
		t.Fatalf("unknown column status = %d", rr.Code)
	}
}

func TestMonthlySummaryEndpoint(t *testing.T) {
	s := newTestServer()
	rr := do(t, s, http.MethodGet, "/api/summary/monthly")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var body struct {
		Summary []core.PeriodSummary `json:"summary"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Summary) != 1 || body.Summary[0].Net != 3500 {
		t.Fatalf("summary = %+v", body.Summary)
	}
}

func TestRefreshEndpoint(t *testing.T) {
	s := newTestServer()
	if rr := do(t, s, http.MethodGet, "/api/refresh"); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET refresh status = %d", rr.Code)
	}
	rr := do(t, s, http.MethodPost, "/api/refresh")
	if rr.Code != http.StatusOK {
		t.Fatalf("refresh status = %d", rr.Code)
	}
	if rr := do(t, s, http.MethodPost, "/api/refresh?role=expenses"); rr.Code != http.StatusOK {
		t.Fatalf("role refresh status = %d", rr.Code)
	}
	if rr := do(t, s, http.MethodPost, "/api/refresh?role=savings"); rr.Code != http.StatusBadRequest {
		t.Fatalf("bad role refresh status = %d, want 400", rr.Code)
	}
}

func TestSourceFailureIsBadGateway(t *testing.T) {
	dash := services.NewDashboard(memory.New(nil), normalize.New(normalize.Options{}), nil)
	s := NewServer(":0", dash)
	rr := do(t, s, http.MethodGet, "/api/records?role=expenses")
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rr.Code)
	}
}
