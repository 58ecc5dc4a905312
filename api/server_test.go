package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sealcost/internal/config"
	"sealcost/pkg/api"
)

func testServer() *Server {
	return NewServer(config.Config{
		Port:               0,
		MarginFloorPercent: 10,
		MaxWaterPercent:    30,
	})
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func estimateBody() api.EstimateRequest {
	return api.EstimateRequest{
		Project: api.ProjectInputs{
			TotalAreaSqFt: 10000,
			CoatCount:     2,
			SandAdditive:  true,
		},
		Business: api.DefaultBusinessSettings(),
	}
}

func TestHandleEstimate(t *testing.T) {
	h := testServer().Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/estimate", estimateBody())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var resp api.EstimateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Computation.Costs.Total.IsZero() {
		t.Fatal("expected a non-zero total")
	}
	if len(resp.Computation.Breakdown) == 0 {
		t.Fatal("expected breakdown lines")
	}
}

func TestHandleEstimate_BadBody(t *testing.T) {
	h := testServer().Routes()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/estimate", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestScenarioLifecycleOverHTTP(t *testing.T) {
	h := testServer().Routes()

	// Set the session baseline first.
	if rec := doJSON(t, h, http.MethodPut, "/api/v1/baseline", estimateBody()); rec.Code != http.StatusOK {
		t.Fatalf("baseline status = %d, body = %s", rec.Code, rec.Body)
	}

	// Create two scenarios.
	rec := doJSON(t, h, http.MethodPost, "/api/v1/scenarios/", api.CreateScenarioRequest{Name: "base"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body)
	}
	var first api.Scenario
	if err := json.Unmarshal(rec.Body.Bytes(), &first); err != nil {
		t.Fatalf("decode scenario: %v", err)
	}
	if !first.IsPrimary {
		t.Fatal("first scenario should be primary")
	}

	area := 20000.0
	rec = doJSON(t, h, http.MethodPost, "/api/v1/scenarios/", api.CreateScenarioRequest{
		Name:      "double area",
		Overrides: api.ScenarioOverrides{Project: api.ProjectPatch{TotalAreaSqFt: &area}},
	})
	var second api.Scenario
	if err := json.Unmarshal(rec.Body.Bytes(), &second); err != nil {
		t.Fatalf("decode scenario: %v", err)
	}

	// Run the variant.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/scenarios/"+second.ID+"/run", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("run status = %d, body = %s", rec.Code, rec.Body)
	}
	var ran api.Scenario
	if err := json.Unmarshal(rec.Body.Bytes(), &ran); err != nil {
		t.Fatalf("decode scenario: %v", err)
	}
	if ran.Status != api.StatusDone || ran.Computation == nil {
		t.Fatalf("status = %s, want done with computation", ran.Status)
	}

	// Promote it and check uniqueness through the list endpoint.
	if rec := doJSON(t, h, http.MethodPost, "/api/v1/scenarios/"+second.ID+"/primary", nil); rec.Code != http.StatusOK {
		t.Fatalf("primary status = %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/api/v1/scenarios/", nil)
	var list []api.Scenario
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	primaries := 0
	for _, sc := range list {
		if sc.IsPrimary {
			primaries++
		}
	}
	if primaries != 1 {
		t.Fatalf("primary count = %d, want 1", primaries)
	}

	// Delete and confirm 404 on subsequent access.
	if rec := doJSON(t, h, http.MethodDelete, "/api/v1/scenarios/"+second.ID+"/", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodGet, "/api/v1/scenarios/"+second.ID+"/", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestHandleSweep(t *testing.T) {
	h := testServer().Routes()

	body := api.SweepRequest{
		Project:   estimateBody().Project,
		Business:  estimateBody().Business,
		Parameter: "business.profit_percent",
		Values:    []float64{10, 20, 30},
	}
	rec := doJSON(t, h, http.MethodPost, "/api/v1/sweep", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var samples []api.SensitivitySample
	if err := json.Unmarshal(rec.Body.Bytes(), &samples); err != nil {
		t.Fatalf("decode samples: %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("samples = %d, want 3", len(samples))
	}

	body.Parameter = "business.moon_phase"
	if rec := doJSON(t, h, http.MethodPost, "/api/v1/sweep", body); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown parameter status = %d, want 400", rec.Code)
	}
}

func TestRequestMetricsUseRoutePattern(t *testing.T) {
	h := testServer().Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/scenarios/", api.CreateScenarioRequest{Name: "one"})
	var sc api.Scenario
	if err := json.Unmarshal(rec.Body.Bytes(), &sc); err != nil {
		t.Fatalf("decode scenario: %v", err)
	}
	doJSON(t, h, http.MethodGet, "/api/v1/scenarios/"+sc.ID+"/", nil)

	metrics := doJSON(t, h, http.MethodGet, "/metrics", nil).Body.String()
	if !strings.Contains(metrics, `path="/api/v1/scenarios/{id}/"`) {
		t.Fatal("expected request counter labeled with the route pattern")
	}
	if strings.Contains(metrics, sc.ID) {
		t.Fatal("scenario id leaked into a metric label")
	}
}

func TestHandleHealth(t *testing.T) {
	rec := doJSON(t, testServer().Routes(), http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
