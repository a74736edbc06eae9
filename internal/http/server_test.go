package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"despeses/internal/core"
	"despeses/internal/services"
	"despeses/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	svc := services.New(context.Background(), store.NewMemory(), nil)
	return NewServer(":0", svc)
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rr := doJSON(t, srv, http.MethodGet, path, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, rr.Code)
		}
	}
}

func TestAddEntryAndGetMonth(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/months/2024-05/variable",
		`{"name":"Cinema","amount":"9,50","category":"Oci"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("add status = %d: %s", rr.Code, rr.Body.String())
	}
	var entry core.ExpenseEntry
	if err := json.Unmarshal(rr.Body.Bytes(), &entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry.ID == "" || entry.Amount != 9.5 {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	rr = doJSON(t, srv, http.MethodGet, "/api/months/2024-05", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("get month status = %d", rr.Code)
	}
	var month core.MonthRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &month); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(month.Variable) != 1 || month.Variable[0].Name != "Cinema" {
		t.Fatalf("unexpected month: %+v", month)
	}
}

func TestAddEntryValidation(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodPost, "/api/months/2024-05/variable", `{"amount":"1"}`, http.StatusBadRequest}, // no name
		{http.MethodPost, "/api/months/bad/variable", `{"name":"x"}`, http.StatusBadRequest},        // bad month
		{http.MethodPost, "/api/months/2024-05/other", `{"name":"x"}`, http.StatusNotFound},         // bad kind
		{http.MethodPost, "/api/months/2024-05/variable", `{broken`, http.StatusBadRequest},         // bad json
	}
	for _, tc := range cases {
		rr := doJSON(t, srv, tc.method, tc.path, tc.body)
		if rr.Code != tc.want {
			t.Fatalf("%s %s status = %d, want %d", tc.method, tc.path, rr.Code, tc.want)
		}
	}
}

func TestUpdateAndDeleteEntry(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/months/2024-05/fixed",
		`{"name":"Lloguer","amount":"800","category":"Habitatge"}`)
	var entry core.ExpenseEntry
	json.Unmarshal(rr.Body.Bytes(), &entry)

	rr = doJSON(t, srv, http.MethodPut, "/api/months/2024-05/fixed/"+entry.ID, `{"amount":"850"}`)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("update status = %d", rr.Code)
	}

	rr = doJSON(t, srv, http.MethodGet, "/api/totals/month/2024-05", "")
	var sums map[string]any
	json.Unmarshal(rr.Body.Bytes(), &sums)
	if sums["fixed"].(float64) != 850 {
		t.Fatalf("sums = %v", sums)
	}

	rr = doJSON(t, srv, http.MethodDelete, "/api/months/2024-05/fixed/"+entry.ID, "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rr.Code)
	}

	// Unknown IDs stay silent no-ops.
	rr = doJSON(t, srv, http.MethodDelete, "/api/months/2024-05/fixed/ghost", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete unknown status = %d", rr.Code)
	}
}

func TestCategories(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/categories", `{"name":"Mascotes"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("add category status = %d", rr.Code)
	}
	rr = doJSON(t, srv, http.MethodDelete, "/api/categories/Oci", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete category status = %d", rr.Code)
	}

	rr = doJSON(t, srv, http.MethodGet, "/api/categories", "")
	var cats []string
	json.Unmarshal(rr.Body.Bytes(), &cats)
	joined := strings.Join(cats, ",")
	if !strings.Contains(joined, "Mascotes") || strings.Contains(joined, "Oci") {
		t.Fatalf("unexpected categories: %v", cats)
	}
}

func TestTemplateFlow(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/templates",
		`{"name":"Gimnàs","amount":"40","category":"Oci","effectiveMonth":"2024-01"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("add template status = %d: %s", rr.Code, rr.Body.String())
	}
	var tpl core.FixedTemplate
	json.Unmarshal(rr.Body.Bytes(), &tpl)
	if tpl.StartMonth != "2024-01" {
		t.Fatalf("unexpected template: %+v", tpl)
	}

	rr = doJSON(t, srv, http.MethodPut, "/api/templates/"+tpl.ID,
		`{"amount":"45","effectiveMonth":"2024-06"}`)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("update template status = %d", rr.Code)
	}

	rr = doJSON(t, srv, http.MethodDelete, "/api/templates/"+tpl.ID, "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete template status = %d", rr.Code)
	}
}

func TestExportImportCycle(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, srv, http.MethodPost, "/api/months/2024-05/variable",
		`{"name":"Cinema","amount":"9.5","category":"Oci"}`)

	rr := doJSON(t, srv, http.MethodGet, "/api/export.csv", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("export status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %s", ct)
	}
	csvText := rr.Body.String()
	if !strings.Contains(csvText, "Cinema") {
		t.Fatalf("export missing entry:\n%s", csvText)
	}

	rr = doJSON(t, srv, http.MethodPost, "/api/import", csvText)
	if rr.Code != http.StatusOK {
		t.Fatalf("import status = %d: %s", rr.Code, rr.Body.String())
	}

	// Importing garbage fails without touching the document.
	rr = doJSON(t, srv, http.MethodPost, "/api/import", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("empty import status = %d", rr.Code)
	}
	rr = doJSON(t, srv, http.MethodGet, "/api/export.csv", "")
	if !strings.Contains(rr.Body.String(), "Cinema") {
		t.Fatalf("document lost after failed import")
	}
}

func TestTotalsByYear(t *testing.T) {
	srv := newTestServer(t)
	rr := doJSON(t, srv, http.MethodGet, "/api/totals/year/2024", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var series []map[string]any
	json.Unmarshal(rr.Body.Bytes(), &series)
	if len(series) != 12 {
		t.Fatalf("expected 12 rows, got %d", len(series))
	}

	rr = doJSON(t, srv, http.MethodGet, "/api/totals/year/abc", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad year status = %d", rr.Code)
	}
}
