package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/cloud-ru/mcp-espp-go/internal/config"
	"github.com/cloud-ru/mcp-espp-go/internal/report"
	"github.com/cloud-ru/mcp-espp-go/internal/tools"
)

const qualifyingBody = `{
	"offering_date": "2021-01-01",
	"purchase_date": "2021-07-01",
	"sale_date": "2023-08-01",
	"purchase_price": 8.5,
	"fair_market_value_at_offering": 10,
	"fair_market_value_at_purchase": 15,
	"sale_price": 20,
	"shares_sold": 100
}`

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg, _ := config.LoadConfig()
	toolset := tools.NewToolset(cfg, noop.NewTracerProvider().Tracer("test"), report.NewGenerator())
	return NewRouter(cfg, toolset)
}

func TestHealth(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var response HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if response.Status != "healthy" || response.Tools != 4 {
		t.Errorf("unexpected health response %+v", response)
	}
}

func TestListTools(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/tools/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var list []tools.Tool
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(list) != 4 || list[0].Name != tools.ToolCalculate {
		t.Errorf("unexpected tool list %+v", list)
	}
}

func TestCallTool(t *testing.T) {
	router := setupRouter(t)

	t.Run("calculates a qualifying sale", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/tools/espp_calculate", strings.NewReader(qualifyingBody))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var result map[string]interface{}
		if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if result["is_qualifying_disposition"] != true {
			t.Errorf("expected qualifying disposition, got %v", result["is_qualifying_disposition"])
		}
		if result["capital_gain_type"] != "long-term" {
			t.Errorf("expected long-term, got %v", result["capital_gain_type"])
		}
	})

	t.Run("returns per-field validation errors", func(t *testing.T) {
		body := `{"offering_date": "2021-01-01", "purchase_date": "2021-07-01", "shares_sold": 0}`
		req := httptest.NewRequest(http.MethodPost, "/tools/espp_calculate", strings.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
		var response struct {
			Error   string            `json:"error"`
			Details map[string]string `json:"details"`
		}
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if response.Error != "validation failed" {
			t.Errorf("unexpected error %q", response.Error)
		}
		for _, field := range []string{"sale_date", "sale_price", "shares_sold", "purchase_price"} {
			if _, ok := response.Details[field]; !ok {
				t.Errorf("expected details for %s, got %v", field, response.Details)
			}
		}
	})

	t.Run("rejects malformed params", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/tools/espp_calculate", strings.NewReader(`{"sale_date": 20230801}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/tools/espp_calculate", strings.NewReader(`{"sale_date":`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("unknown tool", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/tools/loan_schedule_annuity", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("import without match is not an error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/tools/form3922_import", strings.NewReader(`{"text": "hello"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), `"matched":false`) {
			t.Errorf("unexpected body %s", w.Body.String())
		}
	})
}

func TestMetricsEndpoint(t *testing.T) {
	router := setupRouter(t)

	call := httptest.NewRequest(http.MethodPost, "/tools/espp_calculate", strings.NewReader(qualifyingBody))
	router.ServeHTTP(httptest.NewRecorder(), call)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "espp_dispositions_total") {
		t.Error("expected espp_dispositions_total in metrics output")
	}
}
