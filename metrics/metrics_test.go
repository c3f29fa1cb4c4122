package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	return rec.Body.String()
}

func TestCollectorsAreIndependent(t *testing.T) {
	a := NewCollector("f1history")
	b := NewCollector("f1history")

	a.RecordAPIRequest("/api/years", http.MethodGet, "200")

	want := `f1history_api_requests_total{method="GET",route="/api/years",status="200"} 1`
	if !strings.Contains(scrape(t, a), want) {
		t.Errorf("a is missing %q", want)
	}
	if strings.Contains(scrape(t, b), "f1history_api_requests_total{") {
		t.Error("b saw a's request")
	}
}

func TestCollectorOutput(t *testing.T) {
	c := NewCollector("f1history")
	c.SetTableRows(map[string]int{"races": 1125, "results": 26080})
	c.TimeAggregation("season").ObserveDuration()
	c.TimeLoad("csv").ObserveDuration()
	c.RecordLoadError("postgres")

	body := scrape(t, c)
	for _, want := range []string{
		`f1history_dataset_rows{table="results"} 26080`,
		`f1history_aggregation_duration_seconds_count{operation="season"} 1`,
		`f1history_dataset_load_duration_seconds_count{source="csv"} 1`,
		`f1history_dataset_load_errors_total{source="postgres"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
