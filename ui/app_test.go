package ui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgsalary/domain/core"
	"sgsalary/domain/market"
	"sgsalary/internal/analytics"
	"sgsalary/internal/pipeline"
)

func testApp(t *testing.T) *App {
	t.Helper()

	postings := []market.JobPosting{}
	for i := 0; i < 10; i++ {
		postings = append(postings, market.JobPosting{
			Title:           fmt.Sprintf("Engineer %d", i),
			Category:        "Information Technology",
			Level:           market.LevelExecutive,
			HasSalary:       true,
			SalaryMin:       4000 + float64(i)*200,
			SalaryMax:       6000 + float64(i)*200,
			SalaryMidpoint:  5000 + float64(i)*200,
			SalaryRange:     2000,
			ExperienceYears: float64(i),
			Bracket:         market.BracketForYears(float64(i)),
		})
	}
	for i := 0; i < 6; i++ {
		postings = append(postings, market.JobPosting{
			Title:           fmt.Sprintf("Clerk %d", i),
			Category:        "Admin",
			Level:           market.LevelNotSpecified,
			HasSalary:       true,
			SalaryMin:       2000,
			SalaryMax:       3000,
			SalaryMidpoint:  2500,
			SalaryRange:     1000,
			ExperienceYears: 1,
			Bracket:         market.BracketEntry,
		})
	}

	result := &pipeline.Result{
		DatasetID: core.DatasetID(core.NewID()),
		LoadedAt:  core.Now(),
		Postings:  postings,
		Report:    pipeline.Report{RowsIn: 20, RowsKept: 16, DroppedCoercion: 4},
	}

	app, err := NewApp(result, analytics.DefaultOptions())
	require.NoError(t, err)
	return app
}

func getJSON(t *testing.T, app *App, path string, target interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)
	if target != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), target))
	}
	return rec
}

func TestHealthz(t *testing.T) {
	app := testApp(t)
	rec := getJSON(t, app, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSummaryEndpoint(t *testing.T) {
	app := testApp(t)

	var summary analytics.Summary
	rec := getJSON(t, app, "/api/summary", &summary)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 16, summary.TotalPostings)
	assert.Equal(t, 16, summary.SalariedPostings)

	// Filtering narrows the slice without touching shared state.
	var filtered analytics.Summary
	rec = getJSON(t, app, "/api/summary?categories=Admin", &filtered)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 6, filtered.TotalPostings)
	assert.Equal(t, 2500.0, filtered.MedianSalary)

	var again analytics.Summary
	getJSON(t, app, "/api/summary", &again)
	assert.Equal(t, summary, again, "a filtered request must not leak into later requests")
}

func TestAggregateEndpoint(t *testing.T) {
	app := testApp(t)

	var payload struct {
		Groups []market.AggregateView `json:"groups"`
		Count  int                    `json:"count"`
	}
	rec := getJSON(t, app, "/api/aggregate?group_by=category", &payload)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 2, payload.Count)
	assert.Equal(t, "Admin", payload.Groups[0].Category)
	assert.Equal(t, "Information Technology", payload.Groups[1].Category)
	assert.Greater(t, payload.Groups[1].Median, payload.Groups[0].Median)
}

func TestAggregateEndpointRejectsUnknownDimension(t *testing.T) {
	app := testApp(t)
	rec := getJSON(t, app, "/api/aggregate?group_by=salary", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCorrelationEndpointInsufficientData(t *testing.T) {
	app := testApp(t)

	// Admin postings all share one experience level: zero variance.
	rec := getJSON(t, app, "/api/correlation?categories=Admin", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCorrelationEndpoint(t *testing.T) {
	app := testApp(t)

	var result analytics.ExperienceSalaryResult
	rec := getJSON(t, app, "/api/correlation?categories=Information+Technology", &result)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 1.0, result.Coefficient, 1e-9)
}

func TestFiltersEndpoint(t *testing.T) {
	app := testApp(t)

	var facets Facets
	rec := getJSON(t, app, "/api/filters", &facets)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Admin", "Information Technology"}, facets.Categories)
	assert.Equal(t, 2500.0, facets.MinSalary)
	assert.Len(t, facets.Brackets, 5)
}

func TestBadFilterParameter(t *testing.T) {
	app := testApp(t)
	rec := getJSON(t, app, "/api/summary?min_salary=plenty", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDataQualityEndpoint(t *testing.T) {
	app := testApp(t)

	var payload struct {
		DatasetID string          `json:"dataset_id"`
		Report    pipeline.Report `json:"report"`
	}
	rec := getJSON(t, app, "/api/data-quality", &payload)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, payload.DatasetID)
	assert.Equal(t, 4, payload.Report.DroppedCoercion)
}
