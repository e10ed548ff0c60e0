package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"sgsalary/domain/core"
	"sgsalary/internal"
	"sgsalary/internal/analytics"
	"sgsalary/internal/errors"
	"sgsalary/internal/pipeline"
)

// App serves the dashboard API. All state is an immutable, cleaned
// posting collection shared read-only across requests; filters arrive in
// each request and never persist between calls.
type App struct {
	router    *chi.Mux
	engine    *analytics.Engine
	report    pipeline.Report
	datasetID core.DatasetID
	loadedAt  core.Timestamp
	facets    *Facets
	logger    *internal.Logger
}

// NewApp wires the dashboard over a cleaning result.
func NewApp(result *pipeline.Result, opts analytics.Options) (*App, error) {
	engine := analytics.NewEngine(result.Postings, opts)

	facets, err := ComputeFacets(engine)
	if err != nil {
		return nil, errors.Wrap(err, "facet precompute failed")
	}

	app := &App{
		router:    chi.NewRouter(),
		engine:    engine,
		report:    result.Report,
		datasetID: result.DatasetID,
		loadedAt:  result.LoadedAt,
		facets:    facets,
		logger:    internal.DefaultLogger,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)

	a.router.Get("/api/summary", a.handleSummary)
	a.router.Get("/api/aggregate", a.handleAggregate)
	a.router.Get("/api/correlation", a.handleCorrelation)
	a.router.Get("/api/outliers", a.handleOutliers)
	a.router.Get("/api/top-jobs", a.handleTopJobs)
	a.router.Get("/api/demand", a.handleDemand)
	a.router.Get("/api/demand-vs-compensation", a.handleDemandVsCompensation)
	a.router.Get("/api/experience-trend", a.handleExperienceTrend)
	a.router.Get("/api/filters", a.handleFilters)
	a.router.Get("/api/insights", a.handleInsights)
	a.router.Get("/api/data-quality", a.handleDataQuality)
}

// Router exposes the configured handler for the HTTP server.
func (a *App) Router() http.Handler {
	return a.router
}

// writeJSON writes a JSON response body.
func (a *App) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.logger.Error("failed to encode response: %v", err)
	}
}

// writeError maps an AppError onto an HTTP status and JSON body.
func (a *App) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput, errors.CodeValidationError:
		status = http.StatusBadRequest
	case errors.CodeInsufficientData:
		status = http.StatusUnprocessableEntity
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}
	a.writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
