package ui

import (
	"net/http"
	"strconv"

	"github.com/gomarkdown/markdown"

	"sgsalary/domain/market"
)

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		a.writeError(w, err)
		return
	}
	summary, err := a.engine.Summarize(filter)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, summary)
}

func (a *App) handleAggregate(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		a.writeError(w, err)
		return
	}

	dims := make([]market.GroupDim, 0, 3)
	for _, raw := range splitCSV(r.URL.Query().Get("group_by")) {
		dim, ok := market.ParseGroupDim(raw)
		if !ok {
			a.writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "unknown grouping dimension: " + raw,
			})
			return
		}
		dims = append(dims, dim)
	}

	views, err := a.engine.Aggregate(dims, filter)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"groups": views,
		"count":  len(views),
	})
}

func (a *App) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		a.writeError(w, err)
		return
	}
	result, err := a.engine.ExperienceSalaryCorrelation(filter)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, result)
}

func (a *App) handleOutliers(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, a.engine.DetectOutliersFiltered(filter))
}

func (a *App) handleTopJobs(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		a.writeError(w, err)
		return
	}
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			a.writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "limit must be a positive integer",
			})
			return
		}
		limit = n
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"jobs": a.engine.TopPayingJobs(filter, limit),
	})
}

func (a *App) handleDemand(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"by_category": a.engine.DemandByCategory(filter),
		"by_level":    a.engine.DemandByLevel(filter),
	})
}

func (a *App) handleDemandVsCompensation(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		a.writeError(w, err)
		return
	}
	entries, err := a.engine.DemandVsCompensation(filter)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{"categories": entries})
}

func (a *App) handleExperienceTrend(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		a.writeError(w, err)
		return
	}
	points, err := a.engine.ExperienceTrend(filter)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{"points": points})
}

func (a *App) handleFilters(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, a.facets)
}

// handleInsights renders the markdown narrative to HTML for embedding in
// the dashboard shell.
func (a *App) handleInsights(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		a.writeError(w, err)
		return
	}
	md := a.engine.InsightsMarkdown(filter)
	html := markdown.ToHTML([]byte(md), nil, nil)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(html); err != nil {
		a.logger.Error("failed to write insights response: %v", err)
	}
}

// handleDataQuality reports what cleaning dropped, as a diagnostic note.
func (a *App) handleDataQuality(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"dataset_id": a.datasetID.String(),
		"loaded_at":  a.loadedAt,
		"report":     a.report,
	})
}
