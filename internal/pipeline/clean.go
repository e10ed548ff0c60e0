package pipeline

import (
	"encoding/json"
	"strings"

	"sgsalary/adapters/tabular"
	"sgsalary/domain/core"
	"sgsalary/domain/market"
	"sgsalary/internal/errors"
)

// Source column names as written by the MyCareersFuture export.
const (
	colTitle        = "title"
	colCategories   = "categories"
	colLevel        = "positionLevels"
	colSalaryMin    = "salary_minimum"
	colSalaryMax    = "salary_maximum"
	colExperience   = "minimumYearsExperience"
	colSalaryType   = "salary_type"
	colCompany      = "postedCompany_name"
	colViews        = "metadata_totalNumberOfView"
	colApplications = "metadata_totalNumberJobApplication"
)

// requiredColumns must all be present before cleaning starts.
var requiredColumns = []string{colTitle, colCategories, colSalaryMin, colSalaryMax}

// Options holds the cleaning thresholds.
type Options struct {
	// SalaryBandMin/Max is the plausible monthly salary band. Postings
	// carrying bounds fully outside it are dropped as unit errors
	// (annual figures in a monthly column, placeholder zeros).
	SalaryBandMin float64
	SalaryBandMax float64
}

// DefaultOptions mirrors the published monthly band for this dataset.
func DefaultOptions() Options {
	return Options{SalaryBandMin: 1000, SalaryBandMax: 50000}
}

// Report counts what cleaning kept and dropped, per reason. Row drops are
// data-quality notes, never errors; partial data is expected.
type Report struct {
	RowsIn                int `json:"rows_in"`
	RowsKept              int `json:"rows_kept"`
	DroppedCoercion       int `json:"dropped_coercion"`
	DroppedInvertedBounds int `json:"dropped_inverted_bounds"`
	DroppedOutOfBand      int `json:"dropped_out_of_band"`
	DroppedNonMonthly     int `json:"dropped_non_monthly"`

	// MissingSalary counts kept postings without usable salary bounds.
	// They participate in demand counts only.
	MissingSalary int `json:"missing_salary"`
}

// Dropped returns the total number of rows cleaning removed.
func (r Report) Dropped() int {
	return r.DroppedCoercion + r.DroppedInvertedBounds + r.DroppedOutOfBand + r.DroppedNonMonthly
}

// Result is the output of a cleaning pass: the immutable posting
// collection both consumers share, plus the data-quality report.
// DatasetID and LoadedAt identify the pass for report stamping.
type Result struct {
	DatasetID core.DatasetID
	LoadedAt  core.Timestamp
	Postings  []market.JobPosting
	Report    Report
}

// Clean transforms raw rows into the analyzable posting collection.
// Identical tables and options always produce identical postings and
// report counters; only the pass identity (id, timestamp) varies.
//
// Policy decisions, in order of application per row:
//   - non-Monthly salary types are dropped when the column exists;
//   - unreadable category sub-documents fall back to "Unknown";
//   - missing position level becomes "Not Specified";
//   - missing experience becomes 0 years, unparseable experience drops the row;
//   - a row missing either salary bound is kept without salary;
//   - inverted bounds (min > max) are rejected, not corrected;
//   - bounds outside the plausibility band are dropped.
func Clean(table *tabular.Table, opts Options) (*Result, error) {
	var missing []string
	for _, col := range requiredColumns {
		if !table.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.ValidationError("missing required columns: " + strings.Join(missing, ", "))
	}

	hasSalaryType := table.HasColumn(colSalaryType)

	result := &Result{
		DatasetID: core.DatasetID(core.NewID()),
		LoadedAt:  core.Now(),
		Postings:  make([]market.JobPosting, 0, len(table.Rows)),
	}
	result.Report.RowsIn = len(table.Rows)

	for _, row := range table.Rows {
		if hasSalaryType {
			st := strings.TrimSpace(row[colSalaryType])
			if st != "" && !strings.EqualFold(st, string(market.SalaryMonthly)) {
				result.Report.DroppedNonMonthly++
				continue
			}
		}

		posting := market.JobPosting{
			Title:    strings.TrimSpace(row[colTitle]),
			Category: PrimaryCategory(row[colCategories]),
			Level:    market.NormalizeLevel(row[colLevel]),
			Company:  strings.TrimSpace(row[colCompany]),
		}

		years, ok := parseExperience(row[colExperience])
		if !ok {
			result.Report.DroppedCoercion++
			continue
		}
		posting.ExperienceYears = years
		posting.Bracket = market.BracketForYears(years)

		minRaw := row[colSalaryMin]
		maxRaw := row[colSalaryMax]
		switch {
		case minRaw == "" || maxRaw == "":
			// Kept without salary: demand aggregates still count it.
			result.Report.MissingSalary++
		default:
			smin, okMin := parseNumeric(minRaw)
			smax, okMax := parseNumeric(maxRaw)
			if !okMin || !okMax || smin < 0 || smax < 0 {
				result.Report.DroppedCoercion++
				continue
			}
			if smin > smax {
				result.Report.DroppedInvertedBounds++
				continue
			}
			if smin < opts.SalaryBandMin || smax > opts.SalaryBandMax {
				result.Report.DroppedOutOfBand++
				continue
			}
			posting.HasSalary = true
			posting.SalaryMin = smin
			posting.SalaryMax = smax
			posting.SalaryMidpoint = (smin + smax) / 2
			posting.SalaryRange = smax - smin
		}

		posting.Views = parseCount(row[colViews])
		posting.Applications = parseCount(row[colApplications])

		result.Postings = append(result.Postings, posting)
	}

	result.Report.RowsKept = len(result.Postings)
	return result, nil
}

// parseExperience coerces the years-of-experience cell. Empty cells mean
// zero years (the export leaves the field blank for unspecified roles).
func parseExperience(raw string) (float64, bool) {
	if strings.TrimSpace(raw) == "" {
		return 0, true
	}
	years, ok := parseNumeric(raw)
	if !ok || years < 0 {
		return 0, false
	}
	return years, true
}

// categoryEntry is the shape of one element of the categories sub-document.
type categoryEntry struct {
	Category string `json:"category"`
}

// PrimaryCategory decodes the categories column, a JSON array of
// sub-documents, and returns the first entry's category label. A one-time
// stateless parse: any unreadable or empty value maps to "Unknown".
func PrimaryCategory(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return market.CategoryUnknown
	}
	var entries []categoryEntry
	if err := json.Unmarshal([]byte(trimmed), &entries); err != nil {
		return market.CategoryUnknown
	}
	if len(entries) == 0 || strings.TrimSpace(entries[0].Category) == "" {
		return market.CategoryUnknown
	}
	return strings.TrimSpace(entries[0].Category)
}
