package export

import (
	"fmt"

	"sgsalary/domain/core"
	"sgsalary/domain/market"
	"sgsalary/internal/analytics"
	"sgsalary/internal/errors"

	"github.com/xuri/excelize/v2"
)

// ReportWriter renders benchmark tables into an Excel workbook, one sheet
// per table, for sharing outside the dashboard.
type ReportWriter struct {
	engine *analytics.Engine
}

// NewReportWriter creates a writer over an analytics engine.
func NewReportWriter(engine *analytics.Engine) *ReportWriter {
	return &ReportWriter{engine: engine}
}

// Write builds the workbook for the filtered slice and saves it to path.
// Returns the report ID stamped into the summary sheet.
func (w *ReportWriter) Write(path string, filter *market.Filter) (core.ReportID, error) {
	reportID := core.ReportID(core.NewID())

	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeSummarySheet(f, filter, reportID); err != nil {
		return "", err
	}
	if err := w.writeAggregateSheet(f, "By Category", []market.GroupDim{market.GroupByCategory}, filter); err != nil {
		return "", err
	}
	if err := w.writeAggregateSheet(f, "By Position Level", []market.GroupDim{market.GroupByLevel}, filter); err != nil {
		return "", err
	}
	if err := w.writeAggregateSheet(f, "By Experience", []market.GroupDim{market.GroupByBracket}, filter); err != nil {
		return "", err
	}
	if err := w.writeOutlierSheet(f, filter); err != nil {
		return "", err
	}

	// Drop the default sheet excelize creates.
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		return "", errors.Wrapf(err, "failed to save report to %s", path)
	}
	return reportID, nil
}

func (w *ReportWriter) writeSummarySheet(f *excelize.File, filter *market.Filter, reportID core.ReportID) error {
	summary, err := w.engine.Summarize(filter)
	if err != nil {
		return errors.Wrap(err, "summary computation failed")
	}

	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.Wrap(err, "failed to create summary sheet")
	}

	rows := [][]interface{}{
		{"Report ID", reportID.String()},
		{"Generated At", core.Now().Time().Format("2006-01-02 15:04:05")},
		{"Total Postings", summary.TotalPostings},
		{"Postings With Salary", summary.SalariedPostings},
		{"Median Salary", summary.MedianSalary},
		{"Mean Salary", summary.MeanSalary},
		{"25th Percentile", summary.P25Salary},
		{"75th Percentile", summary.P75Salary},
		{"Mean Range Width", summary.MeanRangeWidth},
		{"Median Range Width", summary.MedianRangeWidth},
	}
	if corr, err := w.engine.ExperienceSalaryCorrelation(filter); err == nil {
		rows = append(rows,
			[]interface{}{"Experience-Salary Correlation", corr.Coefficient},
			[]interface{}{"Correlation Strength", corr.Strength},
		)
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrap(err, "failed to write summary row")
		}
	}
	return nil
}

func (w *ReportWriter) writeAggregateSheet(f *excelize.File, sheet string, dims []market.GroupDim, filter *market.Filter) error {
	views, err := w.engine.Aggregate(dims, filter)
	if err != nil {
		return errors.Wrapf(err, "aggregate for sheet %s failed", sheet)
	}

	if _, err := f.NewSheet(sheet); err != nil {
		return errors.Wrapf(err, "failed to create sheet %s", sheet)
	}

	header := []interface{}{"Group", "Median", "Mean", "Std Dev", "P25", "P75", "Count", "Low Confidence"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.Wrap(err, "failed to write header row")
	}

	for i, v := range views {
		row := []interface{}{
			groupLabel(v), v.Median, v.Mean, v.StdDev, v.P25, v.P75, v.Count, v.LowConfidence,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrap(err, "failed to write aggregate row")
		}
	}
	return nil
}

func (w *ReportWriter) writeOutlierSheet(f *excelize.File, filter *market.Filter) error {
	report := w.engine.DetectOutliersFiltered(filter)

	const sheet = "Outliers"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.Wrap(err, "failed to create outlier sheet")
	}

	header := []interface{}{"Title", "Category", "Position Level", "Midpoint Salary", "Company"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.Wrap(err, "failed to write header row")
	}
	for i, p := range report.Outliers {
		row := []interface{}{p.Title, p.Category, string(p.Level), p.SalaryMidpoint, p.Company}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrap(err, "failed to write outlier row")
		}
	}
	return nil
}

// groupLabel joins whichever key fields the grouping populated.
func groupLabel(v market.AggregateView) string {
	parts := make([]string, 0, 3)
	if v.Category != "" {
		parts = append(parts, v.Category)
	}
	if v.Level != "" {
		parts = append(parts, string(v.Level))
	}
	if v.Bracket != "" {
		parts = append(parts, string(v.Bracket))
	}
	if len(parts) == 0 {
		return "All Postings"
	}
	label := parts[0]
	for _, p := range parts[1:] {
		label += " / " + p
	}
	return label
}
