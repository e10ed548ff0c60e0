package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sgsalary/domain/market"
	"sgsalary/internal/analytics"
)

func TestWriteWorkbook(t *testing.T) {
	postings := []market.JobPosting{}
	for i := 0; i < 6; i++ {
		postings = append(postings, market.JobPosting{
			Title:           "Engineer",
			Category:        "Information Technology",
			Level:           market.LevelExecutive,
			HasSalary:       true,
			SalaryMin:       4000 + float64(i)*100,
			SalaryMax:       6000 + float64(i)*100,
			SalaryMidpoint:  5000 + float64(i)*100,
			SalaryRange:     2000,
			ExperienceYears: float64(i),
			Bracket:         market.BracketForYears(float64(i)),
		})
	}
	engine := analytics.NewEngine(postings, analytics.DefaultOptions())

	path := filepath.Join(t.TempDir(), "report.xlsx")
	reportID, err := NewReportWriter(engine).Write(path, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, reportID.String())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	for _, want := range []string{"Summary", "By Category", "By Position Level", "By Experience", "Outliers"} {
		assert.Contains(t, sheets, want)
	}
	assert.NotContains(t, sheets, "Sheet1")

	label, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Report ID", label)

	header, err := f.GetCellValue("By Category", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Group", header)
}

func TestGroupLabel(t *testing.T) {
	assert.Equal(t, "All Postings", groupLabel(market.AggregateView{}))
	assert.Equal(t, "Admin", groupLabel(market.AggregateView{Category: "Admin"}))
	assert.Equal(t, "Admin / Manager",
		groupLabel(market.AggregateView{Category: "Admin", Level: market.LevelManager}))
}
