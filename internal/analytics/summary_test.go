package analytics

import (
	"strings"
	"testing"

	"sgsalary/domain/market"
)

func TestSummarizeMatchesIndependentComputation(t *testing.T) {
	postings := []market.JobPosting{
		salaried("IT", market.LevelExecutive, 2, 3000),
		salaried("IT", market.LevelExecutive, 3, 4500),
		salaried("IT", market.LevelExecutive, 4, 4500),
		salaried("IT", market.LevelExecutive, 5, 6000),
		salaried("IT", market.LevelExecutive, 6, 9000),
		unsalaried("IT"),
	}
	engine := NewEngine(postings, DefaultOptions())

	summary, err := engine.Summarize(nil)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if summary.TotalPostings != 6 {
		t.Errorf("total = %d, want 6", summary.TotalPostings)
	}
	if summary.SalariedPostings != 5 {
		t.Errorf("salaried = %d, want 5", summary.SalariedPostings)
	}
	if summary.MedianSalary != 4500 {
		t.Errorf("median = %v, want 4500", summary.MedianSalary)
	}
	if summary.MeanSalary != 5400 {
		t.Errorf("mean = %v, want 5400", summary.MeanSalary)
	}

	// The trivial single-group aggregate reproduces the same numbers.
	views, err := engine.Aggregate(nil, nil)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if views[0].Median != summary.MedianSalary || views[0].Mean != summary.MeanSalary {
		t.Error("trivial aggregate and summary disagree on the overall distribution")
	}
}

func TestSummarizeEmptySlice(t *testing.T) {
	engine := NewEngine(nil, DefaultOptions())

	summary, err := engine.Summarize(&market.Filter{Categories: []string{"Maritime"}})
	if err != nil {
		t.Fatalf("empty slice must not error: %v", err)
	}
	if summary.TotalPostings != 0 || summary.MedianSalary != 0 {
		t.Errorf("empty slice should produce a zero summary, got %+v", summary)
	}
}

func TestTopPayingJobs(t *testing.T) {
	postings := []market.JobPosting{
		salaried("IT", market.LevelExecutive, 2, 4000),
		salaried("Finance", market.LevelManager, 10, 12000),
		salaried("Admin", market.LevelExecutive, 1, 2500),
		unsalaried("IT"),
	}
	engine := NewEngine(postings, DefaultOptions())

	top := engine.TopPayingJobs(nil, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(top))
	}
	if top[0].SalaryMidpoint != 12000 || top[1].SalaryMidpoint != 4000 {
		t.Errorf("wrong ordering: %v then %v", top[0].SalaryMidpoint, top[1].SalaryMidpoint)
	}
}

func TestDemandCountsIncludeUnsalaried(t *testing.T) {
	postings := []market.JobPosting{
		salaried("IT", market.LevelExecutive, 2, 4000),
		unsalaried("IT"),
		unsalaried("IT"),
		salaried("Admin", market.LevelExecutive, 1, 2500),
	}
	engine := NewEngine(postings, DefaultOptions())

	demand := engine.DemandByCategory(nil)
	if len(demand) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(demand))
	}
	if demand[0].Key != "IT" || demand[0].Count != 3 {
		t.Errorf("IT demand should count unsalaried postings, got %+v", demand[0])
	}
}

func TestDemandVsCompensationThreshold(t *testing.T) {
	var postings []market.JobPosting
	for i := 0; i < 12; i++ {
		postings = append(postings, salaried("IT", market.LevelExecutive, 3, 5000+float64(i)*100))
	}
	for i := 0; i < 3; i++ {
		postings = append(postings, salaried("Niche", market.LevelExecutive, 3, 9000))
	}
	engine := NewEngine(postings, DefaultOptions())

	entries, err := engine.DemandVsCompensation(nil)
	if err != nil {
		t.Fatalf("DemandVsCompensation failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("categories below the demand threshold should be omitted, got %d entries", len(entries))
	}
	if entries[0].Category != "IT" || entries[0].Count != 12 {
		t.Errorf("unexpected entry %+v", entries[0])
	}
}

func TestExperienceTrendCapsAtTwenty(t *testing.T) {
	postings := []market.JobPosting{
		salaried("IT", market.LevelExecutive, 1, 3500),
		salaried("IT", market.LevelExecutive, 1, 4500),
		salaried("IT", market.LevelManager, 10, 8000),
		salaried("IT", market.LevelSeniorMgmt, 25, 20000), // beyond the cap
	}
	engine := NewEngine(postings, DefaultOptions())

	points, err := engine.ExperienceTrend(nil)
	if err != nil {
		t.Fatalf("ExperienceTrend failed: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 trend points, got %d", len(points))
	}
	if points[0].Years != 1 || points[0].Count != 2 || points[0].Mean != 4000 {
		t.Errorf("unexpected first point %+v", points[0])
	}
	if points[1].Years != 10 {
		t.Errorf("points should ascend by years, got %+v", points[1])
	}
}

func TestInsightsMarkdown(t *testing.T) {
	var postings []market.JobPosting
	for years := 0; years <= 10; years++ {
		for i := 0; i < 2; i++ {
			postings = append(postings, salaried("Information Technology", market.LevelExecutive, float64(years), 3000+float64(years)*400))
		}
	}
	engine := NewEngine(postings, DefaultOptions())

	md := engine.InsightsMarkdown(nil)
	if !strings.Contains(md, "Market Insights") {
		t.Error("insights should carry the headline section")
	}
	if !strings.Contains(md, "Experience Premium") {
		t.Error("insights should narrate the experience premium")
	}

	empty := engine.InsightsMarkdown(&market.Filter{Categories: []string{"Maritime"}})
	if !strings.Contains(empty, "Not enough data") {
		t.Error("empty selection should produce the not-enough-data narrative")
	}
}
