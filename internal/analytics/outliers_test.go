package analytics

import (
	"testing"

	"sgsalary/domain/market"
)

func TestDetectOutliersFlagsExtremes(t *testing.T) {
	postings := []market.JobPosting{
		salaried("IT", market.LevelExecutive, 2, 4000),
		salaried("IT", market.LevelExecutive, 3, 4200),
		salaried("IT", market.LevelExecutive, 4, 4400),
		salaried("IT", market.LevelExecutive, 5, 4600),
		salaried("IT", market.LevelExecutive, 6, 4800),
		salaried("IT", market.LevelExecutive, 7, 5000),
		salaried("IT", market.LevelManager, 20, 30000), // far above the cluster
	}

	report := DetectOutliers(postings)
	if len(report.Outliers) != 1 {
		t.Fatalf("expected 1 outlier, got %d", len(report.Outliers))
	}
	if report.Outliers[0].SalaryMidpoint != 30000 {
		t.Errorf("wrong posting flagged: midpoint %v", report.Outliers[0].SalaryMidpoint)
	}
	if report.LowerFence >= report.UpperFence {
		t.Errorf("fences inverted: [%v, %v]", report.LowerFence, report.UpperFence)
	}
}

func TestDetectOutliersIsAdvisorySubset(t *testing.T) {
	postings := []market.JobPosting{
		salaried("IT", market.LevelExecutive, 2, 4000),
		salaried("IT", market.LevelExecutive, 3, 4100),
		salaried("IT", market.LevelExecutive, 4, 4200),
		salaried("IT", market.LevelExecutive, 5, 4300),
		salaried("IT", market.LevelManager, 25, 45000),
	}
	original := append([]market.JobPosting(nil), postings...)

	report := DetectOutliers(postings)

	// The input collection is untouched.
	if len(postings) != len(original) {
		t.Fatal("outlier detection must not remove postings")
	}
	for i := range postings {
		if postings[i] != original[i] {
			t.Fatalf("posting %d mutated by outlier detection", i)
		}
	}

	// Every flagged posting is a member of the input.
	for _, o := range report.Outliers {
		found := false
		for _, p := range postings {
			if p == o {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("flagged posting %q is not in the input", o.Title)
		}
	}
}

func TestDetectOutliersUniformSample(t *testing.T) {
	var postings []market.JobPosting
	for i := 0; i < 20; i++ {
		postings = append(postings, salaried("IT", market.LevelExecutive, 3, 5000))
	}

	report := DetectOutliers(postings)
	if len(report.Outliers) != 0 {
		t.Errorf("uniform sample should have no outliers, got %d", len(report.Outliers))
	}
}

func TestDetectOutliersSmallSample(t *testing.T) {
	postings := []market.JobPosting{
		salaried("IT", market.LevelExecutive, 2, 4000),
		salaried("IT", market.LevelExecutive, 20, 30000),
	}

	report := DetectOutliers(postings)
	if len(report.Outliers) != 0 {
		t.Errorf("samples under four postings should produce an empty report, got %d", len(report.Outliers))
	}
}
