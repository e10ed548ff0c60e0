package analytics

import (
	"sort"

	"sgsalary/domain/market"
)

// OutlierReport flags postings whose midpoint salary falls outside the
// interquartile fences. Detection is advisory: the flagged postings are a
// subset of the input and nothing is removed from the primary collection.
type OutlierReport struct {
	LowerFence float64             `json:"lower_fence"`
	UpperFence float64             `json:"upper_fence"`
	Q1         float64             `json:"q1"`
	Q3         float64             `json:"q3"`
	Outliers   []market.JobPosting `json:"outliers"`
}

// DetectOutliers applies the IQR rule (below Q1 - 1.5*IQR or above
// Q3 + 1.5*IQR) over the midpoint salaries of the given postings. The
// caller chooses whether to pass the full cleaned collection or a
// filtered subset. Fewer than four salaried postings produce an empty
// report: the fences are not meaningful on such samples.
func DetectOutliers(postings []market.JobPosting) *OutlierReport {
	midpoints := make([]float64, 0, len(postings))
	for _, p := range postings {
		if p.HasSalary {
			midpoints = append(midpoints, p.SalaryMidpoint)
		}
	}

	report := &OutlierReport{Outliers: []market.JobPosting{}}
	if len(midpoints) < 4 {
		return report
	}

	sort.Float64s(midpoints)
	q1 := quantile(midpoints, 0.25)
	q3 := quantile(midpoints, 0.75)
	iqr := q3 - q1

	report.Q1 = q1
	report.Q3 = q3
	report.LowerFence = q1 - 1.5*iqr
	report.UpperFence = q3 + 1.5*iqr

	for _, p := range postings {
		if !p.HasSalary {
			continue
		}
		if p.SalaryMidpoint < report.LowerFence || p.SalaryMidpoint > report.UpperFence {
			report.Outliers = append(report.Outliers, p)
		}
	}

	return report
}

// DetectOutliersFiltered runs outlier detection over the engine's
// filtered postings.
func (e *Engine) DetectOutliersFiltered(filter *market.Filter) *OutlierReport {
	return DetectOutliers(e.filtered(filter))
}
