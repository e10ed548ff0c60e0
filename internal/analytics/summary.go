package analytics

import (
	"sort"

	"sgsalary/domain/market"
)

// Summary is the headline view of a (possibly filtered) market slice.
type Summary struct {
	TotalPostings    int     `json:"total_postings"`
	SalariedPostings int     `json:"salaried_postings"`
	MedianSalary     float64 `json:"median_salary"`
	MeanSalary       float64 `json:"mean_salary"`
	P25Salary        float64 `json:"p25_salary"`
	P75Salary        float64 `json:"p75_salary"`
	MeanRangeWidth   float64 `json:"mean_range_width"`
	MedianRangeWidth float64 `json:"median_range_width"`
}

// Summarize computes the headline statistics over the filtered postings.
// A slice without salaried postings reports counts with zeroed statistics
// rather than failing: the dashboard shows an empty state.
func (e *Engine) Summarize(filter *market.Filter) (*Summary, error) {
	subset := e.filtered(filter)

	summary := &Summary{TotalPostings: len(subset)}

	var midpoints, widths []float64
	for _, p := range subset {
		if p.HasSalary {
			midpoints = append(midpoints, p.SalaryMidpoint)
			widths = append(widths, p.SalaryRange)
		}
	}
	summary.SalariedPostings = len(midpoints)
	if len(midpoints) == 0 {
		return summary, nil
	}

	salaryDesc, err := describe(midpoints)
	if err != nil {
		return nil, err
	}
	widthDesc, err := describe(widths)
	if err != nil {
		return nil, err
	}

	summary.MedianSalary = salaryDesc.median
	summary.MeanSalary = salaryDesc.mean
	summary.P25Salary = salaryDesc.p25
	summary.P75Salary = salaryDesc.p75
	summary.MeanRangeWidth = widthDesc.mean
	summary.MedianRangeWidth = widthDesc.median
	return summary, nil
}

// TopPayingJobs returns the n filtered postings with the highest midpoint
// salary, ties broken by title for deterministic output.
func (e *Engine) TopPayingJobs(filter *market.Filter, n int) []market.JobPosting {
	subset := make([]market.JobPosting, 0)
	for _, p := range e.filtered(filter) {
		if p.HasSalary {
			subset = append(subset, p)
		}
	}
	sort.SliceStable(subset, func(i, j int) bool {
		if subset[i].SalaryMidpoint != subset[j].SalaryMidpoint {
			return subset[i].SalaryMidpoint > subset[j].SalaryMidpoint
		}
		return subset[i].Title < subset[j].Title
	})
	if n < len(subset) {
		subset = subset[:n]
	}
	return subset
}

// DemandEntry is a posting count for one categorical value. Demand counts
// include postings without salary bounds.
type DemandEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// DemandByCategory counts filtered postings per primary category, most
// demanded first.
func (e *Engine) DemandByCategory(filter *market.Filter) []DemandEntry {
	counts := make(map[string]int)
	for _, p := range e.filtered(filter) {
		counts[p.Category]++
	}
	return sortDemand(counts)
}

// DemandByLevel counts filtered postings per position level.
func (e *Engine) DemandByLevel(filter *market.Filter) []DemandEntry {
	counts := make(map[string]int)
	for _, p := range e.filtered(filter) {
		counts[string(p.Level)]++
	}
	return sortDemand(counts)
}

func sortDemand(counts map[string]int) []DemandEntry {
	entries := make([]DemandEntry, 0, len(counts))
	for key, count := range counts {
		entries = append(entries, DemandEntry{Key: key, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// DemandCompEntry pairs a category's posting volume with its median
// midpoint salary.
type DemandCompEntry struct {
	Category     string  `json:"category"`
	Count        int     `json:"count"`
	MedianSalary float64 `json:"median_salary"`
}

// DemandVsCompensation relates market demand to pay per category over the
// filtered postings. Categories below the demand threshold are omitted;
// the remainder is capped to the 20 highest-volume categories.
func (e *Engine) DemandVsCompensation(filter *market.Filter) ([]DemandCompEntry, error) {
	counts := make(map[string]int)
	midpoints := make(map[string][]float64)
	for _, p := range e.filtered(filter) {
		counts[p.Category]++
		if p.HasSalary {
			midpoints[p.Category] = append(midpoints[p.Category], p.SalaryMidpoint)
		}
	}

	entries := make([]DemandCompEntry, 0, len(counts))
	for category, count := range counts {
		if count < e.opts.DemandMinCount {
			continue
		}
		mids := midpoints[category]
		if len(mids) == 0 {
			continue
		}
		desc, err := describe(mids)
		if err != nil {
			return nil, err
		}
		entries = append(entries, DemandCompEntry{
			Category:     category,
			Count:        count,
			MedianSalary: desc.median,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Category < entries[j].Category
	})
	if len(entries) > 20 {
		entries = entries[:20]
	}
	return entries, nil
}

// TrendPoint is the salary distribution at one exact experience level.
type TrendPoint struct {
	Years  float64 `json:"years"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Count  int     `json:"count"`
}

// ExperienceTrend buckets salaried postings by exact years of experience,
// capped at 20 years where the data thins out, ascending by years.
func (e *Engine) ExperienceTrend(filter *market.Filter) ([]TrendPoint, error) {
	grouped := make(map[float64][]float64)
	for _, p := range e.filtered(filter) {
		if !p.HasSalary || p.ExperienceYears > 20 {
			continue
		}
		grouped[p.ExperienceYears] = append(grouped[p.ExperienceYears], p.SalaryMidpoint)
	}

	points := make([]TrendPoint, 0, len(grouped))
	for years, mids := range grouped {
		desc, err := describe(mids)
		if err != nil {
			return nil, err
		}
		points = append(points, TrendPoint{
			Years:  years,
			Mean:   desc.mean,
			Median: desc.median,
			Count:  len(mids),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Years < points[j].Years })
	return points, nil
}
