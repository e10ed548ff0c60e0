package analytics

import (
	"math"

	"sgsalary/domain/market"
	"sgsalary/internal/errors"

	"gonum.org/v1/gonum/stat"
)

// ExperienceSalaryResult carries the Pearson correlation between minimum
// years of experience and midpoint salary, plus the fitted least-squares
// trend line over the same pairs.
type ExperienceSalaryResult struct {
	Coefficient float64 `json:"coefficient"`
	Slope       float64 `json:"slope"`
	Intercept   float64 `json:"intercept"`
	SampleSize  int     `json:"sample_size"`
	Strength    string  `json:"strength"`
}

// CorrelationExperienceSalary computes the Pearson coefficient over
// postings carrying both experience and salary bounds. Fewer than two
// qualifying records, or a degenerate (zero-variance) sample, yield an
// INSUFFICIENT_DATA error so callers show a "not enough data" state.
func CorrelationExperienceSalary(postings []market.JobPosting) (*ExperienceSalaryResult, error) {
	var xs, ys []float64
	for _, p := range postings {
		if !p.HasSalary {
			continue
		}
		xs = append(xs, p.ExperienceYears)
		ys = append(ys, p.SalaryMidpoint)
	}

	if len(xs) < 2 {
		return nil, errors.InsufficientData("correlation needs at least 2 postings with experience and salary")
	}

	coeff := stat.Correlation(xs, ys, nil)
	if math.IsNaN(coeff) {
		return nil, errors.InsufficientData("correlation is undefined for a zero-variance sample")
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)

	return &ExperienceSalaryResult{
		Coefficient: coeff,
		Slope:       slope,
		Intercept:   intercept,
		SampleSize:  len(xs),
		Strength:    correlationStrength(coeff),
	}, nil
}

// ExperienceSalaryCorrelation runs the correlation over the engine's
// filtered postings.
func (e *Engine) ExperienceSalaryCorrelation(filter *market.Filter) (*ExperienceSalaryResult, error) {
	return CorrelationExperienceSalary(e.filtered(filter))
}

// correlationStrength labels the coefficient: strong above 0.7,
// moderate above 0.4, weak below.
func correlationStrength(coeff float64) string {
	abs := math.Abs(coeff)
	switch {
	case abs > 0.7:
		return "strong"
	case abs > 0.4:
		return "moderate"
	default:
		return "weak"
	}
}
