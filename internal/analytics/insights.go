package analytics

import (
	"fmt"
	"strings"

	"sgsalary/domain/market"
)

// InsightsMarkdown writes a short narrative over the filtered slice:
// headline numbers, the experience premium, and the highest-paying
// categories. Returned as markdown so consumers pick their own rendering.
func (e *Engine) InsightsMarkdown(filter *market.Filter) string {
	var b strings.Builder

	b.WriteString("## Market Insights\n\n")

	summary, err := e.Summarize(filter)
	if err != nil || summary.SalariedPostings == 0 {
		b.WriteString("Not enough data in the current selection to draw conclusions.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Across **%d** postings (%d with published salaries), the median monthly salary is **$%.0f** "+
		"with the middle half of the market between $%.0f and $%.0f.\n\n",
		summary.TotalPostings, summary.SalariedPostings,
		summary.MedianSalary, summary.P25Salary, summary.P75Salary)

	if corr, err := e.ExperienceSalaryCorrelation(filter); err == nil {
		fmt.Fprintf(&b, "### Experience Premium\n\n"+
			"Years of experience and salary show a **%s** correlation (r = %.3f). "+
			"Each additional required year moves the midpoint salary by about $%.0f.\n\n",
			corr.Strength, corr.Coefficient, corr.Slope)
	}

	if comp, err := e.DemandVsCompensation(filter); err == nil && len(comp) > 0 {
		top := comp[0]
		fmt.Fprintf(&b, "### Category Focus\n\n"+
			"**%s** leads demand with %d postings at a median of $%.0f. "+
			"High-paying, high-volume categories are where talent acquisition should focus.\n\n",
			top.Category, top.Count, top.MedianSalary)
	}

	fmt.Fprintf(&b, "### Salary Flexibility\n\n"+
		"The average advertised range spans $%.0f (median $%.0f), indicating the "+
		"negotiation room and skill variance employers price into roles.\n",
		summary.MeanRangeWidth, summary.MedianRangeWidth)

	return b.String()
}
