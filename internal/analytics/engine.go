package analytics

import (
	"math"
	"sort"

	"sgsalary/domain/market"
	"sgsalary/internal/errors"

	"github.com/montanaflynn/stats"
)

// Options holds the aggregation thresholds.
type Options struct {
	// MinSampleSize is the group size below which an AggregateView is
	// flagged low-confidence.
	MinSampleSize int

	// DemandMinCount is the minimum posting count for a category to
	// appear in the demand-vs-compensation table.
	DemandMinCount int
}

// DefaultOptions returns the published thresholds.
func DefaultOptions() Options {
	return Options{MinSampleSize: 5, DemandMinCount: 10}
}

// Engine answers aggregate queries over an immutable, cleaned posting
// collection. Every query is a pure function of the collection and its
// arguments; the engine holds no session state and is safe to share
// read-only across requests.
type Engine struct {
	postings []market.JobPosting
	opts     Options
}

// NewEngine creates an engine over a cleaned posting collection.
func NewEngine(postings []market.JobPosting, opts Options) *Engine {
	if opts.MinSampleSize < 1 {
		opts.MinSampleSize = DefaultOptions().MinSampleSize
	}
	if opts.DemandMinCount < 1 {
		opts.DemandMinCount = DefaultOptions().DemandMinCount
	}
	return &Engine{postings: postings, opts: opts}
}

// Postings exposes the cleaned collection for consumers that render raw
// rows. Callers must treat the slice as read-only.
func (e *Engine) Postings() []market.JobPosting {
	return e.postings
}

// filtered returns the postings passing the filter, in source order.
func (e *Engine) filtered(filter *market.Filter) []market.JobPosting {
	out := make([]market.JobPosting, 0, len(e.postings))
	for _, p := range e.postings {
		if filter.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// groupKey identifies one distinct combination of grouping-key values.
type groupKey struct {
	category string
	level    market.PositionLevel
	bracket  market.ExperienceBracket
}

// Aggregate groups the filtered postings by the given dimensions and
// computes the midpoint-salary distribution per group. Postings without
// salary bounds are skipped. An empty dims slice produces the trivial
// single group over the whole filtered set. A filter matching nothing
// yields zero groups, not an error.
//
// Output order is deterministic: category, then level, then bracket rank.
func (e *Engine) Aggregate(dims []market.GroupDim, filter *market.Filter) ([]market.AggregateView, error) {
	seen := make(map[market.GroupDim]bool, len(dims))
	for _, d := range dims {
		if _, ok := market.ParseGroupDim(string(d)); !ok {
			return nil, errors.InvalidInput("unknown grouping dimension: " + string(d))
		}
		if seen[d] {
			return nil, errors.InvalidInput("duplicate grouping dimension: " + string(d))
		}
		seen[d] = true
	}

	groups := make(map[groupKey][]float64)
	for _, p := range e.filtered(filter) {
		if !p.HasSalary {
			continue
		}
		var key groupKey
		if seen[market.GroupByCategory] {
			key.category = p.Category
		}
		if seen[market.GroupByLevel] {
			key.level = p.Level
		}
		if seen[market.GroupByBracket] {
			key.bracket = p.Bracket
		}
		groups[key] = append(groups[key], p.SalaryMidpoint)
	}

	views := make([]market.AggregateView, 0, len(groups))
	for key, midpoints := range groups {
		desc, err := describe(midpoints)
		if err != nil {
			return nil, errors.Wrap(err, "aggregate statistics failed")
		}
		views = append(views, market.AggregateView{
			Category:      key.category,
			Level:         key.level,
			Bracket:       key.bracket,
			Median:        desc.median,
			Mean:          desc.mean,
			StdDev:        desc.stdDev,
			P25:           desc.p25,
			P75:           desc.p75,
			Count:         len(midpoints),
			LowConfidence: len(midpoints) < e.opts.MinSampleSize,
		})
	}

	sort.Slice(views, func(i, j int) bool {
		if views[i].Category != views[j].Category {
			return views[i].Category < views[j].Category
		}
		if views[i].Level != views[j].Level {
			return views[i].Level < views[j].Level
		}
		return views[i].Bracket.Rank() < views[j].Bracket.Rank()
	})

	return views, nil
}

// description holds the descriptive statistics of one salary distribution.
type description struct {
	median float64
	mean   float64
	stdDev float64
	p25    float64
	p75    float64
}

// describe computes the distribution statistics over a non-empty sample.
func describe(values []float64) (description, error) {
	var d description

	data := stats.Float64Data(values)
	median, err := data.Median()
	if err != nil {
		return d, err
	}
	mean, err := data.Mean()
	if err != nil {
		return d, err
	}

	// Sample standard deviation is undefined below two observations.
	stdDev := 0.0
	if len(values) > 1 {
		stdDev, err = stats.StandardDeviationSample(data)
		if err != nil {
			return d, err
		}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	d.median = median
	d.mean = mean
	d.stdDev = stdDev
	d.p25 = quantile(sorted, 0.25)
	d.p75 = quantile(sorted, 0.75)
	return d, nil
}

// quantile computes the q-th quantile of a sorted sample with linear
// interpolation between closest ranks.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
