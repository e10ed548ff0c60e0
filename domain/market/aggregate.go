package market

// GroupDim is one grouping dimension for aggregate queries.
type GroupDim string

const (
	GroupByCategory GroupDim = "category"
	GroupByLevel    GroupDim = "level"
	GroupByBracket  GroupDim = "bracket"
)

// ParseGroupDim validates a raw dimension name.
func ParseGroupDim(raw string) (GroupDim, bool) {
	switch GroupDim(raw) {
	case GroupByCategory, GroupByLevel, GroupByBracket:
		return GroupDim(raw), true
	}
	return "", false
}

// Filter restricts postings before aggregation. Zero value matches every
// posting; nil slices and nil range bounds mean "no restriction". Salary
// ranges apply to the midpoint salary and only to postings carrying bounds.
type Filter struct {
	Categories []string            `json:"categories,omitempty"`
	Levels     []PositionLevel     `json:"levels,omitempty"`
	Brackets   []ExperienceBracket `json:"brackets,omitempty"`
	MinYears   *float64            `json:"min_years,omitempty"`
	MaxYears   *float64            `json:"max_years,omitempty"`
	MinSalary  *float64            `json:"min_salary,omitempty"`
	MaxSalary  *float64            `json:"max_salary,omitempty"`
}

// Match reports whether a posting passes every restriction in the filter.
func (f *Filter) Match(p JobPosting) bool {
	if f == nil {
		return true
	}
	if len(f.Categories) > 0 && !containsString(f.Categories, p.Category) {
		return false
	}
	if len(f.Levels) > 0 && !containsLevel(f.Levels, p.Level) {
		return false
	}
	if len(f.Brackets) > 0 && !containsBracket(f.Brackets, p.Bracket) {
		return false
	}
	if f.MinYears != nil && p.ExperienceYears < *f.MinYears {
		return false
	}
	if f.MaxYears != nil && p.ExperienceYears > *f.MaxYears {
		return false
	}
	if f.MinSalary != nil || f.MaxSalary != nil {
		if !p.HasSalary {
			return false
		}
		if f.MinSalary != nil && p.SalaryMidpoint < *f.MinSalary {
			return false
		}
		if f.MaxSalary != nil && p.SalaryMidpoint > *f.MaxSalary {
			return false
		}
	}
	return true
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsLevel(set []PositionLevel, v PositionLevel) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsBracket(set []ExperienceBracket, v ExperienceBracket) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// AggregateView is one row of a grouped salary aggregate: the distinct
// grouping-key values plus descriptive statistics of the midpoint-salary
// distribution within the group. Views are ephemeral query results and are
// never persisted.
type AggregateView struct {
	Category string            `json:"category,omitempty"`
	Level    PositionLevel     `json:"position_level,omitempty"`
	Bracket  ExperienceBracket `json:"experience_bracket,omitempty"`

	Median float64 `json:"median"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
	Count  int     `json:"count"`

	// LowConfidence flags groups below the minimum sample threshold.
	// They are returned regardless; callers decide whether to show them.
	LowConfidence bool `json:"low_confidence"`
}
