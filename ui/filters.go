package ui

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"sgsalary/domain/market"
	"sgsalary/internal/analytics"
	"sgsalary/internal/errors"
)

// parseFilter maps the dashboard filter surface onto a domain Filter.
// Multi-selects arrive comma-separated; range bounds as plain numbers.
// Absent parameters leave the corresponding restriction open.
func parseFilter(query url.Values) (*market.Filter, error) {
	filter := &market.Filter{}

	if raw := query.Get("categories"); raw != "" {
		filter.Categories = splitCSV(raw)
	}
	if raw := query.Get("levels"); raw != "" {
		for _, lvl := range splitCSV(raw) {
			if !market.IsKnownLevel(lvl) {
				return nil, errors.InvalidInput("unknown position level: " + lvl)
			}
			filter.Levels = append(filter.Levels, market.NormalizeLevel(lvl))
		}
	}
	if raw := query.Get("brackets"); raw != "" {
		known := make(map[market.ExperienceBracket]bool)
		for _, b := range market.Brackets() {
			known[b] = true
		}
		for _, b := range splitCSV(raw) {
			bracket := market.ExperienceBracket(b)
			if !known[bracket] {
				return nil, errors.InvalidInput("unknown experience bracket: " + b)
			}
			filter.Brackets = append(filter.Brackets, bracket)
		}
	}

	var err error
	if filter.MinYears, err = parseFloatParam(query, "min_years"); err != nil {
		return nil, err
	}
	if filter.MaxYears, err = parseFloatParam(query, "max_years"); err != nil {
		return nil, err
	}
	if filter.MinSalary, err = parseFloatParam(query, "min_salary"); err != nil {
		return nil, err
	}
	if filter.MaxSalary, err = parseFloatParam(query, "max_salary"); err != nil {
		return nil, err
	}

	return filter, nil
}

func parseFloatParam(query url.Values, key string) (*float64, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.InvalidInput("invalid numeric parameter " + key + ": " + raw)
	}
	return &val, nil
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Facets lists the selectable values and bounds the filter UI offers.
// Computed once at startup from the cleaned collection.
type Facets struct {
	Categories []string `json:"categories"`
	Levels     []string `json:"levels"`
	Brackets   []string `json:"brackets"`
	MinYears   float64  `json:"min_years"`
	MaxYears   float64  `json:"max_years"`
	MinSalary  float64  `json:"min_salary"`
	MaxSalary  float64  `json:"max_salary"`
}

// ComputeFacets scans the collection once per facet family, in parallel.
func ComputeFacets(engine *analytics.Engine) (*Facets, error) {
	facets := &Facets{}
	postings := engine.Postings()

	var g errgroup.Group

	g.Go(func() error {
		set := make(map[string]bool)
		for _, p := range postings {
			set[p.Category] = true
		}
		facets.Categories = sortedKeys(set)
		return nil
	})

	g.Go(func() error {
		set := make(map[string]bool)
		for _, p := range postings {
			set[string(p.Level)] = true
		}
		facets.Levels = sortedKeys(set)
		for _, b := range market.Brackets() {
			facets.Brackets = append(facets.Brackets, string(b))
		}
		return nil
	})

	g.Go(func() error {
		first := true
		for _, p := range postings {
			if p.ExperienceYears > facets.MaxYears {
				facets.MaxYears = p.ExperienceYears
			}
			if !p.HasSalary {
				continue
			}
			if first || p.SalaryMidpoint < facets.MinSalary {
				facets.MinSalary = p.SalaryMidpoint
			}
			if p.SalaryMidpoint > facets.MaxSalary {
				facets.MaxSalary = p.SalaryMidpoint
			}
			first = false
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return facets, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
