package market

import (
	"strings"
)

// PositionLevel is one of the fixed seniority labels carried by a posting.
type PositionLevel string

const (
	LevelEntry           PositionLevel = "Entry Level"
	LevelFresh           PositionLevel = "Fresh/entry level"
	LevelNonExecutive    PositionLevel = "Non-executive"
	LevelJuniorExecutive PositionLevel = "Junior Executive"
	LevelExecutive       PositionLevel = "Executive"
	LevelSeniorExecutive PositionLevel = "Senior Executive"
	LevelManager         PositionLevel = "Manager"
	LevelMiddleMgmt      PositionLevel = "Middle Management"
	LevelSeniorMgmt      PositionLevel = "Senior Management"
	LevelProfessional    PositionLevel = "Professional"
	LevelNotSpecified    PositionLevel = "Not Specified"
)

// knownLevels is the closed set of accepted position levels, keyed by
// lowercase label for case-insensitive matching.
var knownLevels = map[string]PositionLevel{}

func init() {
	for _, lvl := range []PositionLevel{
		LevelEntry, LevelFresh, LevelNonExecutive, LevelJuniorExecutive,
		LevelExecutive, LevelSeniorExecutive, LevelManager,
		LevelMiddleMgmt, LevelSeniorMgmt, LevelProfessional,
		LevelNotSpecified,
	} {
		knownLevels[strings.ToLower(string(lvl))] = lvl
	}
}

// NormalizeLevel maps a raw position level string onto the closed set.
// Blank or unrecognized labels collapse to LevelNotSpecified.
func NormalizeLevel(raw string) PositionLevel {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return LevelNotSpecified
	}
	if lvl, ok := knownLevels[strings.ToLower(trimmed)]; ok {
		return lvl
	}
	return LevelNotSpecified
}

// IsKnownLevel reports whether raw matches the closed set exactly
// (ignoring case and surrounding whitespace).
func IsKnownLevel(raw string) bool {
	_, ok := knownLevels[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// ExperienceBracket is a fixed band of minimum years of experience.
type ExperienceBracket string

const (
	BracketEntry  ExperienceBracket = "Entry (0-2y)"
	BracketJunior ExperienceBracket = "Junior (3-5y)"
	BracketMid    ExperienceBracket = "Mid (6-10y)"
	BracketSenior ExperienceBracket = "Senior (11-20y)"
	BracketExpert ExperienceBracket = "Expert (20+y)"
)

// Brackets lists all experience brackets in ascending order.
func Brackets() []ExperienceBracket {
	return []ExperienceBracket{
		BracketEntry, BracketJunior, BracketMid, BracketSenior, BracketExpert,
	}
}

// BracketForYears buckets minimum years of experience into the fixed bands
// [0-2], [3-5], [6-10], [11-20], [20+].
func BracketForYears(years float64) ExperienceBracket {
	switch {
	case years <= 2:
		return BracketEntry
	case years <= 5:
		return BracketJunior
	case years <= 10:
		return BracketMid
	case years <= 20:
		return BracketSenior
	default:
		return BracketExpert
	}
}

// Rank orders brackets for deterministic output sorting.
func (b ExperienceBracket) Rank() int {
	switch b {
	case BracketEntry:
		return 0
	case BracketJunior:
		return 1
	case BracketMid:
		return 2
	case BracketSenior:
		return 3
	case BracketExpert:
		return 4
	default:
		return 5
	}
}

// SalaryType distinguishes the pay period a posting advertises.
type SalaryType string

const (
	SalaryMonthly SalaryType = "Monthly"
	SalaryAnnual  SalaryType = "Annual"
)

// CategoryUnknown is the fallback when the categories sub-document cannot
// be decoded or is empty.
const CategoryUnknown = "Unknown"

// JobPosting is one cleaned row of the source dataset. All postings in a
// cleaned collection satisfy 0 <= SalaryMin <= SalaryMax whenever HasSalary
// is set; a posting without salary bounds stays in the collection for
// demand counts but is skipped by salary aggregates.
type JobPosting struct {
	Title           string            `json:"title"`
	Category        string            `json:"category"`
	Level           PositionLevel     `json:"position_level"`
	SalaryMin       float64           `json:"salary_minimum"`
	SalaryMax       float64           `json:"salary_maximum"`
	HasSalary       bool              `json:"has_salary"`
	SalaryMidpoint  float64           `json:"salary_midpoint"`
	SalaryRange     float64           `json:"salary_range"`
	ExperienceYears float64           `json:"minimum_years_experience"`
	Bracket         ExperienceBracket `json:"experience_bracket"`
	Company         string            `json:"company,omitempty"`
	Views           int               `json:"views,omitempty"`
	Applications    int               `json:"applications,omitempty"`
}
