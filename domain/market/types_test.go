package market

import (
	"testing"
)

func TestBracketForYears(t *testing.T) {
	cases := []struct {
		years float64
		want  ExperienceBracket
	}{
		{0, BracketEntry},
		{2, BracketEntry},
		{3, BracketJunior},
		{5, BracketJunior},
		{6, BracketMid},
		{10, BracketMid},
		{11, BracketSenior},
		{20, BracketSenior},
		{21, BracketExpert},
		{35, BracketExpert},
	}

	for _, tc := range cases {
		if got := BracketForYears(tc.years); got != tc.want {
			t.Errorf("BracketForYears(%v) = %v, want %v", tc.years, got, tc.want)
		}
	}
}

func TestBracketRankOrdering(t *testing.T) {
	brackets := Brackets()
	for i := 1; i < len(brackets); i++ {
		if brackets[i-1].Rank() >= brackets[i].Rank() {
			t.Errorf("bracket %v should rank below %v", brackets[i-1], brackets[i])
		}
	}
}

func TestNormalizeLevel(t *testing.T) {
	cases := []struct {
		raw  string
		want PositionLevel
	}{
		{"Manager", LevelManager},
		{"  senior executive  ", LevelSeniorExecutive},
		{"PROFESSIONAL", LevelProfessional},
		{"", LevelNotSpecified},
		{"Galactic Overlord", LevelNotSpecified},
	}

	for _, tc := range cases {
		if got := NormalizeLevel(tc.raw); got != tc.want {
			t.Errorf("NormalizeLevel(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestFilterMatch(t *testing.T) {
	posting := JobPosting{
		Category:        "Information Technology",
		Level:           LevelManager,
		HasSalary:       true,
		SalaryMidpoint:  7000,
		ExperienceYears: 5,
		Bracket:         BracketJunior,
	}

	var nilFilter *Filter
	if !nilFilter.Match(posting) {
		t.Error("nil filter should match everything")
	}
	if !(&Filter{}).Match(posting) {
		t.Error("zero filter should match everything")
	}

	if (&Filter{Categories: []string{"Admin"}}).Match(posting) {
		t.Error("category filter should exclude non-member")
	}
	if !(&Filter{Categories: []string{"Admin", "Information Technology"}}).Match(posting) {
		t.Error("category filter should include member")
	}

	lo, hi := 8000.0, 9000.0
	if (&Filter{MinSalary: &lo, MaxSalary: &hi}).Match(posting) {
		t.Error("salary range filter should exclude midpoint outside range")
	}

	// Salary range restrictions exclude postings without bounds.
	unsalaried := posting
	unsalaried.HasSalary = false
	min := 1000.0
	if (&Filter{MinSalary: &min}).Match(unsalaried) {
		t.Error("salary filter should exclude postings without salary bounds")
	}

	maxYears := 3.0
	if (&Filter{MaxYears: &maxYears}).Match(posting) {
		t.Error("experience filter should exclude postings above max years")
	}
}
