package standings

import "strings"

// Criteria narrows a population. Empty fields match every entry.
type Criteria struct {
	Club       string
	Category   string
	Gender     string
	AgeGroup   string
	NameSearch string
}

// IsZero reports whether c imposes no constraint.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// Match reports whether e satisfies every non-empty criterion. Categorical
// fields compare exactly; NameSearch is a case-insensitive substring of the
// full name.
func (c Criteria) Match(e Entry) bool {
	if c.Club != "" && e.Club != c.Club {
		return false
	}
	if c.Category != "" && e.Category != c.Category {
		return false
	}
	if c.Gender != "" && e.Gender != c.Gender {
		return false
	}
	if c.AgeGroup != "" && e.AgeGroup != c.AgeGroup {
		return false
	}
	if c.NameSearch != "" {
		name := strings.ToLower(e.FullName())
		if !strings.Contains(name, strings.ToLower(c.NameSearch)) {
			return false
		}
	}
	return true
}

// Filter returns the entries of population matching c, in input order.
func Filter(population []Entry, c Criteria) []Entry {
	out := make([]Entry, 0, len(population))
	for _, e := range population {
		if c.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// Standings runs filter, sort and rank over population. Ranks are relative to
// the filtered group only.
func Standings(population []Entry, c Criteria) []Ranked {
	return AssignRanks(Sort(Filter(population, c)))
}
